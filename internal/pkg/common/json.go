package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseJSON 解析 JSON 字符串到結構體
func ParseJSON(data string, v interface{}) error {
	return decodeJSON(strings.NewReader(data), v)
}

// ParseJSONBytes 解析 JSON 位元組切片到結構體
func ParseJSONBytes(data []byte, v interface{}) error {
	return decodeJSON(bytes.NewReader(data), v)
}

// ParseJSONLenient 解析 JSON，失敗時先嘗試修復（尾逗號、單引號、未加引號的鍵等）再解析一次。
// 第二個回傳值表示是否經過修復。
func ParseJSONLenient(data []byte, v interface{}) (bool, error) {
	err := ParseJSONBytes(data, v)
	if err == nil {
		return false, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(string(data))
	if repairErr != nil {
		return false, fmt.Errorf("failed to parse JSON: %w (repair failed: %v)", err, repairErr)
	}

	if err := ParseJSON(repaired, v); err != nil {
		return true, fmt.Errorf("failed to parse repaired JSON: %w", err)
	}
	return true, nil
}

// decodeJSON 數字保留為 json.Number，且不允許多餘資料
func decodeJSON(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := dec.Decode(v); err != nil {
		return err
	}

	// 確保沒有多餘資料
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("unexpected extra JSON data")
	}
	return nil
}
