package common

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Ingredient 食材
//
// 上游 JSON 使用西班牙文欄位（nombre / cantidad / unidad），
// 也接受英文欄位；數量與單位可能是數字或 null，一律轉為文字。
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// UnmarshalJSON 寬鬆解析食材欄位
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	fields, err := rawFields(data)
	if err != nil {
		return fmt.Errorf("invalid ingredient: %w", err)
	}

	i.Name = rawText(pick(fields, "nombre", "name"))
	i.Quantity = rawText(pick(fields, "cantidad", "quantity"))
	i.Unit = rawText(pick(fields, "unidad", "unit"))
	return nil
}

// RecipeID 食譜 ID，上游可能是字串或數字
type RecipeID string

// UnmarshalJSON 接受字串、數字或 null
func (id *RecipeID) UnmarshalJSON(data []byte) error {
	*id = RecipeID(rawText(data))
	return nil
}

// String 實現 fmt.Stringer
func (id RecipeID) String() string {
	return string(id)
}

// Recipe 食譜；其他顯示用欄位會被忽略
type Recipe struct {
	ID          RecipeID     `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	ImageURL    string       `json:"image,omitempty"`
	Ingredients []Ingredient `json:"ingredients"`
}

// UnmarshalJSON 寬鬆解析食譜欄位
func (r *Recipe) UnmarshalJSON(data []byte) error {
	fields, err := rawFields(data)
	if err != nil {
		return fmt.Errorf("invalid recipe: %w", err)
	}

	r.ID = RecipeID(rawText(pick(fields, "id")))
	r.Name = rawText(pick(fields, "nombre", "name"))
	r.Description = rawText(pick(fields, "descripcion", "description"))
	r.ImageURL = rawText(pick(fields, "imagen", "image"))
	r.Ingredients = nil

	if raw := pick(fields, "ingredientes", "ingredients"); len(raw) > 0 && !isNull(raw) {
		var ings []Ingredient
		if err := json.Unmarshal(raw, &ings); err != nil {
			return fmt.Errorf("invalid recipe ingredients: %w", err)
		}
		r.Ingredients = ings
	}

	return nil
}

// CoerceString 將任意值轉為顯示用文字。
// 支援字串、數字、布林、nil；數字使用最短的十進位表示且不使用指數。
func CoerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case *string:
		if t == nil {
			return ""
		}
		return *t
	case json.Number:
		f, err := t.Float64()
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return t.String()
		}
		// 超出範圍時 f 為 ±Inf 或 0
		return formatFloat(f)
	case float64:
		return formatFloat(t)
	case float32:
		if math.IsInf(float64(t), 0) {
			return formatFloat(float64(t))
		}
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// formatFloat 以十進位輸出，±Inf 以 ±MaxFloat64 表示
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		f = math.MaxFloat64
	case math.IsInf(f, -1):
		f = -math.MaxFloat64
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// NormalizeText 統一為 NFC，讓分解形式的重音字母也能被辨識
func NormalizeText(s string) string {
	return norm.NFC.String(s)
}

func rawFields(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// pick 依序取第一個存在的欄位
func pick(fields map[string]json.RawMessage, keys ...string) json.RawMessage {
	for _, k := range keys {
		if raw, ok := fields[k]; ok {
			return raw
		}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// rawText 將單一 JSON 值轉為文字
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	return NormalizeText(strings.ToValidUTF8(CoerceString(v), ""))
}
