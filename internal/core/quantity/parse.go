package quantity

import (
	"math"
	"regexp"
	"strings"

	"recipe-viewer/internal/pkg/common"
)

// 字串中任意位置的第一個整數或小數
var numberLiteralPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Parse 將自由格式的數量文字轉為數值，永遠不會失敗。
//
// 依序嘗試：帶分數、簡單分數、字串中第一個數字；都找不到時回傳 0。
// 例如 "1,5" -> 1.5、"1 1/2 tazas" -> 1.5、"500g" -> 500、"a gusto" -> 0。
func Parse(raw string) float64 {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0
	}
	text = NormalizeNumberPunctuation(text)

	if v, ok := TryParseFraction(text); ok {
		return v
	}

	if lit := numberLiteralPattern.FindString(text); lit != "" {
		return atof(lit)
	}

	return 0
}

// ParseValue 先將任意型別轉成文字再解析，nil 視為空字串
func ParseValue(v any) float64 {
	return Parse(common.CoerceString(v))
}

// clamp 確保結果為有限值
func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	}
	return v
}
