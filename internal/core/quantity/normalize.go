package quantity

import "strings"

// NormalizeNumberPunctuation 將所有逗號換成句點（純文字替換，不考慮語系）
func NormalizeNumberPunctuation(text string) string {
	return strings.ReplaceAll(text, ",", ".")
}

// CollapseWhitespace 將連續空白壓成單一空格並去除前後空白
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
