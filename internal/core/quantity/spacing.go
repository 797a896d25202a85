package quantity

import "strings"

// SpaceOut 在字母與數字緊貼處插入一個空格，例如 "500g" -> "500 g"、"g500" -> "g 500"。
// 只會前後去空白，中間的連續空白保持原樣。
func SpaceOut(text string) string {
	if text == "" {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(text) + 4)

	var prev rune
	first := true
	for _, r := range text {
		if !first && ((isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))) {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
		prev = r
		first = false
	}

	return strings.TrimSpace(sb.String())
}

// FormatName 格式化食材名稱顯示
func FormatName(name string) string {
	return SpaceOut(name)
}
