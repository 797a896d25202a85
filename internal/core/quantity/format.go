package quantity

import "strings"

// FormatSpaced 組合數量與單位，中間以空格分隔，例如 ("500g", "") -> "500 g"、("100", "ml") -> "100 ml"。
// 數量會先拆開緊貼的字母與數字並將逗號轉成句點；單位只去除前後空白。
func FormatSpaced(qty, unit string) string {
	q := strings.TrimSpace(qty)
	u := strings.TrimSpace(unit)

	q = SpaceOut(q)
	q = NormalizeNumberPunctuation(q)

	switch {
	case q != "" && u != "":
		return CollapseWhitespace(q + " " + u)
	case q != "":
		return q
	case u != "":
		return u
	}
	return ""
}

// FormatUnspaced 組合數量與單位且不加空格，例如 ("100", "ml") -> "100ml"。
// 不拆分字母與數字，目的是讓數量與單位緊貼顯示。
func FormatUnspaced(qty, unit string) string {
	q := CollapseWhitespace(NormalizeNumberPunctuation(strings.TrimSpace(qty)))
	u := CollapseWhitespace(unit)

	switch {
	case q != "" && u != "":
		return q + u
	case q != "":
		return q
	case u != "":
		return u
	}
	return ""
}
