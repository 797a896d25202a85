package quantity

import (
	"regexp"
	"strconv"
)

var (
	// 帶分數，例如 "1 1/2"
	mixedFractionPattern = regexp.MustCompile(`^(\d+)[\s\p{Zs}]+(\d+)/(\d+)`)
	// 簡單分數，例如 "3/4"
	simpleFractionPattern = regexp.MustCompile(`^(\d+)/(\d+)`)
)

// TryParseFraction 嘗試從字串開頭解析分數。
// 分母為零時視為不匹配，交由呼叫端改用一般數字擷取。
func TryParseFraction(text string) (float64, bool) {
	if m := mixedFractionPattern.FindStringSubmatch(text); m != nil {
		whole := atof(m[1])
		num := atof(m[2])
		den := atof(m[3])
		if den != 0 {
			return whole + num/den, true
		}
	}

	if m := simpleFractionPattern.FindStringSubmatch(text); m != nil {
		num := atof(m[1])
		den := atof(m[2])
		if den != 0 {
			return num / den, true
		}
	}

	return 0, false
}

// atof 解析已由正規表達式驗證過的數字字串
func atof(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return clamp(v)
}
