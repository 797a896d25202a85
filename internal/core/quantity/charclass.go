package quantity

// isLetter 判斷是否為可與數字相鄰而需要分隔的字母（ASCII 與西班牙文重音字母）
func isLetter(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return true
	}
	switch r {
	case 'Á', 'É', 'Í', 'Ó', 'Ú', 'á', 'é', 'í', 'ó', 'ú', 'Ñ', 'ñ':
		return true
	}
	return false
}

// isDigit 只接受 ASCII 數字
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
