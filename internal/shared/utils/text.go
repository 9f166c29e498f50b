package utils

// TruncateRunes cuts s to at most maxLen characters without splitting a
// multi-byte rune. Vietnamese plan names routinely exceed one byte per letter.
func TruncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen])
}
