package utils

// MaskSecret hides the middle of a credential so it can appear in logs.
// Short values are fully masked; longer values keep the first and last
// three characters for correlation against the identity provider console.
func MaskSecret(s string) string {
	if len(s) <= 8 {
		return "***"
	}
	return s[:3] + "***" + s[len(s)-3:]
}
