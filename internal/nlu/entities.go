package nlu

import "regexp"

var (
	phonePattern = regexp.MustCompile(`\b\d{10}\b`)
	zipPattern   = regexp.MustCompile(`\b\d{5}\b`)
)

// ExtractPhone returns the first 10-digit phone number in the text, or "".
// Word boundaries keep it from matching inside longer digit runs.
func ExtractPhone(text string) string {
	return phonePattern.FindString(text)
}

// ExtractZip returns the first 5-digit zip code in the text, or "".
func ExtractZip(text string) string {
	return zipPattern.FindString(text)
}
