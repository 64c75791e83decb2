package enhancement

import (
	"strings"
	"unicode"
)

var arabicLanguageCodes = map[string]bool{
	"ar":     true,
	"ara":    true,
	"arabic": true,
	"ar-sa":  true,
	"ar-eg":  true,
	"ar-ma":  true,
	"ar-ae":  true,
}

// IsArabic reports whether the content is Arabic, by language code when one
// is given and otherwise by script: more than 20% of the non-space runes
// falling in the Arabic Unicode blocks.
func IsArabic(language *string, text string) bool {
	if language != nil && arabicLanguageCodes[strings.ToLower(*language)] {
		return true
	}

	var arabic, nonSpace int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		nonSpace++
		if isArabicRune(r) {
			arabic++
		}
	}
	if nonSpace == 0 {
		return false
	}
	return float64(arabic)/float64(nonSpace) > 0.2
}

func isArabicRune(r rune) bool {
	return (r >= 0x0600 && r <= 0x06FF) || // Arabic
		(r >= 0x0750 && r <= 0x077F) || // Arabic Supplement
		(r >= 0xFB50 && r <= 0xFDFF) || // Arabic Presentation Forms-A
		(r >= 0xFE70 && r <= 0xFEFF) // Arabic Presentation Forms-B
}
