package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// NormalizeTitle cleans a tag value such as a camera make for use as a
// display or folder name: punctuation becomes single spaces and the result
// is title-cased ("NIKON CORPORATION" -> "Nikon Corporation"). Returns
// fallback for values that clean to nothing.
func NormalizeTitle(value, fallback string) string {
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range strings.TrimSpace(value) {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return fallback
	}
	return titleCaser.String(title)
}
