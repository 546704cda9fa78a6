package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/expando-dev/expando/pkg/model"
)

// Style is the casing transform applied to a fully substituted body
// (spec.md §4.8 step 6).
type Style int

const (
	StyleNone Style = iota
	StyleCapitalize
	StyleUppercase
	StyleCapitalizeWords
)

var upperCaser = cases.Upper(language.Und)

// ApplyCasing transforms body per style. Unicode uppercasing is delegated
// to golang.org/x/text/cases rather than hand-rolled rune iteration, since
// ASCII-only upper-casing would mis-handle non-ASCII triggers.
func ApplyCasing(body string, style Style) string {
	switch style {
	case StyleUppercase:
		return upperCaser.String(body)
	case StyleCapitalize:
		return capitalizeFirst(body)
	case StyleCapitalizeWords:
		return capitalizeWords(body)
	default:
		return body
	}
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func capitalizeWords(s string) string {
	var b strings.Builder
	atWordStart := true
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			if atWordStart {
				b.WriteRune(unicode.ToUpper(r))
				atWordStart = false
			} else {
				b.WriteRune(r)
			}
		} else {
			b.WriteRune(r)
			atWordStart = true
		}
	}
	return b.String()
}

// SelectStyle implements "casing selection at dispatch time" (spec.md
// §4.8): given the literally typed trigger T and a match's preferred
// style, decide which Style to actually render with. Applies only when
// propagateCase is true; otherwise casing is always None.
func SelectStyle(trigger string, preferred model.UppercaseStyle, propagateCase bool) Style {
	if !propagateCase {
		return StyleNone
	}

	a, b, hasB := firstTwoAlpha(trigger)
	if a == 0 {
		return StyleNone
	}
	if !unicode.IsUpper(a) {
		return StyleNone
	}
	if hasB && unicode.IsUpper(b) {
		return StyleUppercase
	}

	// a upper, remainder lower-or-absent: the match's preferred style wins
	// when explicitly chosen; StyleUppercase is convertUppercaseStyle's own
	// zero-value default (spec.md §4.1), which this branch only honors
	// when a second letter is absent — with a second, lowercase letter
	// present, an unset preference instead falls back to Capitalize.
	if hasB {
		if preferred == model.StyleUppercase {
			return StyleCapitalize
		}
		return fromUppercaseStyle(preferred)
	}
	return fromUppercaseStyle(preferred)
}

func fromUppercaseStyle(s model.UppercaseStyle) Style {
	switch s {
	case model.StyleCapitalize:
		return StyleCapitalize
	case model.StyleCapitalizeWords:
		return StyleCapitalizeWords
	default:
		return StyleUppercase
	}
}

// firstTwoAlpha returns the first two alphabetic runes found in s. If fewer
// than two exist, hasB is false; if none exist, a is the zero rune.
func firstTwoAlpha(s string) (a, b rune, hasB bool) {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		if a == 0 {
			a = r
			continue
		}
		b = r
		hasB = true
		break
	}
	return a, b, hasB
}
