// Package locale enumerates the display languages supported by chemsolver's
// name tables and negotiates between them.
package locale

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/turtacn/chemsolver/pkg/errors"
)

// Tag identifies a display language.
type Tag string

const (
	English Tag = "en"
	Italian Tag = "it"

	// Default is used when no preference is given or none can be matched.
	Default = English
)

var (
	supported = []Tag{English, Italian}
	matcher   = language.NewMatcher([]language.Tag{language.English, language.Italian})
)

// Supported returns the supported tags, default first.
func Supported() []Tag {
	out := make([]Tag, len(supported))
	copy(out, supported)
	return out
}

// Valid reports whether t is one of the supported tags.
func (t Tag) Valid() bool {
	for _, s := range supported {
		if s == t {
			return true
		}
	}
	return false
}

func (t Tag) String() string { return string(t) }

// Parse resolves a BCP 47 string ("it", "it-CH", "en_US") to a supported tag.
// An empty string yields Default. Unsupported languages are an error.
func Parse(s string) (Tag, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Default, nil
	}
	lt, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return "", errors.InvalidParam("invalid language tag").WithDetail(s)
	}
	base, _ := lt.Base()
	t := Tag(base.String())
	if !t.Valid() {
		return "", errors.InvalidParam("unsupported language").WithDetail(s)
	}
	return t, nil
}

// Negotiate picks the best supported tag for the given preference lists (for
// example Accept-Language header values). It never fails.
func Negotiate(prefs ...string) Tag {
	_, idx := language.MatchStrings(matcher, prefs...)
	if idx < 0 || idx >= len(supported) {
		return Default
	}
	return supported[idx]
}

//Personal.AI order the ending
