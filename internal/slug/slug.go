// Package slug turns recipe titles into filesystem-safe image filenames.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback replaces titles that slugify to nothing
const Fallback = "recipe"

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

	// German spellings keep their conventional two-letter forms
	// instead of losing the umlaut entirely.
	germanReplacer = strings.NewReplacer(
		"ä", "ae",
		"ö", "oe",
		"ü", "ue",
		"ß", "ss",
	)
)

// Slugify lowercases and transliterates a title to [a-z0-9-]
func Slugify(title string) string {
	s := germanReplacer.Replace(strings.ToLower(title))

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}

	s = nonAlnum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return Fallback
	}
	return s
}

// Filename builds {slug}-user{ownerID}-{disambiguator}.{ext}
func Filename(title string, ownerID int64, ext, disambiguator string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return fmt.Sprintf("%s-user%d-%s.%s", Slugify(title), ownerID, disambiguator, ext)
}

// Disambiguator combines a millisecond timestamp with a random component
func Disambiguator(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
