package slug

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Crème brûlée", "creme-brulee"},
		{"Käsespätzle", "kaesespaetzle"},
		{"Große Brötchen", "grosse-broetchen"},
		{"ÄPFEL & Birnen", "aepfel-birnen"},
		{"  Pasta -- al   Forno!! ", "pasta-al-forno"},
		{"Tarte 2.0", "tarte-2-0"},
		{"Jalapeño Poppers", "jalapeno-poppers"},
		{"", Fallback},
		{"!!!", Fallback},
		{"寿司", Fallback},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "creme-brulee-user7-123-abc.jpg", Filename("Crème brûlée", 7, "jpg", "123-abc"))
	assert.Equal(t, "recipe-user1-x.png", Filename("", 1, ".PNG", "x"))
}

func TestDisambiguator(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	a := Disambiguator(now)
	b := Disambiguator(now)

	assert.Regexp(t, regexp.MustCompile(`^1700000000123-[0-9a-f]{8}$`), a)
	assert.NotEqual(t, a, b, "same instant must still yield distinct values")
}

func TestFilename_MatchesScenario(t *testing.T) {
	name := Filename("Crème brûlée", 7, "jpg", Disambiguator(time.Now()))
	assert.Regexp(t, `^creme-brulee-user7-\d+-[0-9a-f]{8}\.jpg$`, name)
}
