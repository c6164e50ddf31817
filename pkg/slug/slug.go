// ABOUTME: Identifier normalization for catalog records
// ABOUTME: Turns free-text names into lowercase hyphenated slugs

package slug

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Func derives an identifier from a name.
type Func func(name string) string

// MakeID converts a name into a stable identifier, e.g.
//
//	"Penstemon digitalis 'Mystica'"               -> "penstemon-digitalis-mystica"
//	"Sedum spurium 'Summer Glory'; red/dark pink" -> "sedum-spurium-summer-glory"
//
// Everything from the first ';' on is a descriptive suffix and is dropped.
// Only a-z, 0-9 and spaces survive; each space becomes a hyphen. Non-ASCII
// letters are stripped like any other symbol ("Échinacea" -> "chinacea").
func MakeID(name string) string {
	return strip(strings.ToLower(truncate(name)))
}

// MakeFoldedID is MakeID with accented letters folded to their base letter
// before stripping ("Échinacea" -> "echinacea").
func MakeFoldedID(name string) string {
	lower := strings.ToLower(truncate(name))

	// Chains carry state, so one per call.
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(fold, lower)
	if err != nil {
		folded = lower
	}
	return strip(folded)
}

func truncate(name string) string {
	if i := strings.IndexByte(name, ';'); i >= 0 {
		return name[:i]
	}
	return name
}

func strip(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}

// ImagePath returns the resource path for an image title: dir/<id><ext>.
func ImagePath(dir, title, ext string) string {
	return ImagePathWith(MakeID, dir, title, ext)
}

// ImagePathWith is ImagePath with a custom identifier function.
func ImagePathWith(id Func, dir, title, ext string) string {
	if id == nil {
		id = MakeID
	}
	file := id(title) + ext
	if dir == "" {
		return file
	}
	return path.Join(dir, file)
}
