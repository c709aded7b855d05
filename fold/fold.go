// Package fold turns Greek (or any Unicode) text into diacritic-free
// comparison forms.
//
// Strip removes combining marks and is used for matching against display
// text. Key additionally case folds and is the value stored in the text_nfd
// column and used for every lookup term.
package fold

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// transformers keep internal state, so chains are built per call.
func stripper() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
}

// keyer strips marks before folding: the iota subscript (U+0345) is a mark
// that full case folding would otherwise turn into a letter ι. The second
// strip removes marks produced by folding (İ -> i̇).
func keyer() transform.Transformer {
	return transform.Chain(
		norm.NFD, runes.Remove(runes.In(unicode.Mn)),
		cases.Fold(),
		norm.NFD, runes.Remove(runes.In(unicode.Mn)),
	)
}

// Strip decomposes s (NFD) and removes every nonspacing mark (Mn).
//
//	Ἰησοῦς -> Ιησους
func Strip(s string) string {
	if s == "" {
		return s
	}
	result, _, err := transform.String(stripper(), s)
	if err != nil {
		return stripRunes(s)
	}
	return result
}

// Key returns the case folded, diacritic-free form of s.
//
//	Ἰησοῦς -> ιησουσ
//	τῷ     -> τω
func Key(s string) string {
	if s == "" {
		return s
	}
	result, _, err := transform.String(keyer(), s)
	if err != nil {
		return stripRunes(cases.Fold().String(stripRunes(s)))
	}
	return result
}

// NullableKey is Key for nullable columns: nil stays nil.
func NullableKey(s *string) *string {
	if s == nil {
		return nil
	}
	k := Key(*s)
	return &k
}

// stripRunes is the rune by rune fallback of Strip.
func stripRunes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		for _, d := range decompose(r) {
			if !unicode.Is(unicode.Mn, d) {
				b.WriteRune(d)
			}
		}
	}
	return b.String()
}

func decompose(r rune) string {
	if r < utf8.RuneSelf {
		return string(r)
	}
	return norm.NFD.String(string(r))
}

// Mapped is the Strip form of a string together with the offsets needed to
// translate positions in Text back to the original string.
type Mapped struct {
	// Text is the diacritic-free text.
	Text string

	// offsets[i] is the byte offset in the original string of the rune that
	// produced byte i of Text. offsets[len(Text)] is len(original).
	offsets []int
}

// Map strips s like Strip and records, for every byte of the result, where
// it came from. Combining marks of the original are attributed to the
// preceding base rune, so Offset never points inside a rune or between a
// base rune and its marks.
func Map(s string) Mapped {
	var b strings.Builder
	b.Grow(len(s))
	offsets := make([]int, 0, len(s)+1)

	for i, r := range s {
		for _, d := range decompose(r) {
			if unicode.Is(unicode.Mn, d) {
				continue
			}
			n, _ := b.WriteRune(d)
			for k := 0; k < n; k++ {
				offsets = append(offsets, i)
			}
		}
	}
	offsets = append(offsets, len(s))

	return Mapped{Text: b.String(), offsets: offsets}
}

// Offset translates a byte offset of m.Text into a byte offset of the
// original string. Offsets outside Text are clamped.
func (m Mapped) Offset(i int) int {
	if len(m.offsets) == 0 {
		return 0
	}
	if i < 0 {
		i = 0
	}
	if i >= len(m.offsets) {
		i = len(m.offsets) - 1
	}
	return m.offsets[i]
}
