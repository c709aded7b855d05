package verse

import (
	"strings"
	"unicode/utf8"
)

// Token is a word of the corpus, with its trailing punctuation and spacing.
type Token struct {
	// The token identifier, f.ex. n40001001001: book (2 digits), chapter
	// (3), verse (3) and word position (3), optionally prefixed by letters.
	Id string `json:"id"`

	// The verse reference with the word position, f.ex. "MAT 1:1!1"
	Ref string `json:"ref"`

	// The unmodified word, as displayed
	Text string `json:"text"`

	// The normalized form, diacritics retained
	Normalized string `json:"normalized"`

	// Key is the diacritic-free, case folded Normalized (text_nfd column).
	// It is derived, see fold.Key.
	Key string `json:"text_nfd"`

	// Punctuation and spacing following the word
	After string `json:"after"`
}

// Verse is the ordered sequence of tokens sharing a verse prefix.
type Verse struct {
	Id     string  `json:"id"`
	Ref    string  `json:"ref"`
	Text   string  `json:"text"`
	Tokens []Token `json:"-"`
}

const verseDigits = 8

// punctuation that must always be followed by a space in a rendered verse.
// U+0387 is the Greek ano teleia, U+00B7 its canonical equivalent.
var punctuation = ",.;\u00b7\u0387"

// Prefix returns the verse identifying part of a token id: the letter
// prefix followed by book, chapter and verse digits. Ids shorter than that
// are returned unchanged.
func Prefix(id string) string {
	i := 0
	for i < len(id) && (id[i] < '0' || id[i] > '9') {
		i++
	}

	if len(id)-i <= verseDigits {
		return id
	}

	return id[:i+verseDigits]
}

// RefOf removes the word position from a token reference:
//
//	MAT 1:1!3 -> MAT 1:1
func RefOf(ref string) string {
	if i := strings.IndexByte(ref, '!'); i >= 0 {
		return ref[:i]
	}
	return ref
}

// Spaced makes sure that an after field ending with punctuation is followed
// by a space.
func Spaced(after string) string {
	if after == "" || strings.HasSuffix(after, " ") {
		return after
	}

	last, _ := utf8.DecodeLastRuneInString(after)
	if strings.ContainsRune(punctuation, last) {
		return after + " "
	}

	return after
}

// Assemble concatenates the text and (spaced) after fields of the tokens,
// in the given order.
func Assemble(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
		b.WriteString(Spaced(t.After))
	}
	return b.String()
}

// Group splits tokens, ordered by id, into verses. Tokens of a verse must be
// contiguous; a verse prefix that appears again after another verse starts a
// new verse.
func Group(tokens []Token) []Verse {
	var verses []Verse

	start := 0
	for i := 1; i <= len(tokens); i++ {
		if i < len(tokens) && Prefix(tokens[i].Id) == Prefix(tokens[start].Id) {
			continue
		}

		vt := tokens[start:i]
		verses = append(verses, Verse{
			Id:     Prefix(vt[0].Id),
			Ref:    RefOf(vt[0].Ref),
			Text:   Assemble(vt),
			Tokens: vt,
		})
		start = i
	}

	return verses
}
