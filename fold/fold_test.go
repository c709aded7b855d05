package fold

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

var samples = []string{
	"",
	"Ἰησοῦς",
	"Βίβλος γενέσεως Ἰησοῦ Χριστοῦ υἱοῦ Δαυὶδ υἱοῦ Ἀβραάμ.",
	"ἐν ἀρχῇ ἦν ὁ λόγος",
	"Καί εἶπεν· ",
	"ΘΕΌΣ",
	"İstanbul",
	"straße",
	"Μωϋσέως",
	"plain ascii",
	"(.*)+?[]",
	"τῷ λόγῳ αὐτῷ",
	"ᾠδὴν ᾗ ᾼ",
}

func TestStripGreek(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ἰησοῦς", "Ιησους"},
		{"ἀρχῇ", "αρχη"},
		{"Μωϋσέως", "Μωυσεως"},
		{"Δαυὶδ", "Δαυιδ"},
		{"", ""},
		{"abc", "abc"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Strip(tt.in), "Strip(%q)", tt.in)
	}
}

func TestStripDecomposedInput(t *testing.T) {
	decomposed := norm.NFD.String("Ἰησοῦς")
	require.NotEqual(t, "Ἰησοῦς", decomposed)
	assert.Equal(t, "Ιησους", Strip(decomposed))
}

func TestKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ἰησοῦς", "ιησουσ"},
		{"ιησους", "ιησουσ"},
		{"ΘΕΌΣ", "θεοσ"},
		{"καὶ", "και"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Key(tt.in), "Key(%q)", tt.in)
	}
}

func TestKeyDropsIotaSubscript(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"τῷ", "τω"},
		{"αὐτῷ", "αυτω"},
		{"ᾠδήν", "ωδην"},
		{"ᾗ", "η"},
		{"ᾼ", "α"},
		{norm.NFD.String("ᾠδήν"), "ωδην"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Key(tt.in), "Key(%q)", tt.in)
		assert.Equal(t, Key(Strip(tt.in)), Key(tt.in), "Key(%q) differs from the key of its stripped form", tt.in)
	}
}

func TestKeySameForBothSides(t *testing.T) {
	// the stored column and the typed term meet on the same function
	assert.Equal(t, Key("Ἰησοῦς"), Key("ΙΗΣΟΥΣ"))
	assert.Equal(t, Key("Ἰησοῦς"), Key("ιησους"))
}

func TestIdempotent(t *testing.T) {
	for _, s := range samples {
		k := Key(s)
		assert.Equal(t, k, Key(k), "Key not idempotent for %q", s)

		st := Strip(s)
		assert.Equal(t, st, Strip(st), "Strip not idempotent for %q", s)
	}
}

func TestNoMarksRemain(t *testing.T) {
	for _, s := range samples {
		for _, r := range Key(s) {
			assert.False(t, unicode.Is(unicode.Mn, r), "Key(%q) contains mark %U", s, r)
		}
		for _, r := range Strip(s) {
			assert.False(t, unicode.Is(unicode.Mn, r), "Strip(%q) contains mark %U", s, r)
		}
	}
}

func TestCleanTextUnchanged(t *testing.T) {
	for _, s := range []string{"λογοσ", "ιησουσ", "abc xyz", "Λογος"} {
		assert.Equal(t, s, Strip(s))
	}
	assert.Equal(t, "λογοσ", Key("λογοσ"))
}

func TestNullableKey(t *testing.T) {
	assert.Nil(t, NullableKey(nil))

	s := "Ἰησοῦς"
	got := NullableKey(&s)
	require.NotNil(t, got)
	assert.Equal(t, "ιησουσ", *got)

	empty := ""
	got = NullableKey(&empty)
	require.NotNil(t, got)
	assert.Equal(t, "", *got)
}

func TestMapText(t *testing.T) {
	for _, s := range samples {
		assert.Equal(t, Strip(s), Map(s).Text, "Map(%q)", s)
	}
}

func TestMapOffsetsPrecomposed(t *testing.T) {
	s := norm.NFC.String("Ἰησοῦς")
	m := Map(s)
	require.Equal(t, "Ιησους", m.Text)

	// every Greek letter is 2 bytes folded, the precomposed ones 3 in s
	assert.Equal(t, 0, m.Offset(0))
	assert.Equal(t, 3, m.Offset(2)) // η
	assert.Equal(t, 9, m.Offset(8)) // ῦ
	assert.Equal(t, len(s), m.Offset(len(m.Text)))
}

func TestMapOffsetsDecomposed(t *testing.T) {
	s := norm.NFD.String("ἦν")
	m := Map(s)
	require.Equal(t, "ην", m.Text)

	// ν starts after η and both of its marks
	assert.Equal(t, len(s)-len("ν"), m.Offset(2))
	assert.Equal(t, len(s), m.Offset(len(m.Text)))
}

func TestMapOffsetClamp(t *testing.T) {
	m := Map("αβ")
	assert.Equal(t, 0, m.Offset(-5))
	assert.Equal(t, len("αβ"), m.Offset(100))

	var zero Mapped
	assert.Equal(t, 0, zero.Offset(3))
}
