package match

import (
	"regexp"
	"strings"

	"github.com/revelaction/lexica/fold"
)

// Span is a matched range of the original text, as byte offsets
// [Start, End).
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Marker wraps a matched span for display.
type Marker struct {
	Open  string
	Close string
}

var (
	// ANSI highlights with a bright yellow terminal color.
	ANSI = Marker{Open: "\033[93m", Close: "\033[0m"}

	// Markup uses rich text tags, as understood by TUI toolkits.
	Markup = Marker{Open: "[bold yellow]", Close: "[/bold yellow]"}

	// None leaves the text untouched.
	None = Marker{}
)

// Find returns the spans of original that match term, ignoring case and
// diacritics on both sides.
//
// Matches are leftmost first and never overlap: "ααα" searched for "αα" has
// a single match at 0. An empty term, or one that is only made of
// diacritics, matches nothing. The term is a literal, regexp metacharacters
// are quoted.
//
// Span offsets always refer to original, and always cover whole runes of
// original, including the combining marks that follow a matched letter.
func Find(original, term string) []Span {
	needle := fold.Strip(term)
	if needle == "" || original == "" {
		return nil
	}

	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(needle))
	if err != nil {
		// QuoteMeta output always compiles
		return nil
	}

	m := fold.Map(original)
	locs := re.FindAllStringIndex(m.Text, -1)
	if len(locs) == 0 {
		return nil
	}

	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		start, end := m.Offset(loc[0]), m.Offset(loc[1])
		if end <= start {
			continue
		}
		spans = append(spans, Span{Start: start, End: end})
	}

	return spans
}

// Highlight returns original with every match of term wrapped by mk.
// Unmatched text, and the diacritics inside the matched text, are copied
// verbatim.
func Highlight(original, term string, mk Marker) string {
	return Apply(original, Find(original, term), mk)
}

// Apply wraps the given spans of text with mk. spans must be sorted and
// non-overlapping, as returned by Find.
func Apply(text string, spans []Span, mk Marker) string {
	if len(spans) == 0 || (mk.Open == "" && mk.Close == "") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(spans)*(len(mk.Open)+len(mk.Close)))

	last := 0
	for _, sp := range spans {
		if sp.Start < last || sp.End > len(text) {
			continue
		}
		b.WriteString(text[last:sp.Start])
		b.WriteString(mk.Open)
		b.WriteString(text[sp.Start:sp.End])
		b.WriteString(mk.Close)
		last = sp.End
	}
	b.WriteString(text[last:])

	return b.String()
}
