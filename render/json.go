package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/lexica/match"
	"github.com/revelaction/lexica/search"
)

// JSONRenderer writes lookup results as JSON to a writer. Span offsets are
// bytes of the UTF-8 verse text.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

type wordsResult struct {
	Term  string   `json:"term"`
	Words []string `json:"words"`
}

type versesResult struct {
	Word   string       `json:"word"`
	Verses []search.Hit `json:"verses"`
}

// Words serializes the word forms found for term.
func (r *JSONRenderer) Words(term string, words []string) error {
	if words == nil {
		words = []string{}
	}
	return json.NewEncoder(r.W).Encode(wordsResult{Term: term, Words: words})
}

// Verses serializes the verses found for word.
func (r *JSONRenderer) Verses(word string, hits []search.Hit) error {
	out := make([]search.Hit, len(hits))
	for i, h := range hits {
		if h.Spans == nil {
			h.Spans = []match.Span{}
		}
		out[i] = h
	}
	return json.NewEncoder(r.W).Encode(versesResult{Word: word, Verses: out})
}

// compile-time interface check
var _ Output = (*JSONRenderer)(nil)
