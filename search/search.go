package search

import (
	"github.com/revelaction/lexica/fold"
	"github.com/revelaction/lexica/match"
	"github.com/revelaction/lexica/storage"
	"github.com/revelaction/lexica/verse"
)

// DefaultLimit is the maximum number of word forms returned by Words.
const DefaultLimit = 10

// Search runs the word and verse lookups against a token repository.
type Search struct {
	repo  storage.TokenReader
	limit int
}

// New creates a new Search instance with the given repository.
func New(r storage.TokenReader) *Search {
	return &Search{
		repo:  r,
		limit: DefaultLimit,
	}
}

// WithLimit sets the maximum number of word forms returned by Words.
// Non-positive values are ignored.
func (s *Search) WithLimit(n int) *Search {
	if n > 0 {
		s.limit = n
	}
	return s
}

// Limit returns the configured word limit.
func (s *Search) Limit() int {
	return s.limit
}

// Words returns the distinct surface forms whose diacritic-free form
// contains partial, ignoring case and diacritics. The result is empty (not
// an error) when partial folds to the empty string or nothing matches.
func (s *Search) Words(partial string) ([]string, error) {
	forms, err := s.Forms(partial)
	if err != nil || forms == nil {
		return nil, err
	}

	words := []string{}
	seen := map[string]bool{}
	for _, f := range forms {
		if seen[f.Text] {
			continue
		}
		seen[f.Text] = true
		words = append(words, f.Text)
	}

	return words, nil
}

// Form is a surface form of a word with the normalized form used by Verses.
type Form struct {
	Text       string `json:"text"`
	Normalized string `json:"normalized"`
}

// Forms is Words with the normalized form of each surface form, so that a
// chosen form can be passed to Verses.
func (s *Search) Forms(partial string) ([]Form, error) {
	key := fold.Key(partial)
	if key == "" {
		return nil, nil
	}

	forms := []Form{}
	texts := map[string]bool{}
	seen := map[Form]bool{}
	err := s.repo.FindCandidates(key, s.limit, func(text, normalized string) error {
		f := Form{Text: text, Normalized: normalized}
		if seen[f] || (!texts[text] && len(texts) >= s.limit) {
			return nil
		}
		seen[f] = true
		texts[text] = true
		forms = append(forms, f)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return forms, nil
}

// Hit is a verse containing the searched word, with the spans of the word
// in the verse text.
type Hit struct {
	verse.Verse
	Spans []match.Span `json:"spans"`
}

// Verses returns, in id order, every verse containing a token whose
// normalized form is exactly word. Spans are found ignoring case and
// diacritics, so they mark every form of the word in the verse.
func (s *Search) Verses(word string) ([]Hit, error) {
	var tokens []verse.Token
	err := s.repo.FindVerseTokens(word, func(t verse.Token) error {
		tokens = append(tokens, t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Assemble the whole verse before matching: spans are offsets in the
	// final text.
	verses := verse.Group(tokens)
	hits := make([]Hit, 0, len(verses))
	for _, v := range verses {
		hits = append(hits, Hit{
			Verse: v,
			Spans: match.Find(v.Text, word),
		})
	}

	return hits, nil
}

// VerseMap returns Verses as a mapping from verse reference to verse text
// highlighted with mk.
func (s *Search) VerseMap(word string, mk match.Marker) (map[string]string, error) {
	hits, err := s.Verses(word)
	if err != nil {
		return nil, err
	}

	m := make(map[string]string, len(hits))
	for _, h := range hits {
		m[h.Ref] = match.Apply(h.Text, h.Spans, mk)
	}

	return m, nil
}
