package filesystem

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revelaction/lexica/fold"
	"github.com/revelaction/lexica/storage"
	"github.com/revelaction/lexica/verse"
)

// Ext is the extension of the corpus files read from a directory.
const Ext = ".tsv"

// TokenStore keeps a TSV corpus (f.ex. macula-greek-SBLGNT.tsv) in memory.
type TokenStore struct {
	paths []string

	// In-memory cache, ordered by id
	tokens []verse.Token
	loaded bool
}

var _ storage.TokenRepository = (*TokenStore)(nil)
var _ storage.Preloader = (*TokenStore)(nil)

// NewTokenStore creates a store for a TSV file or for all TSV files of a
// directory. Contents are read by Preload, or on first use.
func NewTokenStore(path string) (*TokenStore, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	if !info.IsDir() {
		return &TokenStore{paths: []string{path}}, nil
	}

	files, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}

	var paths []string
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != Ext {
			continue
		}
		paths = append(paths, filepath.Join(path, file.Name()))
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no %s files in %s", storage.ErrUnavailable, Ext, path)
	}

	return &TokenStore{paths: paths}, nil
}

// Preload reads all corpus files into memory. cb, if not nil, is called
// before each file is read.
func (s *TokenStore) Preload(cb func(current, total int, name string)) error {
	var tokens []verse.Token

	total := len(s.paths)
	for i, path := range s.paths {
		if cb != nil {
			cb(i+1, total, filepath.Base(path))
		}

		fileTokens, err := ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
		}
		tokens = append(tokens, fileTokens...)
	}

	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].Id < tokens[j].Id
	})

	s.tokens = tokens
	s.loaded = true
	return nil
}

// Len returns the number of tokens in memory.
func (s *TokenStore) Len() int {
	return len(s.tokens)
}

func (s *TokenStore) load() error {
	if s.loaded {
		return nil
	}
	return s.Preload(nil)
}

// FindCandidates scans the tokens in id order.
func (s *TokenStore) FindCandidates(key string, limit int, onCandidate func(text, normalized string) error) error {
	if err := s.load(); err != nil {
		return err
	}

	if key == "" || limit <= 0 {
		return nil
	}

	type pair struct{ text, normalized string }

	seen := map[pair]bool{}
	for _, t := range s.tokens {
		p := pair{t.Text, t.Normalized}
		if seen[p] || !strings.Contains(t.Key, key) {
			continue
		}

		seen[p] = true
		if err := onCandidate(t.Text, t.Normalized); err != nil {
			return err
		}

		if len(seen) >= limit {
			break
		}
	}

	return nil
}

// FindVerseTokens makes two passes: one to collect the verses containing
// word, one to emit their tokens.
func (s *TokenStore) FindVerseTokens(word string, onToken func(verse.Token) error) error {
	if err := s.load(); err != nil {
		return err
	}

	verses := map[string]bool{}
	for _, t := range s.tokens {
		if t.Normalized == word {
			verses[verse.Prefix(t.Id)] = true
		}
	}

	if len(verses) == 0 {
		return nil
	}

	for _, t := range s.tokens {
		if !verses[verse.Prefix(t.Id)] {
			continue
		}
		if err := onToken(t); err != nil {
			return err
		}
	}

	return nil
}

func (s *TokenStore) Write(tokens []verse.Token) error {
	return fmt.Errorf("read-only storage")
}

// ReadFile reads the tokens of a TSV corpus file.
func ReadFile(path string) ([]verse.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	tokens, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return tokens, nil
}

// Read parses tab separated token rows. The first row is a header; columns
// are found by name, so extra columns (lemma, morph, gloss...) are ignored.
// The id column may be named "xml:id" or "id". The Key of each token is
// computed from its normalized form.
func Read(r io.Reader) ([]verse.Token, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("TSV decoding error: empty file")
		}
		return nil, fmt.Errorf("TSV decoding error: %w", err)
	}

	cols, err := columns(header)
	if err != nil {
		return nil, err
	}

	var tokens []verse.Token
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("TSV decoding error: %w", err)
		}

		t := verse.Token{
			Id:         field(record, cols.id),
			Ref:        field(record, cols.ref),
			Text:       field(record, cols.text),
			Normalized: field(record, cols.normalized),
			After:      field(record, cols.after),
		}
		if t.Id == "" {
			continue
		}
		t.Key = fold.Key(t.Normalized)

		tokens = append(tokens, t)
	}

	return tokens, nil
}

type columnIndex struct {
	id, ref, text, normalized, after int
}

func columns(header []string) (columnIndex, error) {
	cols := columnIndex{id: -1, ref: -1, text: -1, normalized: -1, after: -1}
	for i, name := range header {
		switch name {
		case "xml:id", "id":
			cols.id = i
		case "ref":
			cols.ref = i
		case "text":
			cols.text = i
		case "normalized":
			cols.normalized = i
		case "after":
			cols.after = i
		}
	}

	switch {
	case cols.id < 0:
		return cols, errors.New("TSV decoding error: missing id column")
	case cols.text < 0:
		return cols, errors.New("TSV decoding error: missing text column")
	case cols.normalized < 0:
		return cols, errors.New("TSV decoding error: missing normalized column")
	}

	return cols, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
