package storage

import (
	"errors"

	"github.com/revelaction/lexica/verse"
)

// ErrUnavailable is returned (wrapped) when the underlying dataset can not
// be reached or read. It is final for the query: callers report it, they do
// not retry.
var ErrUnavailable = errors.New("data unavailable")

// TokenReader defines the read operations needed by the lookups.
type TokenReader interface {
	// FindCandidates calls onCandidate with the distinct (surface form,
	// normalized form) pairs of the tokens whose key (text_nfd) contains key,
	// in storage order, at most limit times. key must already be folded with
	// fold.Key.
	FindCandidates(key string, limit int, onCandidate func(text, normalized string) error) error

	// FindVerseTokens calls onToken, in id order, for every token of every
	// verse that contains a token whose normalized form is exactly word.
	FindVerseTokens(word string, onToken func(verse.Token) error) error
}

// TokenWriter defines write operations for token storage
type TokenWriter interface {
	// Write persists tokens. The Key field is recomputed from Normalized.
	Write(tokens []verse.Token) error
}

// TokenRepository combines read and write operations
type TokenRepository interface {
	TokenReader
	TokenWriter
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(cb func(current, total int, name string)) error
}
