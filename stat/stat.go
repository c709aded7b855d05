package stat

import (
	"github.com/revelaction/lexica/verse"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumVerses          int
	NumTokens          int
	TokensPerVerseMean int
	TokensPerVerseDis  map[int]int

	// Books maps the book code of the reference (f.ex. JHN) to its number
	// of verses
	Books map[string]int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{TokensPerVerseDis: map[int]int{}, Books: map[string]int{}}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the verses to the statistics. It can be called repeatedly.
func (h *Handler) Aggregate(verses []verse.Verse) {
	h.stats.NumVerses += len(verses)
	//
	for _, v := range verses {
		h.stats.NumTokens += len(v.Tokens)
		h.stats.TokensPerVerseDis[len(v.Tokens)]++
		h.stats.Books[book(v.Ref)]++
	}

	if h.stats.NumVerses > 0 {
		h.stats.TokensPerVerseMean = h.stats.NumTokens / h.stats.NumVerses
	}
}

func book(ref string) string {
	for i := 0; i < len(ref); i++ {
		if ref[i] == ' ' {
			return ref[:i]
		}
	}
	return ref
}
