package zombiezen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/revelaction/lexica/fold"
	"github.com/revelaction/lexica/storage"
	"github.com/revelaction/lexica/verse"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type TokenStore struct {
	pool   *sqlitex.Pool
	table  string
	logger *slog.Logger
}

var _ storage.TokenRepository = (*TokenStore)(nil)

// NewTokenStore returns a store reading the given token table. An empty
// table means DefaultTable.
func NewTokenStore(pool *sqlitex.Pool, table string) *TokenStore {
	if table == "" {
		table = DefaultTable
	}
	return &TokenStore{
		pool:   pool,
		table:  table,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithLogger sets the logger used for query tracing.
func (h *TokenStore) WithLogger(l *slog.Logger) *TokenStore {
	if l != nil {
		h.logger = l
	}
	return h
}

// Table returns the name of the token table.
func (h *TokenStore) Table() string {
	return h.table
}

func (h *TokenStore) take() (*sqlite.Conn, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return conn, nil
}

// FindCandidates matches key as a plain substring of text_nfd (instr), so
// LIKE wildcards in the key have no special meaning.
func (h *TokenStore) FindCandidates(key string, limit int, onCandidate func(text, normalized string) error) error {
	if key == "" || limit <= 0 {
		return nil
	}

	conn, err := h.take()
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	query := fmt.Sprintf("SELECT DISTINCT text, normalized FROM %s WHERE instr(text_nfd, ?) > 0 LIMIT ?", quote(h.table))
	h.logger.Debug("find candidates", "key", key, "limit", limit)

	var cbErr error
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: []any{key, limit},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			if cbErr = onCandidate(stmt.ColumnText(0), stmt.ColumnText(1)); cbErr != nil {
				return cbErr
			}
			return nil
		},
	})
	if cbErr != nil {
		return cbErr
	}
	if err != nil {
		return fmt.Errorf("%w: find candidates: %v", storage.ErrUnavailable, err)
	}

	return nil
}

// FindVerseTokens first collects the verse prefixes of the tokens whose
// normalized form is word, then reads those verses in id order.
func (h *TokenStore) FindVerseTokens(word string, onToken func(verse.Token) error) error {
	conn, err := h.take()
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	table := quote(h.table)
	h.logger.Debug("find verse tokens", "word", word, "table", h.table)

	// We need to fetch the verse prefixes first
	prefixes := map[string]bool{}
	err = sqlitex.Execute(conn, fmt.Sprintf("SELECT id FROM %s WHERE normalized = ?", table), &sqlitex.ExecOptions{
		Args: []any{word},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			prefixes[verse.Prefix(stmt.ColumnText(0))] = true
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("%w: find verses: %v", storage.ErrUnavailable, err)
	}

	if len(prefixes) == 0 {
		return nil
	}

	sorted := make([]string, 0, len(prefixes))
	for p := range prefixes {
		sorted = append(sorted, p)
	}
	sort.Strings(sorted)

	query := verseQuery(h.table)

	var cbErr error
	for _, prefix := range sorted {
		err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{prefix, prefix + idUpperBound},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				t := verse.Token{
					Id:         stmt.ColumnText(0),
					Ref:        stmt.ColumnText(1),
					Text:       stmt.ColumnText(2),
					Normalized: stmt.ColumnText(3),
					Key:        stmt.ColumnText(4),
					After:      stmt.ColumnText(5),
				}
				cbErr = onToken(t)
				return cbErr
			},
		})
		if cbErr != nil {
			return cbErr
		}
		if err != nil {
			return fmt.Errorf("%w: read verse %s: %v", storage.ErrUnavailable, prefix, err)
		}
	}

	return nil
}

// idUpperBound sorts after any id character, so [prefix, prefix+idUpperBound)
// is the range of the ids starting with prefix.
const idUpperBound = "\U0010FFFF"

// verseQuery reads the tokens of one verse as a range of the primary key, so
// that the id index is used.
func verseQuery(table string) string {
	return fmt.Sprintf(`SELECT id, ref, text, normalized, text_nfd, after
		FROM %s WHERE id >= ? AND id < ? ORDER BY id`, quote(table))
}

// Write inserts (or replaces) tokens in one transaction. text_nfd is always
// computed from the normalized form.
func (h *TokenStore) Write(tokens []verse.Token) (err error) {
	conn, err := h.take()
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	query := fmt.Sprintf(`INSERT OR REPLACE INTO %s (id, ref, text, normalized, text_nfd, after)
		VALUES (?, ?, ?, ?, ?, ?)`, quote(h.table))

	for _, t := range tokens {
		err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{t.Id, t.Ref, t.Text, t.Normalized, fold.Key(t.Normalized), t.After},
		})
		if err != nil {
			return fmt.Errorf("failed to insert token %s: %w", t.Id, err)
		}
	}

	return nil
}

// Count returns the number of rows of the token table.
func (h *TokenStore) Count() (int, error) {
	conn, err := h.take()
	if err != nil {
		return 0, err
	}
	defer h.pool.Put(conn)

	var n int
	err = sqlitex.Execute(conn, fmt.Sprintf("SELECT count(*) FROM %s", quote(h.table)), &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			n = stmt.ColumnInt(0)
			return nil
		},
	})
	if err != nil {
		return 0, fmt.Errorf("%w: count: %v", storage.ErrUnavailable, err)
	}

	return n, nil
}
