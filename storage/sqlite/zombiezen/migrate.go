package zombiezen

import (
	"fmt"

	"github.com/revelaction/lexica/fold"
	"github.com/revelaction/lexica/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// KeyColumn is the cached diacritic-free, case folded column.
const KeyColumn = "text_nfd"

// maxStale is the number of stale ids reported by Check.
const maxStale = 10

// row is an (id, normalized) pair; normalized is nil for NULL.
type row struct {
	id         string
	normalized *string
}

// HasKeyColumn reports whether the token table has the text_nfd column.
func (h *TokenStore) HasKeyColumn() (bool, error) {
	conn, err := h.take()
	if err != nil {
		return false, err
	}
	defer h.pool.Put(conn)

	found := false
	exists := false
	err = sqlitex.Execute(conn, fmt.Sprintf("PRAGMA table_info(%s)", quote(h.table)), &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			exists = true
			if stmt.ColumnText(1) == KeyColumn {
				found = true
			}
			return nil
		},
	})
	if err != nil {
		return false, fmt.Errorf("%w: table info: %v", storage.ErrUnavailable, err)
	}
	if !exists {
		return false, fmt.Errorf("%w: no such table: %s", storage.ErrUnavailable, h.table)
	}

	return found, nil
}

// Migrate adds the text_nfd column if missing and sets it to
// fold.Key(normalized) for every row (NULL stays NULL). cb, if not nil, is
// called after each row. It returns the number of updated rows.
func (h *TokenStore) Migrate(cb func(current, total int)) (int, error) {
	has, err := h.HasKeyColumn()
	if err != nil {
		return 0, err
	}

	rows, err := h.rows()
	if err != nil {
		return 0, err
	}

	conn, err := h.take()
	if err != nil {
		return 0, err
	}
	defer h.pool.Put(conn)

	table := quote(h.table)

	if !has {
		err = sqlitex.Execute(conn, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s TEXT", table, KeyColumn), nil)
		if err != nil {
			return 0, fmt.Errorf("failed to add column %s: %w", KeyColumn, err)
		}
		h.logger.Info("column added", "table", h.table, "column", KeyColumn)
	}

	n, err := h.update(conn, rows, cb)
	if err != nil {
		return 0, err
	}

	h.logger.Info("column populated", "table", h.table, "column", KeyColumn, "rows", n)
	return n, nil
}

func (h *TokenStore) update(conn *sqlite.Conn, rows []row, cb func(current, total int)) (n int, err error) {
	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	query := fmt.Sprintf("UPDATE %s SET %s = ? WHERE id = ?", quote(h.table), KeyColumn)

	for i, r := range rows {
		var key any
		if k := fold.NullableKey(r.normalized); k != nil {
			key = *k
		}

		err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{key, r.id},
		})
		if err != nil {
			return n, fmt.Errorf("failed to update token %s: %w", r.id, err)
		}
		n++

		if cb != nil {
			cb(i+1, len(rows))
		}
	}

	return n, nil
}

func (h *TokenStore) rows() ([]row, error) {
	conn, err := h.take()
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var rows []row
	err = sqlitex.Execute(conn, fmt.Sprintf("SELECT id, normalized FROM %s ORDER BY id", quote(h.table)), &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			r := row{id: stmt.ColumnText(0)}
			if stmt.ColumnType(1) != sqlite.TypeNull {
				s := stmt.ColumnText(1)
				r.normalized = &s
			}
			rows = append(rows, r)
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: read rows: %v", storage.ErrUnavailable, err)
	}

	return rows, nil
}

// CheckResult is the outcome of Check.
type CheckResult struct {
	Rows  int
	Stale int

	// Ids of the first stale rows
	Ids []string
}

// Check verifies that text_nfd is fold.Key(normalized) in every row.
func (h *TokenStore) Check() (CheckResult, error) {
	var res CheckResult

	conn, err := h.take()
	if err != nil {
		return res, err
	}
	defer h.pool.Put(conn)

	query := fmt.Sprintf("SELECT id, normalized, %s FROM %s ORDER BY id", KeyColumn, quote(h.table))
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			res.Rows++

			normNull := stmt.ColumnType(1) == sqlite.TypeNull
			keyNull := stmt.ColumnType(2) == sqlite.TypeNull

			var ok bool
			switch {
			case normNull:
				ok = keyNull
			case keyNull:
				ok = false
			default:
				ok = stmt.ColumnText(2) == fold.Key(stmt.ColumnText(1))
			}

			if !ok {
				res.Stale++
				if len(res.Ids) < maxStale {
					res.Ids = append(res.Ids, stmt.ColumnText(0))
				}
			}
			return nil
		},
	})
	if err != nil {
		return res, fmt.Errorf("%w: check: %v", storage.ErrUnavailable, err)
	}

	return res, nil
}
