package zombiezen

import (
	"context"
	"embed"
	"fmt"
	"path"
	"strings"

	"zombiezen.com/go/sqlite/sqlitex"
)

// sqlFiles embeds all SQL scripts from the sql/ subdirectory.
//
//go:embed sql/*.sql
var sqlFiles embed.FS

// CreateSchema reads a SQL script from the embedded filesystem (e.g.,
// "tokens.sql") and executes it for the given table. The {{table}}
// placeholders of the script are replaced by the quoted table name.
func CreateSchema(pool *sqlitex.Pool, schemaName, table string) error {
	scriptPath := path.Join("sql", schemaName)

	script, err := sqlFiles.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read embedded sql file %s: %w", scriptPath, err)
	}

	r := strings.NewReplacer(
		"{{table}}", quote(table),
		"{{table_normalized_idx}}", quote(table+"_normalized_idx"),
	)

	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	// ExecuteScript handles multi-statement strings.
	if err := sqlitex.ExecuteScript(conn, r.Replace(string(script)), nil); err != nil {
		return fmt.Errorf("failed to execute script %s: %w", schemaName, err)
	}

	return nil
}
