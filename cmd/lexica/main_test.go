package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	"github.com/revelaction/lexica/storage"
)

const fixture = "../../storage/filesystem/testdata/sblgnt.tsv"

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	ui := UI{Out: &out, Err: &errOut}

	err := newApp(ui).Run(append([]string{"lexica", "--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	return out.String(), errOut.String(), err
}

func TestWordsCommand(t *testing.T) {
	out, _, err := run(t, "--db", fixture, "--no-color", "words", "ιησου")
	require.NoError(t, err)

	assert.Contains(t, out, "Words matching 'ιησου':")
	assert.Contains(t, out, "  - "+norm.NFC.String("Ἰησοῦ")+"\n")
	assert.Contains(t, out, "  - "+norm.NFC.String("Ἰησοῦς")+"\n")
}

func TestWordsCommandNoMatches(t *testing.T) {
	out, _, err := run(t, "--db", fixture, "w", "ξξξ")
	require.NoError(t, err)
	assert.Equal(t, "\nNo matches found for 'ξξξ'.\n", out)
}

func TestWordsCommandLimit(t *testing.T) {
	out, _, err := run(t, "--db", fixture, "--limit", "1", "words", "--format", "json", "ιησου")
	require.NoError(t, err)

	var got struct {
		Words []string `json:"words"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.Words, 1)
}

func TestVersesCommand(t *testing.T) {
	out, _, err := run(t, "--db", fixture, "--no-color", "verses", norm.NFC.String("Ἰησοῦ"))
	require.NoError(t, err)

	assert.Contains(t, out, "Found 2 verse(s)")
	assert.Contains(t, out, "MAT 1:1\n    ")
	assert.Contains(t, out, "JHN 1:17\n    ")
}

func TestVersesCommandJSON(t *testing.T) {
	word := norm.NFC.String("λόγος")
	out, _, err := run(t, "--db", fixture, "v", "--format", "json", word)
	require.NoError(t, err)

	var got struct {
		Word   string `json:"word"`
		Verses []struct {
			Ref string `json:"ref"`
		} `json:"verses"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, word, got.Word)
	require.Len(t, got.Verses, 1)
	assert.Equal(t, "JHN 1:1", got.Verses[0].Ref)
}

func TestCommandErrors(t *testing.T) {
	_, _, err := run(t, "--db", fixture, "words")
	assert.ErrorContains(t, err, "exactly one argument")

	_, _, err = run(t, "--db", fixture, "verses", "--format", "xml", "λόγος")
	assert.ErrorContains(t, err, "unknown format")

	_, _, err = run(t, "--db", filepath.Join(t.TempDir(), "missing.sqlite3"), "words", "λογ")
	assert.ErrorIs(t, err, storage.ErrUnavailable)

	_, _, err = run(t, "--db", fixture, "check")
	assert.ErrorContains(t, err, "not a SQLite database")

	_, _, err = run(t, "--db", fixture, "--log-level", "loud", "words", "λογ")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestImportThenSearch(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lexica.sqlite3")

	out, _, err := run(t, "--db", db, "import", fixture)
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully imported 55 tokens")

	out, _, err = run(t, "--db", db, "--no-color", "verses", "--format", "ref", norm.NFC.String("Ἰησοῦ"))
	require.NoError(t, err)
	assert.Contains(t, out, "MAT 1:1\nJHN 1:17\n")

	out, _, err = run(t, "--db", db, "check")
	require.NoError(t, err)
	assert.Equal(t, "55 rows, 0 stale\n", out)

	out, _, err = run(t, "--db", db, "migrate")
	require.NoError(t, err)
	assert.Equal(t, "Updated 55 rows of macula-greek-SBLGNT\n", out)
}

func TestCheckMissingTable(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lexica.sqlite3")

	_, _, err := run(t, "--db", db, "import", fixture)
	require.NoError(t, err)

	_, _, err = run(t, "--db", db, "--table", "tokens", "check")
	assert.ErrorIs(t, err, storage.ErrUnavailable)
}

func TestMaintenanceMissingDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "lexica.sqlite3")

	for _, cmd := range []string{"check", "migrate"} {
		_, _, err := run(t, "--db", db, cmd)
		assert.ErrorIs(t, err, storage.ErrUnavailable, cmd)
		assert.NoFileExists(t, db, cmd)
	}
}

func TestQueryCommandRejectsFormat(t *testing.T) {
	_, _, err := run(t, "--db", fixture, "query", "--format", "json")
	assert.ErrorContains(t, err, "unknown format \"json\"")
}

func TestVersionAndBash(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "lexica version dev (commit: none)\n", out)

	out, _, err = run(t, "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "complete -o default -F _lexica_autocomplete lexica")
}

func TestStatCommand(t *testing.T) {
	out, _, err := run(t, "--db", fixture, "stat", norm.NFC.String("Ἰησοῦ"))
	require.NoError(t, err)
	want := "Num verses 2, num tokens per verse 11\n" +
		"Verses per book\n  JHN 1\n  MAT 1\n" +
		"Verses per number of tokens\n  8 1\n  15 1\n"
	assert.Equal(t, want, out)
}
