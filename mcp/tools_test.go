package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"

	"github.com/revelaction/lexica/search"
	"github.com/revelaction/lexica/storage"
	"github.com/revelaction/lexica/storage/filesystem"
	"github.com/revelaction/lexica/verse"
)

type brokenRepo struct{}

func (brokenRepo) FindCandidates(string, int, func(string, string) error) error {
	return fmt.Errorf("%w: no such table", storage.ErrUnavailable)
}

func (brokenRepo) FindVerseTokens(string, func(verse.Token) error) error {
	return errors.New("boom")
}

func newServer(t *testing.T) *Server {
	t.Helper()
	store, err := filesystem.NewTokenStore("../storage/filesystem/testdata/sblgnt.tsv")
	require.NoError(t, err)
	return NewServer(search.New(store), "test", nil)
}

func request(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestFindWords(t *testing.T) {
	s := newServer(t)

	res, err := s.handleFindWords(context.Background(), request("find_words", map[string]any{"partial": "ΙΗΣΟΥ"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var got struct {
		Term  string   `json:"term"`
		Words []string `json:"words"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	assert.Equal(t, "ΙΗΣΟΥ", got.Term)
	assert.Equal(t, []string{norm.NFC.String("Ἰησοῦ"), norm.NFC.String("Ἰησοῦς")}, got.Words)
}

func TestFindWordsMissingArgument(t *testing.T) {
	s := newServer(t)

	for _, args := range []map[string]any{nil, {"partial": "  "}, {"partial": 3}} {
		res, err := s.handleFindWords(context.Background(), request("find_words", args))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	}
}

func TestSearchVerses(t *testing.T) {
	s := newServer(t)

	word := norm.NFC.String("λόγος")
	res, err := s.handleSearchVerses(context.Background(), request("search_verses", map[string]any{"word": word}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var got struct {
		Word   string `json:"word"`
		Verses []struct {
			Ref   string `json:"ref"`
			Text  string `json:"text"`
			Spans []struct {
				Start int `json:"start"`
				End   int `json:"end"`
			} `json:"spans"`
		} `json:"verses"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	require.Len(t, got.Verses, 1)

	v := got.Verses[0]
	assert.Equal(t, "JHN 1:1", v.Ref)
	require.Len(t, v.Spans, 3)
	for _, sp := range v.Spans {
		assert.Equal(t, word, v.Text[sp.Start:sp.End])
	}
}

func TestToolErrors(t *testing.T) {
	s := NewServer(search.New(brokenRepo{}), "test", nil)

	res, err := s.handleFindWords(context.Background(), request("find_words", map[string]any{"partial": "λογ"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "unavailable")

	res, err = s.handleSearchVerses(context.Background(), request("search_verses", map[string]any{"word": "λόγος"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "boom")
}
