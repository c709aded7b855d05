package mcp

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/revelaction/lexica/render"
	"github.com/revelaction/lexica/storage"
)

func findWordsTool() mcp.Tool {
	return mcp.NewTool("find_words",
		mcp.WithDescription("List the distinct Greek word forms containing a partial word, ignoring case and diacritics."),
		mcp.WithString("partial", mcp.Required(), mcp.Description("Part of a word, with or without accents and breathings (e.g. ιησ)")),
	)
}

func searchVersesTool() mcp.Tool {
	return mcp.NewTool("search_verses",
		mcp.WithDescription("Find the verses containing a Greek word in its normalized form. Spans are UTF-8 byte offsets of every form of the word in the verse text."),
		mcp.WithString("word", mcp.Required(), mcp.Description("The normalized word, with diacritics (e.g. λόγος)")),
	)
}

func (s *Server) handleFindWords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	partial, ok := stringArg(req, "partial")
	if !ok {
		return mcp.NewToolResultError("partial parameter is required"), nil
	}

	words, err := s.search.Words(partial)
	if err != nil {
		return s.toolError("find_words", err), nil
	}

	var buf bytes.Buffer
	if err := render.NewJSONRenderer(&buf).Words(partial, words); err != nil {
		return nil, err
	}

	s.logger.Debug("find_words", "partial", partial, "words", len(words))
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handleSearchVerses(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	word, ok := stringArg(req, "word")
	if !ok {
		return mcp.NewToolResultError("word parameter is required"), nil
	}

	hits, err := s.search.Verses(word)
	if err != nil {
		return s.toolError("search_verses", err), nil
	}

	var buf bytes.Buffer
	if err := render.NewJSONRenderer(&buf).Verses(word, hits); err != nil {
		return nil, err
	}

	s.logger.Debug("search_verses", "word", word, "verses", len(hits))
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) toolError(tool string, err error) *mcp.CallToolResult {
	s.logger.Error("tool failed", "tool", tool, "error", err)
	if errors.Is(err, storage.ErrUnavailable) {
		return mcp.NewToolResultError("the token data is unavailable: " + err.Error())
	}
	return mcp.NewToolResultError(err.Error())
}

// stringArg returns a non blank string argument.
func stringArg(req mcp.CallToolRequest, name string) (string, bool) {
	v, _ := req.GetArguments()[name].(string)
	v = strings.TrimSpace(v)
	return v, v != ""
}
