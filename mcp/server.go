package mcp

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/revelaction/lexica/search"
)

const (
	// ServerName is the MCP server name
	ServerName = "lexica"
)

// Server exposes the word and verse lookups as MCP tools.
type Server struct {
	mcp    *server.MCPServer
	search *search.Search
	logger *slog.Logger
}

// NewServer creates the MCP server and registers its tools.
func NewServer(s *search.Search, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	srv := &Server{
		mcp:    server.NewMCPServer(ServerName, version, server.WithToolCapabilities(false)),
		search: s,
		logger: logger,
	}

	srv.mcp.AddTool(findWordsTool(), srv.handleFindWords)
	srv.mcp.AddTool(searchVersesTool(), srv.handleSearchVerses)

	return srv
}

// Serve runs the server on stdio until the input is closed or ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	return s.Listen(ctx, os.Stdin, os.Stdout)
}

// Listen serves the protocol on the given streams until in is closed or ctx
// is done.
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("mcp server listening", "name", ServerName)

	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	err := stdio.Listen(ctx, in, out)
	if ctx.Err() != nil {
		s.logger.Info("mcp server stopped", "reason", ctx.Err())
		return nil
	}
	return err
}
