package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/lexica/mcp"
)

func mcpCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "serve the find_words and search_verses tools over stdio (Model Context Protocol)",
		Action: func(c *cli.Context) error {
			// stdout belongs to the protocol: no progress bars
			s, err := e.newSearch(false)
			if err != nil {
				return err
			}

			return mcp.NewServer(s, BuildTag, e.logger).Serve(c.Context)
		},
	}
}
