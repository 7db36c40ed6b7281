package main

import (
	mcpserver "github.com/nao1215/salesqueen/internal/mcp"
	"github.com/spf13/cobra"
)

// NewMCPCmd creates the mcp command.
func NewMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the project to AI agents over MCP (stdio)",
		Long: `MCP starts a Model Context Protocol server on stdin and stdout so that an
AI agent can search for businesses, capture the lead, price the website
and lay out the page. Changes are saved exactly like CLI changes.

Example client configuration:
  {"command": "salesqueen", "args": ["mcp"]}`,
		Args: cobra.NoArgs,
		RunE: runMCPCmd,
	}
}

// runMCPCmd executes the mcp command.
func runMCPCmd(cmd *cobra.Command, _ []string) error {
	return runWithApp(cmd, func(a *app) error {
		locator, err := a.locator()
		if err != nil {
			return err
		}
		srv := mcpserver.New(mcpserver.Deps{
			Session: a.session,
			Locator: locator,
			Logger:  a.logger,
			Version: getVersion(),
			Radius:  a.cfg.Radius,
		})
		return srv.ServeStdio()
	})
}
