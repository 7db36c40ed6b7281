package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for SalesQueen.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "salesqueen",
		Short: "Lead capture and website quoting for web agencies",
		Long: `SalesQueen walks a sale through three stages:

  lead    find a local business or enter the prospect by hand
  quote   price the website from the catalog or by page count
  design  outline the landing page with drag-and-drop style blocks

Every change is saved immediately. By default the project lives in a
SQLite file under the XDG data directory and keeps a revision history.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .salesqueen in current or home directory)")
	cmd.PersistentFlags().Bool("ephemeral", false,
		"Keep the project in memory only; nothing is saved")
	cmd.PersistentFlags().String("data-dir", "",
		"Directory of the SQLite project database (default: XDG data directory)")
	cmd.PersistentFlags().String("storage", "",
		"Storage backend: sqlite, redis or memory")
	cmd.PersistentFlags().String("redis-url", "",
		"Redis URL for the redis storage backend")

	cmd.AddCommand(NewEstimateCmd())
	cmd.AddCommand(NewQuoteCmd())
	cmd.AddCommand(NewProgressCmd())
	cmd.AddCommand(NewLeadCmd())
	cmd.AddCommand(NewFindCmd())
	cmd.AddCommand(NewDesignCmd())
	cmd.AddCommand(NewProjectCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
