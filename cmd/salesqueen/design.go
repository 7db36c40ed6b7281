package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/nao1215/salesqueen/internal/layout"
	"github.com/nao1215/salesqueen/internal/model"
	"github.com/nao1215/salesqueen/internal/project"
	"github.com/spf13/cobra"
)

// NewDesignCmd creates the design command.
func NewDesignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "design",
		Short: "Outline the landing page with content blocks",
		Long: `Design lists the blocks of the landing page in display order.
Blocks are numbered from 1.

Block types: hero, features, testimonials, cta. Other types get a
generic paragraph.`,
		Args: cobra.NoArgs,
		RunE: runDesignCmd,
	}

	cmd.AddCommand(newDesignAddCmd())
	cmd.AddCommand(newDesignMoveCmd())
	cmd.AddCommand(newDesignRemoveCmd())
	cmd.AddCommand(newDesignStyleCmd())
	cmd.AddCommand(newDesignEditCmd())

	return cmd
}

func newDesignAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <type>",
		Short: "Add a block with default content",
		Long: `Add appends a block of the given type, or inserts it before position
--at when given.

Examples:
  salesqueen design add hero
  salesqueen design add cta --at 1`,
		Args: cobra.ExactArgs(1),
		RunE: runDesignAddCmd,
	}
	cmd.Flags().Int("at", 0, "Insert before this position instead of appending")
	return cmd
}

func newDesignMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a block to another position",
		Args:  cobra.ExactArgs(2),
		RunE:  runDesignMoveCmd,
	}
}

func newDesignRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <position>",
		Short: "Remove a block",
		Args:  cobra.ExactArgs(1),
		RunE:  runDesignRemoveCmd,
	}
}

func newDesignStyleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "style <position> <css>",
		Short: "Replace the inline style of a block",
		Long: `Style replaces the CSS declarations of a block. An empty string clears them.

Example:
  salesqueen design style 1 "padding:2rem;background:#fafafa"`,
		Args: cobra.ExactArgs(2),
		RunE: runDesignStyleCmd,
	}
}

func newDesignEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <position> <html|->",
		Short: "Replace the content of a block",
		Long: `Edit replaces the markup of a block. Pass "-" to read it from stdin.

Example:
  salesqueen design edit 1 "<h3>Fresh bread daily</h3>"`,
		Args: cobra.ExactArgs(2),
		RunE: runDesignEditCmd,
	}
}

// runDesignCmd executes the design command.
func runDesignCmd(cmd *cobra.Command, _ []string) error {
	return runWithApp(cmd, func(a *app) error {
		return printBlocks(cmd.OutOrStdout(), a.session.Snapshot().Blocks())
	})
}

func runDesignAddCmd(cmd *cobra.Command, args []string) error {
	action := project.AddBlock{Type: strings.TrimSpace(args[0])}
	if cmd.Flags().Changed("at") {
		at, err := cmd.Flags().GetInt("at")
		if err != nil {
			return err
		}
		action.Index, action.AtIndex = at-1, true
	}
	return dispatchDesign(cmd, action)
}

func runDesignMoveCmd(cmd *cobra.Command, args []string) error {
	from, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	to, err := parsePosition(args[1])
	if err != nil {
		return err
	}
	return dispatchDesign(cmd, project.MoveBlock{From: from, To: to})
}

func runDesignRemoveCmd(cmd *cobra.Command, args []string) error {
	i, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	return dispatchDesign(cmd, project.RemoveBlock{Index: i})
}

func runDesignStyleCmd(cmd *cobra.Command, args []string) error {
	i, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	return dispatchDesign(cmd, project.StyleBlock{Index: i, CSS: args[1]})
}

func runDesignEditCmd(cmd *cobra.Command, args []string) error {
	i, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	markup := args[1]
	if markup == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read block content: %w", err)
		}
		markup = strings.TrimSpace(string(data))
	}
	return dispatchDesign(cmd, project.EditBlock{Index: i, HTML: markup})
}

// dispatchDesign applies a design action and lists the resulting blocks.
func dispatchDesign(cmd *cobra.Command, action project.Action) error {
	return runWithApp(cmd, func(a *app) error {
		if _, err := a.session.Dispatch(cmd.Context(), action); err != nil {
			return err
		}
		return printBlocks(cmd.OutOrStdout(), a.session.Snapshot().Blocks())
	})
}

// parsePosition converts a 1-based block position to an index.
func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid block position %q (positions start at 1)", s)
	}
	return n - 1, nil
}

// printBlocks lists blocks with their position, type, headline and style.
func printBlocks(out io.Writer, blocks []model.Block) error {
	if len(blocks) == 0 {
		fmt.Fprintf(out, "No blocks yet. Add one with: salesqueen design add <%s>\n",
			strings.Join(layout.Palette(), "|"))
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTYPE\tHEADLINE\tSTYLE")
	for i, b := range blocks {
		headline := "-"
		if sum, err := layout.Inspect(b.HTML); err == nil && sum.Headline != "" {
			headline = sum.Headline
		}
		style := b.Style
		if style == "" {
			style = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, b.Type, headline, style)
	}
	return tw.Flush()
}
