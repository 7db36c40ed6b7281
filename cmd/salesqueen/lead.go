package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode"

	"github.com/nao1215/salesqueen/internal/lead"
	"github.com/nao1215/salesqueen/internal/model"
	"github.com/nao1215/salesqueen/internal/project"
	"github.com/spf13/cobra"
)

// NewLeadCmd creates the lead command.
func NewLeadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lead",
		Short: "Show or capture the prospect's details",
		Long: `Lead shows the captured prospect. Use "lead set" to enter details by hand,
or "find --claim" to capture a business from a search.`,
		Args: cobra.NoArgs,
		RunE: runLeadCmd,
	}
	cmd.AddCommand(newLeadSetCmd())
	return cmd
}

func newLeadSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Capture lead fields",
		Long: `Set merges the given fields into the lead and saves it. Fields that are
not given keep their value. Values are trimmed and capped in length.

The lead needs a business name, and email and website must be well formed
when present.

Example:
  salesqueen lead set --business-name "Acme Bakery" --email owner@acme.test`,
		Args: cobra.NoArgs,
		RunE: runLeadSetCmd,
	}
	for _, f := range lead.Fields() {
		cmd.Flags().String(flagName(f), "", fieldLabel(f))
	}
	return cmd
}

// runLeadCmd executes the lead command.
func runLeadCmd(cmd *cobra.Command, _ []string) error {
	return runWithApp(cmd, func(a *app) error {
		return printLead(cmd.OutOrStdout(), a.session.Lead().Get())
	})
}

// runLeadSetCmd executes the lead set command.
func runLeadSetCmd(cmd *cobra.Command, _ []string) error {
	patch := lead.Patch{}
	for _, f := range lead.Fields() {
		name := flagName(f)
		if !cmd.Flags().Changed(name) {
			continue
		}
		v, err := cmd.Flags().GetString(name)
		if err != nil {
			return err
		}
		patch[f] = v
	}
	if len(patch) == 0 {
		return fmt.Errorf("no lead fields given (see --help)")
	}

	return runWithApp(cmd, func(a *app) error {
		if _, err := a.session.Dispatch(cmd.Context(), project.SubmitLead{Patch: patch}); err != nil {
			return err
		}
		return printLead(cmd.OutOrStdout(), a.session.Lead().Get())
	})
}

// printLead writes every lead field, "-" for unset ones.
func printLead(out io.Writer, l model.Lead) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, f := range lead.Fields() {
		v := lead.Value(l, f)
		if v == "" {
			v = "-"
		}
		fmt.Fprintf(tw, "%s:\t%s\n", fieldLabel(f), v)
	}
	return tw.Flush()
}

// flagName converts a field key such as "businessName" to "business-name".
func flagName(f lead.Field) string {
	var sb strings.Builder
	for _, r := range string(f) {
		if unicode.IsUpper(r) {
			sb.WriteByte('-')
			r = unicode.ToLower(r)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// fieldLabel converts a field key such as "businessName" to "Business name".
func fieldLabel(f lead.Field) string {
	words := strings.ReplaceAll(flagName(f), "-", " ")
	if words == "" {
		return ""
	}
	return strings.ToUpper(words[:1]) + words[1:]
}
