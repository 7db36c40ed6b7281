package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/nao1215/salesqueen/internal/export"
	"github.com/nao1215/salesqueen/internal/notify"
	"github.com/nao1215/salesqueen/internal/pricing"
	"github.com/nao1215/salesqueen/internal/report"
	"github.com/spf13/cobra"
)

// Export formats accepted by "project export".
const (
	exportJSON = "json"
	exportHTML = "html"
	exportPDF  = "pdf"
)

// NewProjectCmd creates the project command.
func NewProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Show, save, export and share the whole project",
		Long: `Project works on the saved project as a whole: the lead, the quote,
the page design and the progress of each stage.`,
		Args: cobra.NoArgs,
		RunE: runProjectShowCmd,
	}
	addFormatFlag(cmd)

	cmd.AddCommand(newProjectShowCmd())
	cmd.AddCommand(newProjectSaveCmd())
	cmd.AddCommand(newProjectClearCmd())
	cmd.AddCommand(newProjectExportCmd())
	cmd.AddCommand(newProjectShareCmd())
	cmd.AddCommand(newProjectEmailCmd())
	cmd.AddCommand(newProjectHistoryCmd())
	cmd.AddCommand(newProjectCheckoutCmd())

	return cmd
}

func newProjectShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the project report",
		Args:  cobra.NoArgs,
		RunE:  runProjectShowCmd,
	}
	addFormatFlag(cmd)
	return cmd
}

func newProjectSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Save the project now",
		Long:  `Save writes the current project. Every change is already saved as it is made.`,
		Args:  cobra.NoArgs,
		RunE:  runProjectSaveCmd,
	}
}

func newProjectClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved project and start over",
		Args:  cobra.NoArgs,
		RunE:  runProjectClearCmd,
	}
}

func newProjectExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the project as JSON or the page design as HTML",
		Long: `Export writes the project, or one section of it, as JSON. The html format
renders the page design as a standalone document.

When --output is a directory the default file name is used
(salesqueen_project.json, or salesqueen_quote.json for the estimate).

Examples:
  salesqueen project export -o .
  salesqueen project export --section estimate
  salesqueen project export --format html -o landing.html`,
		Args: cobra.NoArgs,
		RunE: runProjectExportCmd,
	}
	cmd.Flags().String("format", exportJSON, "Export format: json, html or pdf")
	cmd.Flags().StringP("section", "s", "all",
		"Section to export: all, progress, estimate, quote, design, lead or find")
	cmd.Flags().StringP("output", "o", "", "Output file or directory (default: stdout)")
	return cmd
}

func newProjectShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share",
		Short: "Copy a project summary to the clipboard",
		Long: `Share copies a short summary of the progress and the page quote to the
clipboard. When no clipboard is available the summary is printed.`,
		Args: cobra.NoArgs,
		RunE: runProjectShareCmd,
	}
}

func newProjectEmailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Print a mailto link with the estimate",
		Long: `Email prints a mailto: link that opens a quote email in the default mail
client. The recipient defaults to the lead's email address.`,
		Args: cobra.NoArgs,
		RunE: runProjectEmailCmd,
	}
	cmd.Flags().String("to", "", "Recipient address (default: the lead's email)")
	return cmd
}

func newProjectHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved revisions",
		Long:  `History lists earlier saves, newest first. Only the sqlite storage keeps history.`,
		Args:  cobra.NoArgs,
		RunE:  runProjectHistoryCmd,
	}
	cmd.Flags().IntP("limit", "n", 20, "Maximum number of revisions; 0 lists all")
	return cmd
}

func newProjectCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <revision>",
		Short: "Restore a saved revision",
		Long:  `Checkout restores a revision listed by "project history" and saves it as the current project.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runProjectCheckoutCmd,
	}
}

// runProjectShowCmd prints the report of the whole project.
func runProjectShowCmd(cmd *cobra.Command, _ []string) error {
	return runWithApp(cmd, func(a *app) error {
		w, err := a.writer(cmd)
		if err != nil {
			return err
		}
		_, err = w.Write(projectSummary(a))
		return err
	})
}

func runProjectSaveCmd(cmd *cobra.Command, _ []string) error {
	return runWithApp(cmd, func(a *app) error {
		if !a.session.Save(cmd.Context()) {
			return errors.New(notify.MsgSaveFailed)
		}
		return nil
	})
}

func runProjectClearCmd(cmd *cobra.Command, _ []string) error {
	return runWithApp(cmd, func(a *app) error {
		a.session.Clear(cmd.Context())
		return nil
	})
}

func runProjectExportCmd(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	sectionName, err := cmd.Flags().GetString("section")
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	section, err := export.ParseSection(sectionName)
	if err != nil {
		return err
	}

	switch format {
	case exportJSON, exportHTML:
	case exportPDF:
		fmt.Fprintln(cmd.ErrOrStderr(), export.PDFHint)
		return export.PDF(output)
	default:
		return fmt.Errorf("unknown export format %q (expected json, html or pdf)", format)
	}

	return runWithApp(cmd, func(a *app) error {
		doc := a.session.Snapshot()

		if format == exportHTML {
			title := projectSummary(a).Title
			if output == "" {
				return export.HTML(cmd.OutOrStdout(), title, doc.Blocks())
			}
			path := exportPath(output, "salesqueen_design.html")
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // user-chosen export path
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			if err := export.HTML(f, title, doc.Blocks()); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported design to %s\n", path)
			return nil
		}

		if output == "" {
			return export.JSON(cmd.OutOrStdout(), doc, section)
		}
		path := exportPath(output, export.DefaultFileName(section))
		if err := export.WriteJSONFile(path, doc, section); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
		return nil
	})
}

// exportPath joins name to output when output is an existing directory.
func exportPath(output, name string) string {
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, name)
	}
	return output
}

func runProjectShareCmd(cmd *cobra.Command, _ []string) error {
	return runWithApp(cmd, func(a *app) error {
		text := export.ShareText(a.session.Snapshot())
		method, err := export.Share(cmd.Context(), export.NewTarget(cmd.OutOrStdout()), text)
		if err != nil {
			return err
		}
		if method == export.MethodCopied {
			a.notifier.Notify(notify.Notice{Message: notify.MsgCopied, Level: notify.LevelSuccess})
		}
		a.logger.Debug("project shared", "method", method)
		return nil
	})
}

func runProjectEmailCmd(cmd *cobra.Command, _ []string) error {
	to, err := cmd.Flags().GetString("to")
	if err != nil {
		return err
	}
	return runWithApp(cmd, func(a *app) error {
		if to == "" {
			to = a.session.Lead().Get().Email
		}
		catalog := pricing.NewCatalogEstimator(pricing.DefaultCatalog())
		sel := a.session.Aggregator().Selection()
		total := a.session.EstimateWith(catalog).Total
		fmt.Fprintln(cmd.OutOrStdout(), export.MailtoLink(to, sel, total))
		return nil
	})
}

func runProjectHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	return runWithApp(cmd, func(a *app) error {
		revs, err := a.session.History(cmd.Context(), limit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(revs) == 0 {
			fmt.Fprintln(out, "No saved revisions.")
			return nil
		}
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "REVISION\tSAVED\tPROGRESS")
		for _, r := range revs {
			fmt.Fprintf(tw, "%s\t%s\t%d%%\n", r.ID, r.SavedAt.Local().Format(time.DateTime), r.Percentage)
		}
		return tw.Flush()
	})
}

func runProjectCheckoutCmd(cmd *cobra.Command, args []string) error {
	return runWithApp(cmd, func(a *app) error {
		if err := a.session.Checkout(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored revision %s (%d%% complete)\n", args[0], a.session.Percentage())
		return nil
	})
}

// projectSummary builds the report summary of the current project.
func projectSummary(a *app) *report.Summary {
	return report.NewSummary(a.session.Snapshot(), a.session.Estimate(), pricing.DefaultCatalog(), time.Now())
}
