package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nao1215/salesqueen/internal/model"
	"github.com/nao1215/salesqueen/internal/notify"
	"github.com/nao1215/salesqueen/internal/pricing"
	"github.com/nao1215/salesqueen/internal/project"
	"github.com/spf13/cobra"
)

// NewEstimateCmd creates the estimate command.
func NewEstimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Price the website from the catalog",
		Long: `Estimate prices a website from a base site type plus optional features,
adjusted by the delivery timeline and 18% GST. Amounts are in INR.

Every flag changes the saved selection; without flags the current
estimate is shown.

Examples:
  # Show the catalog
  salesqueen estimate --list

  # Business site with CMS and payments, on a rush timeline
  salesqueen estimate --type business --add cms,payments --timeline rush

  # Warn when the total exceeds the client's budget
  salesqueen estimate --budget 30000`,
		Args: cobra.NoArgs,
		RunE: runEstimateCmd,
	}

	cmd.Flags().StringP("type", "t", "", "Website type ID (see --list)")
	cmd.Flags().StringSlice("add", nil, "Feature IDs to select")
	cmd.Flags().StringSlice("remove", nil, "Feature IDs to deselect")
	cmd.Flags().String("timeline", "", "Delivery timeline: standard, rush or flex")
	cmd.Flags().Int64("budget", 0, "Client budget in INR; 0 disables the budget check")
	cmd.Flags().BoolP("list", "l", false, "List website types and features")
	addFormatFlag(cmd)

	return cmd
}

// runEstimateCmd executes the estimate command.
func runEstimateCmd(cmd *cobra.Command, _ []string) error {
	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if list {
		return printCatalog(cmd.OutOrStdout(), pricing.DefaultCatalog())
	}

	actions, err := estimateActions(cmd)
	if err != nil {
		return err
	}

	return runWithApp(cmd, func(a *app) error {
		for _, action := range actions {
			if _, err := a.session.Dispatch(cmd.Context(), action); err != nil {
				return err
			}
		}

		catalog := pricing.NewCatalogEstimator(pricing.DefaultCatalog())
		b := a.session.EstimateWith(catalog)
		if a.session.Aggregator().Selection().Type == "" {
			a.warn(notify.MsgSelectType)
		}

		w, err := a.writer(cmd)
		if err != nil {
			return err
		}
		_, err = w.WriteBreakdown(b)
		return err
	})
}

// estimateActions converts the flags the user set into actions, in the
// order type, features, timeline, budget.
func estimateActions(cmd *cobra.Command) ([]project.Action, error) {
	flags := cmd.Flags()
	var actions []project.Action

	if flags.Changed("type") {
		typeID, err := flags.GetString("type")
		if err != nil {
			return nil, err
		}
		actions = append(actions, project.SelectType{TypeID: typeID})
	}

	add, err := flags.GetStringSlice("add")
	if err != nil {
		return nil, err
	}
	for _, id := range add {
		actions = append(actions, project.ToggleFeature{ID: id, Selected: true})
	}

	remove, err := flags.GetStringSlice("remove")
	if err != nil {
		return nil, err
	}
	for _, id := range remove {
		actions = append(actions, project.ToggleFeature{ID: id, Selected: false})
	}

	if flags.Changed("timeline") {
		timeline, err := flags.GetString("timeline")
		if err != nil {
			return nil, err
		}
		actions = append(actions, project.SetTimeline{Timeline: model.Timeline(timeline)})
	}

	if flags.Changed("budget") {
		budget, err := flags.GetInt64("budget")
		if err != nil {
			return nil, err
		}
		actions = append(actions, project.SetBudget{Budget: budget})
	}

	return actions, nil
}

// printCatalog lists the site types and features with their prices.
func printCatalog(out io.Writer, c pricing.Catalog) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	section := func(title string, items []pricing.Item) {
		fmt.Fprintf(tw, "%s\n", title)
		for _, it := range items {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", it.ID, it.Label, pricing.INR.Format(it.Price))
		}
	}
	section("WEBSITE TYPES", c.Types)
	section("CORE FEATURES", c.CoreFeatures)
	section("ADD-ONS", c.AddOns)
	fmt.Fprintln(tw, "TIMELINES")
	fmt.Fprintf(tw, "  %s\t%s\t%s\n", model.TimelineStandard, "Standard", "x1.0")
	fmt.Fprintf(tw, "  %s\t%s\t%s\n", model.TimelineRush, "Rush", "x1.3")
	fmt.Fprintf(tw, "  %s\t%s\t%s\n", model.TimelineFlex, "Flexible", "x0.9")
	return tw.Flush()
}
