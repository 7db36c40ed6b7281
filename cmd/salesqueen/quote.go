package main

import (
	"github.com/nao1215/salesqueen/internal/pricing"
	"github.com/nao1215/salesqueen/internal/project"
	"github.com/spf13/cobra"
)

// NewQuoteCmd creates the quote command.
func NewQuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price the website by page count",
		Long: `Quote prices a website from the number of pages, an e-commerce tier,
an SEO tier and the delivery time in weeks. Amounts are in USD.
Monthly maintenance is listed separately from the total.

Setting any flag submits the quote form and marks the quote stage
complete. Flags that are not given keep their saved value.

Examples:
  salesqueen quote --pages 5 --ecommerce basic --seo plus --weeks 3
  salesqueen quote --maintenance`,
		Args: cobra.NoArgs,
		RunE: runQuoteCmd,
	}

	cmd.Flags().IntP("pages", "p", 0, "Number of pages (>= 1)")
	cmd.Flags().String("ecommerce", "", "E-commerce tier: none, basic or advanced")
	cmd.Flags().String("seo", "", "SEO tier: none, standard, plus or premium")
	cmd.Flags().IntP("weeks", "w", 0, "Delivery time in weeks (>= 1)")
	cmd.Flags().Bool("maintenance", false, "Add monthly maintenance")
	addFormatFlag(cmd)

	return cmd
}

// runQuoteCmd executes the quote command.
func runQuoteCmd(cmd *cobra.Command, _ []string) error {
	return runWithApp(cmd, func(a *app) error {
		q, _ := a.session.Aggregator().Quote()
		flags := cmd.Flags()
		changed := false

		if flags.Changed("pages") {
			n, err := flags.GetInt("pages")
			if err != nil {
				return err
			}
			q.NumPages, changed = n, true
		}
		if flags.Changed("ecommerce") {
			v, err := flags.GetString("ecommerce")
			if err != nil {
				return err
			}
			q.Ecommerce, changed = v, true
		}
		if flags.Changed("seo") {
			v, err := flags.GetString("seo")
			if err != nil {
				return err
			}
			q.SEO, changed = v, true
		}
		if flags.Changed("weeks") {
			n, err := flags.GetInt("weeks")
			if err != nil {
				return err
			}
			q.TimelineWeeks, changed = n, true
		}
		if flags.Changed("maintenance") {
			v, err := flags.GetBool("maintenance")
			if err != nil {
				return err
			}
			q.Maintenance, changed = v, true
		}

		if changed {
			if _, err := a.session.Dispatch(cmd.Context(), project.SubmitPageQuote{Quote: q}); err != nil {
				return err
			}
		}

		pages := pricing.NewPageEstimator(pricing.DefaultPageRates())
		w, err := a.writer(cmd)
		if err != nil {
			return err
		}
		_, err = w.WriteBreakdown(a.session.EstimateWith(pages))
		return err
	})
}
