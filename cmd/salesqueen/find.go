package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nao1215/salesqueen/internal/geo"
	"github.com/nao1215/salesqueen/internal/model"
	"github.com/nao1215/salesqueen/internal/notify"
	"github.com/nao1215/salesqueen/internal/project"
	"github.com/nao1215/salesqueen/internal/report"
	"github.com/spf13/cobra"
)

// NewFindCmd creates the find command.
func NewFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find [city or address]",
		Short: "Find local businesses to pitch",
		Long: `Find resolves a city or address and lists up to 12 businesses nearby.
Without a query the last search is repeated.

Claim a result to capture it as the lead, or refer it when the user
knows the business but does not own it.

The lookup provider is set in the configuration file (mock, osm or google).

Examples:
  salesqueen find Pune --industry bakery
  salesqueen find Pune --industry bakery --claim 1
  salesqueen find --here
  tail -f queries.txt | salesqueen find --watch`,
		RunE: runFindCmd,
	}

	cmd.Flags().StringP("industry", "i", "", "Place type such as cafe, bakery or gym")
	cmd.Flags().IntP("limit", "n", geo.MaxResults, "Maximum number of results")
	cmd.Flags().Int("claim", 0, "Capture result N as the lead")
	cmd.Flags().Int("refer", 0, "Refer result N")
	cmd.Flags().Bool("here", false, "Search around the current position instead of a query")
	cmd.Flags().Bool("watch", false, "Read queries line by line from stdin and search as they settle")
	addFormatFlag(cmd)

	return cmd
}

// findOptions holds the parsed flags of the find command.
type findOptions struct {
	query  string
	nearby geo.NearbyOptions
	claim  int
	refer  int
	here   bool
	watch  bool
	json   bool
}

// runFindCmd executes the find command.
func runFindCmd(cmd *cobra.Command, args []string) error {
	opts, err := parseFindOptions(cmd, args)
	if err != nil {
		return err
	}

	return runWithApp(cmd, func(a *app) error {
		locator, err := a.locator()
		if err != nil {
			return err
		}
		opts.nearby.Radius = a.cfg.Radius
		if format, _ := cmd.Flags().GetString("format"); format == "" {
			opts.json = a.cfg.Format == report.FormatJSON
		}

		switch {
		case opts.watch:
			return watchSearch(cmd, a, locator, opts)
		case opts.here:
			return searchHere(cmd, a, locator, opts)
		default:
			return search(cmd, a, locator, opts)
		}
	})
}

func parseFindOptions(cmd *cobra.Command, args []string) (findOptions, error) {
	flags := cmd.Flags()
	opts := findOptions{query: strings.TrimSpace(strings.Join(args, " "))}

	var err error
	if opts.nearby.Industry, err = flags.GetString("industry"); err != nil {
		return opts, err
	}
	if opts.nearby.Limit, err = flags.GetInt("limit"); err != nil {
		return opts, err
	}
	if opts.claim, err = flags.GetInt("claim"); err != nil {
		return opts, err
	}
	if opts.refer, err = flags.GetInt("refer"); err != nil {
		return opts, err
	}
	if opts.here, err = flags.GetBool("here"); err != nil {
		return opts, err
	}
	if opts.watch, err = flags.GetBool("watch"); err != nil {
		return opts, err
	}
	format, err := flags.GetString("format")
	if err != nil {
		return opts, err
	}
	switch report.Format(format) {
	case "", report.FormatText:
	case report.FormatJSON:
		opts.json = true
	default:
		return opts, fmt.Errorf("%w: %q (expected text or json)", report.ErrUnknownFormat, format)
	}

	if opts.here && opts.watch {
		return opts, errors.New("--here and --watch cannot be used together")
	}
	if opts.watch && (opts.claim > 0 || opts.refer > 0) {
		return opts, errors.New("--claim and --refer cannot be used with --watch")
	}
	return opts, nil
}

// search runs one lookup, records the query and acts on --claim and --refer.
func search(cmd *cobra.Command, a *app, locator geo.Locator, opts findOptions) error {
	ctx := cmd.Context()
	query := opts.query
	if query == "" {
		query = a.session.Aggregator().Query()
	}
	if query == "" {
		return errors.New("a city or address is required")
	}

	res := geo.Lookup(ctx, locator, query, opts.nearby)
	if res.Err != nil && res.Location == (geo.Location{}) {
		if _, err := a.session.Dispatch(ctx, project.SetQuery{Query: query}); err != nil {
			return err
		}
		if errors.Is(res.Err, geo.ErrNotFound) {
			a.warn(notify.MsgLocationMissing)
		}
		return res.Err
	}

	if _, err := a.session.Dispatch(ctx, project.FocusLocation{Query: query}); err != nil {
		return err
	}
	if res.Err != nil {
		a.logger.Warn("nearby search failed", "query", query, "error", res.Err)
	}

	if err := writeResult(cmd.OutOrStdout(), res, opts.json); err != nil {
		return err
	}
	return actOnPlaces(cmd, a, res.Places, opts)
}

// searchHere lists places around the position estimated from the IP address.
func searchHere(cmd *cobra.Command, a *app, locator geo.Locator, opts findOptions) error {
	ctx := cmd.Context()
	src := geo.NewIPPosition(&http.Client{Timeout: a.cfg.Timeout}, "")
	pos, err := geo.Geolocate(ctx, src)
	if err != nil {
		a.warn(notify.MsgGeolocateFailed)
		return err
	}

	places, err := locator.Nearby(ctx, pos, opts.nearby)
	if err != nil {
		return err
	}
	if _, err := a.session.Dispatch(ctx, project.FocusLocation{}); err != nil {
		return err
	}

	res := geo.Result{
		Location: geo.Location{Name: "Current location", LatLng: pos},
		Places:   places,
	}
	if err := writeResult(cmd.OutOrStdout(), res, opts.json); err != nil {
		return err
	}
	return actOnPlaces(cmd, a, places, opts)
}

// watchSearch feeds stdin lines to a debounced searcher and prints every
// completed lookup. The final query is searched once input ends and its
// quiet period has passed.
func watchSearch(cmd *cobra.Command, a *app, locator geo.Locator, opts findOptions) error {
	out := cmd.OutOrStdout()
	var writeErr error
	searcher := geo.NewSearcher(cmd.Context(), locator, opts.nearby, func(res geo.Result) {
		if res.Err != nil {
			fmt.Fprintf(out, "%s: %v\n", res.Query, res.Err)
			return
		}
		if err := writeResult(out, res, opts.json); err != nil && writeErr == nil {
			writeErr = err
		}
	})

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		searcher.Input(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read queries: %w", err)
	}

	searcher.Wait()

	if q := searcher.LastQuery(); q != "" {
		if _, err := a.session.Dispatch(cmd.Context(), project.SetQuery{Query: q}); err != nil {
			return err
		}
	}
	return writeErr
}

// actOnPlaces claims or refers the places picked by --claim and --refer.
func actOnPlaces(cmd *cobra.Command, a *app, places []model.Place, opts findOptions) error {
	if opts.claim > 0 {
		place, err := pickPlace(places, opts.claim)
		if err != nil {
			return err
		}
		if _, err := a.session.Dispatch(cmd.Context(), project.ClaimPlace{Place: place}); err != nil {
			return err
		}
	}
	if opts.refer > 0 {
		place, err := pickPlace(places, opts.refer)
		if err != nil {
			return err
		}
		a.session.Refer(place)
	}
	return nil
}

func pickPlace(places []model.Place, n int) (model.Place, error) {
	if n < 1 || n > len(places) {
		return model.Place{}, fmt.Errorf("no result %d (found %d)", n, len(places))
	}
	return places[n-1], nil
}

// writeResult prints a lookup result as numbered cards or as JSON.
func writeResult(out io.Writer, res geo.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Query    string        `json:"query,omitempty"`
			Location geo.Location  `json:"location"`
			Places   []model.Place `json:"places"`
		}{res.Query, res.Location, res.Places})
	}

	loc := res.Location.FormattedAddress
	if loc == "" {
		loc = res.Location.Name
	}
	fmt.Fprintf(out, "Near %s (%s)\n", loc, res.Location.LatLng)
	if len(res.Places) == 0 {
		fmt.Fprintln(out, "  No businesses found.")
		return nil
	}
	for i, p := range res.Places {
		fmt.Fprintf(out, "%2d. %s  %s\n", i+1, p.Name, p.RatingLabel())
		if addr := p.Address(); addr != "" {
			fmt.Fprintf(out, "    %s\n", addr)
		}
		if p.Website != "" {
			fmt.Fprintf(out, "    %s\n", p.Website)
		}
	}
	return nil
}
