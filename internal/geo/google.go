package geo

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"
	"googlemaps.github.io/maps"

	"github.com/nao1215/salesqueen/internal/model"
)

// detailConcurrency bounds parallel place-details requests.
const detailConcurrency = 4

// GoogleLocator uses the Google Maps web services.
type GoogleLocator struct {
	client *maps.Client
}

var _ Locator = (*GoogleLocator)(nil)

// NewGoogleLocator returns a locator authenticated with apiKey.
// baseURL overrides the service endpoint when not empty.
func NewGoogleLocator(apiKey string, httpClient *http.Client, baseURL string) (*GoogleLocator, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	opts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if httpClient != nil {
		opts = append(opts, maps.WithHTTPClient(httpClient))
	}
	if baseURL != "" {
		opts = append(opts, maps.WithBaseURL(baseURL))
	}
	c, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &GoogleLocator{client: c}, nil
}

// Resolve implements Locator.
func (g *GoogleLocator) Resolve(ctx context.Context, query string) (Location, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		if isZeroResults(err) {
			return Location{}, fmt.Errorf("%w: %q", ErrNotFound, query)
		}
		return Location{}, fmt.Errorf("geocode %q: %w", query, err)
	}
	if len(results) == 0 {
		return Location{}, fmt.Errorf("%w: %q", ErrNotFound, query)
	}
	r := results[0]
	return Location{
		Name:             query,
		FormattedAddress: r.FormattedAddress,
		LatLng:           model.LatLng{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
	}, nil
}

// Nearby implements Locator. Websites are not part of a nearby search, so they
// are fetched with one place-details request per result.
func (g *GoogleLocator) Nearby(ctx context.Context, center model.LatLng, opts NearbyOptions) ([]model.Place, error) {
	opts = opts.normalized()
	req := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: center.Lat, Lng: center.Lng},
		Radius:   uint(opts.Radius),
	}
	if opts.Industry != "" {
		req.Type = maps.PlaceType(opts.Industry)
		req.Keyword = opts.Industry
	}

	resp, err := g.client.NearbySearch(ctx, req)
	if err != nil {
		if isZeroResults(err) {
			return []model.Place{}, nil
		}
		return nil, fmt.Errorf("nearby search: %w", err)
	}

	results := resp.Results
	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	places := make([]model.Place, len(results))
	for i, r := range results {
		places[i] = model.Place{
			ID:               r.PlaceID,
			Name:             r.Name,
			Vicinity:         r.Vicinity,
			FormattedAddress: r.FormattedAddress,
			Rating:           r.Rating,
			UserRatingsTotal: r.UserRatingsTotal,
			Types:            r.Types,
			Location:         model.LatLng{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
		}
	}

	g.fillWebsites(ctx, places)
	return places, nil
}

// fillWebsites sets Website on every place whose details can be fetched.
// A failed details request leaves that place without a website.
func (g *GoogleLocator) fillWebsites(ctx context.Context, places []model.Place) {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(detailConcurrency)
	for i := range places {
		if places[i].ID == "" {
			continue
		}
		eg.Go(func() error {
			d, err := g.client.PlaceDetails(egCtx, &maps.PlaceDetailsRequest{
				PlaceID: places[i].ID,
				Fields:  []maps.PlaceDetailsFieldMask{maps.PlaceDetailsFieldMaskWebsite},
			})
			if err != nil {
				return nil
			}
			places[i].Website = d.Website
			return nil
		})
	}
	_ = eg.Wait()
}

func isZeroResults(err error) bool {
	return err != nil && strings.Contains(err.Error(), "ZERO_RESULTS")
}
