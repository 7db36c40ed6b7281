package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nao1215/salesqueen/internal/model"
)

// DefaultNominatimURL is the public Nominatim endpoint.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// metersPerDegree approximates one degree of latitude.
const metersPerDegree = 111_320.0

// OSMLocator uses the Nominatim search API. When a nearby search fails or
// finds nothing, it returns the built-in sample businesses instead.
type OSMLocator struct {
	client    *http.Client
	baseURL   string
	userAgent string
	logger    *slog.Logger
}

var _ Locator = (*OSMLocator)(nil)

// NewOSMLocator returns a locator for the Nominatim service at baseURL.
// An empty baseURL selects DefaultNominatimURL.
func NewOSMLocator(client *http.Client, baseURL, userAgent string) *OSMLocator {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	if userAgent == "" {
		userAgent = "salesqueen"
	}
	return &OSMLocator{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		logger:    slog.Default(),
	}
}

// nominatimPlace is one entry of a jsonv2 search response.
type nominatimPlace struct {
	PlaceID     int64  `json:"place_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Category    string `json:"category"`
	Type        string `json:"type"`
}

func (p nominatimPlace) latLng() (model.LatLng, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return model.LatLng{}, fmt.Errorf("parse lat %q: %w", p.Lat, err)
	}
	lng, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return model.LatLng{}, fmt.Errorf("parse lon %q: %w", p.Lon, err)
	}
	return model.LatLng{Lat: lat, Lng: lng}, nil
}

// Resolve implements Locator.
func (o *OSMLocator) Resolve(ctx context.Context, query string) (Location, error) {
	if strings.TrimSpace(query) == "" {
		return Location{}, ErrEmptyQuery
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")

	results, err := o.search(ctx, params)
	if err != nil {
		return Location{}, err
	}
	if len(results) == 0 {
		return Location{}, fmt.Errorf("%w: %q", ErrNotFound, query)
	}
	ll, err := results[0].latLng()
	if err != nil {
		return Location{}, err
	}
	name := results[0].Name
	if name == "" {
		name = query
	}
	return Location{Name: name, FormattedAddress: results[0].DisplayName, LatLng: ll}, nil
}

// Nearby implements Locator. The search is bounded to a box of opts.Radius
// around center.
func (o *OSMLocator) Nearby(ctx context.Context, center model.LatLng, opts NearbyOptions) ([]model.Place, error) {
	opts = opts.normalized()
	keyword := opts.Industry
	if keyword == "" {
		keyword = "shop"
	}
	d := float64(opts.Radius) / metersPerDegree
	params := url.Values{}
	params.Set("q", keyword)
	params.Set("format", "jsonv2")
	params.Set("limit", strconv.Itoa(opts.Limit))
	params.Set("bounded", "1")
	params.Set("viewbox", fmt.Sprintf("%f,%f,%f,%f", center.Lng-d, center.Lat+d, center.Lng+d, center.Lat-d))

	results, err := o.search(ctx, params)
	if err != nil {
		o.logger.Warn("nearby search failed, using sample places", "error", err)
		return samplePlaces(center, opts), nil
	}

	places := make([]model.Place, 0, len(results))
	for _, r := range results {
		ll, err := r.latLng()
		if err != nil {
			continue
		}
		name := r.Name
		if name == "" {
			name = strings.SplitN(r.DisplayName, ",", 2)[0]
		}
		places = append(places, model.Place{
			ID:               strconv.FormatInt(r.PlaceID, 10),
			Name:             name,
			FormattedAddress: r.DisplayName,
			Types:            []string{r.Type, r.Category},
			Location:         ll,
		})
	}
	if len(places) == 0 {
		return samplePlaces(center, opts), nil
	}
	return places, nil
}

func (o *OSMLocator) search(ctx context.Context, params url.Values) ([]nominatimPlace, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", o.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var results []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode nominatim response: %w", err)
	}
	return results, nil
}
