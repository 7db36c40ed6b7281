package geo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nao1215/salesqueen/internal/model"
)

// Lookup defaults.
const (
	// DefaultRadius is the nearby search radius in meters.
	DefaultRadius = 3000
	// MaxResults is the most places a nearby search returns.
	MaxResults = 12
)

var (
	// ErrNotFound is returned when a query resolves to no location.
	ErrNotFound = errors.New("location not found")
	// ErrEmptyQuery is returned for a blank query.
	ErrEmptyQuery = errors.New("empty location query")
	// ErrUnknownProvider is returned by New for an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown location provider")
	// ErrMissingAPIKey is returned when the Google provider has no key.
	ErrMissingAPIKey = errors.New("google maps api key is required")
)

// Location is a resolved query.
type Location struct {
	Name             string       `json:"name"`
	FormattedAddress string       `json:"formattedAddress"`
	LatLng           model.LatLng `json:"latLng"`
}

// NearbyOptions narrows a nearby search.
type NearbyOptions struct {
	// Radius in meters. Zero means DefaultRadius.
	Radius int
	// Industry is a place type such as "bakery". Empty means any.
	Industry string
	// Limit caps the results. Zero or more than MaxResults means MaxResults.
	Limit int
}

func (o NearbyOptions) normalized() NearbyOptions {
	if o.Radius <= 0 {
		o.Radius = DefaultRadius
	}
	if o.Limit <= 0 || o.Limit > MaxResults {
		o.Limit = MaxResults
	}
	o.Industry = strings.TrimSpace(o.Industry)
	return o
}

// Locator resolves locations and lists nearby places.
type Locator interface {
	// Resolve geocodes query. It returns ErrNotFound when nothing matches.
	Resolve(ctx context.Context, query string) (Location, error)
	// Nearby lists places around center, at most opts.Limit of them.
	Nearby(ctx context.Context, center model.LatLng, opts NearbyOptions) ([]model.Place, error)
}

// Provider names a Locator implementation.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderOSM    Provider = "osm"
	ProviderMock   Provider = "mock"
)

// Options configures New.
type Options struct {
	Provider Provider
	// APIKey is required by the Google provider.
	APIKey string
	// BaseURL overrides the service endpoint. Empty means the public one.
	BaseURL string
	// UserAgent identifies the client to Nominatim.
	UserAgent string
	// Timeout bounds every HTTP request.
	Timeout time.Duration
}

// New returns the Locator selected by opts.
func New(opts Options) (Locator, error) {
	client := &http.Client{Timeout: opts.Timeout}
	switch opts.Provider {
	case ProviderGoogle:
		return NewGoogleLocator(opts.APIKey, client, opts.BaseURL)
	case ProviderOSM:
		return NewOSMLocator(client, opts.BaseURL, opts.UserAgent), nil
	case ProviderMock, "":
		return NewMockLocator(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, opts.Provider)
	}
}

// Result is the outcome of one search.
type Result struct {
	Query    string
	Location Location
	Places   []model.Place
	Err      error
}

// Lookup resolves query and lists the places near it.
// A resolve failure ends the lookup; a nearby failure keeps the location.
func Lookup(ctx context.Context, l Locator, query string, opts NearbyOptions) Result {
	res := Result{Query: query}
	if strings.TrimSpace(query) == "" {
		res.Err = ErrEmptyQuery
		return res
	}
	loc, err := l.Resolve(ctx, query)
	if err != nil {
		res.Err = err
		return res
	}
	res.Location = loc
	res.Places, res.Err = l.Nearby(ctx, loc.LatLng, opts)
	return res
}

// matchesIndustry reports whether a place with types belongs to industry.
func matchesIndustry(types []string, industry string) bool {
	if industry == "" {
		return true
	}
	for _, t := range types {
		if strings.EqualFold(t, industry) {
			return true
		}
	}
	return false
}
