package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/nao1215/salesqueen/internal/model"
)

// GeolocateTimeout bounds a position lookup.
const GeolocateTimeout = 8 * time.Second

var (
	// ErrGeolocationUnavailable is returned when no position source is configured.
	ErrGeolocationUnavailable = errors.New("geolocation is not supported")
	// ErrGeolocationTimeout is returned when the source does not answer in time.
	ErrGeolocationTimeout = errors.New("geolocation timed out")
)

// PositionSource reports the current position of the user.
type PositionSource interface {
	CurrentPosition(ctx context.Context) (model.LatLng, error)
}

// Geolocate asks src for the current position, giving up after GeolocateTimeout.
func Geolocate(ctx context.Context, src PositionSource) (model.LatLng, error) {
	return geolocateWithin(ctx, src, GeolocateTimeout)
}

func geolocateWithin(ctx context.Context, src PositionSource, timeout time.Duration) (model.LatLng, error) {
	if src == nil {
		return model.LatLng{}, ErrGeolocationUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type answer struct {
		pos model.LatLng
		err error
	}
	ch := make(chan answer, 1)
	go func() {
		pos, err := src.CurrentPosition(ctx)
		ch <- answer{pos: pos, err: err}
	}()

	select {
	case a := <-ch:
		return a.pos, a.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return model.LatLng{}, ErrGeolocationTimeout
		}
		return model.LatLng{}, ctx.Err()
	}
}

// FixedPosition is a PositionSource that always reports the same point.
type FixedPosition model.LatLng

// CurrentPosition implements PositionSource.
func (f FixedPosition) CurrentPosition(context.Context) (model.LatLng, error) {
	return model.LatLng(f), nil
}

// IPPosition estimates the position from the public IP address using an
// ip-api.com compatible JSON endpoint.
type IPPosition struct {
	client *http.Client
	url    string
}

// DefaultIPLookupURL is the public ip-api.com endpoint.
const DefaultIPLookupURL = "http://ip-api.com/json/"

// NewIPPosition returns an IPPosition querying url. An empty url selects
// DefaultIPLookupURL.
func NewIPPosition(client *http.Client, url string) *IPPosition {
	if client == nil {
		client = http.DefaultClient
	}
	if url == "" {
		url = DefaultIPLookupURL
	}
	return &IPPosition{client: client, url: url}
}

// CurrentPosition implements PositionSource.
func (p *IPPosition) CurrentPosition(ctx context.Context) (model.LatLng, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return model.LatLng{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return model.LatLng{}, fmt.Errorf("ip lookup: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.LatLng{}, fmt.Errorf("decode ip lookup: %w", err)
	}
	if body.Status != "success" {
		return model.LatLng{}, fmt.Errorf("%w: %s", ErrGeolocationUnavailable, body.Message)
	}
	return model.LatLng{Lat: body.Lat, Lng: body.Lon}, nil
}
