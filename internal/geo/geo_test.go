package geo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/salesqueen/internal/model"
)

func TestMockLocator(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMockLocator()

	loc, err := m.Resolve(ctx, "bakery pune")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if loc.Name != "Pune" {
		t.Errorf("Name = %q, want Pune", loc.Name)
	}

	if _, err := m.Resolve(ctx, "atlantis"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(atlantis) error = %v, want ErrNotFound", err)
	}

	all, err := m.Nearby(ctx, loc.LatLng, NearbyOptions{})
	if err != nil {
		t.Fatalf("Nearby() error = %v", err)
	}
	if len(all) != len(sampleBusinesses) {
		t.Errorf("Nearby() = %d places, want %d", len(all), len(sampleBusinesses))
	}

	food, _ := m.Nearby(ctx, loc.LatLng, NearbyOptions{Industry: "food"})
	if len(food) != 3 {
		t.Errorf("Nearby(food) = %d places, want 3", len(food))
	}

	limited, _ := m.Nearby(ctx, loc.LatLng, NearbyOptions{Limit: 2})
	if len(limited) != 2 {
		t.Errorf("Nearby(limit 2) = %d places", len(limited))
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	res := Lookup(ctx, NewMockLocator(), "Mumbai", NearbyOptions{Industry: "gym"})
	if res.Err != nil {
		t.Fatalf("Lookup() error = %v", res.Err)
	}
	if res.Location.Name != "Mumbai" || len(res.Places) != 1 || res.Places[0].Name != "FitZone Gym" {
		t.Errorf("Lookup() = %+v", res)
	}

	if res := Lookup(ctx, NewMockLocator(), "   ", NearbyOptions{}); !errors.Is(res.Err, ErrEmptyQuery) {
		t.Errorf("Lookup(blank) error = %v, want ErrEmptyQuery", res.Err)
	}
}

func TestOSMLocator(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "salesqueen-test" {
			http.Error(w, "missing user agent", http.StatusForbidden)
			return
		}
		q := r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		switch {
		case q == "pune":
			fmt.Fprint(w, `[{"place_id":1,"lat":"18.52","lon":"73.85","name":"Pune","display_name":"Pune, Maharashtra, India"}]`)
		case q == "bakery" && r.URL.Query().Get("bounded") == "1":
			fmt.Fprint(w, `[{"place_id":7,"lat":"18.53","lon":"73.86","name":"","display_name":"Kayani Bakery, East Street, Pune","category":"shop","type":"bakery"}]`)
		case q == "cafe":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			fmt.Fprint(w, `[]`)
		}
	}))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	o := NewOSMLocator(srv.Client(), srv.URL, "salesqueen-test")

	loc, err := o.Resolve(ctx, "pune")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if loc.LatLng.Lat != 18.52 || loc.FormattedAddress != "Pune, Maharashtra, India" {
		t.Errorf("Resolve() = %+v", loc)
	}

	if _, err := o.Resolve(ctx, "nowhere"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(nowhere) error = %v, want ErrNotFound", err)
	}

	places, err := o.Nearby(ctx, loc.LatLng, NearbyOptions{Industry: "bakery"})
	if err != nil {
		t.Fatalf("Nearby() error = %v", err)
	}
	if len(places) != 1 || places[0].Name != "Kayani Bakery" || places[0].Address() != "Kayani Bakery, East Street, Pune" {
		t.Errorf("Nearby(bakery) = %+v", places)
	}

	t.Run("falls back to samples on failure", func(t *testing.T) {
		t.Parallel()

		places, err := o.Nearby(ctx, loc.LatLng, NearbyOptions{Industry: "cafe"})
		if err != nil {
			t.Fatalf("Nearby() error = %v", err)
		}
		if len(places) != 1 || places[0].Name != "Brew & Bean Cafe" {
			t.Errorf("Nearby(cafe) = %+v", places)
		}
	})

	t.Run("falls back to samples when empty", func(t *testing.T) {
		t.Parallel()

		places, err := o.Nearby(ctx, loc.LatLng, NearbyOptions{})
		if err != nil {
			t.Fatalf("Nearby() error = %v", err)
		}
		if len(places) == 0 {
			t.Error("Nearby() returned no places")
		}
	})
}

func TestGoogleLocator(t *testing.T) {
	t.Parallel()

	var details atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/geocode/json"):
			if r.URL.Query().Get("address") == "nowhere" {
				fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
				return
			}
			fmt.Fprint(w, `{"status":"OK","results":[{"formatted_address":"Pune, Maharashtra, India","place_id":"p0","geometry":{"location":{"lat":18.52,"lng":73.85}}}]}`)
		case strings.HasSuffix(r.URL.Path, "/nearbysearch/json"):
			fmt.Fprint(w, `{"status":"OK","results":[
				{"place_id":"p1","name":"Sunrise Bakery","vicinity":"Market Road","rating":4.5,"user_ratings_total":12,"types":["bakery"],"geometry":{"location":{"lat":18.53,"lng":73.86}}},
				{"place_id":"p2","name":"Brew Cafe","vicinity":"Station Lane","types":["cafe"],"geometry":{"location":{"lat":18.51,"lng":73.84}}}
			]}`)
		case strings.HasSuffix(r.URL.Path, "/details/json"):
			details.Add(1)
			if r.URL.Query().Get("place_id") == "p1" {
				fmt.Fprint(w, `{"status":"OK","result":{"place_id":"p1","website":"https://sunrise.example"}}`)
				return
			}
			fmt.Fprint(w, `{"status":"OK","result":{"place_id":"p2"}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	g, err := NewGoogleLocator("test-key", srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("NewGoogleLocator() error = %v", err)
	}

	ctx := context.Background()
	loc, err := g.Resolve(ctx, "pune")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if loc.LatLng != (model.LatLng{Lat: 18.52, Lng: 73.85}) {
		t.Errorf("LatLng = %+v", loc.LatLng)
	}

	if _, err := g.Resolve(ctx, "nowhere"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(nowhere) error = %v, want ErrNotFound", err)
	}

	places, err := g.Nearby(ctx, loc.LatLng, NearbyOptions{})
	if err != nil {
		t.Fatalf("Nearby() error = %v", err)
	}
	if len(places) != 2 {
		t.Fatalf("Nearby() = %d places, want 2", len(places))
	}
	if places[0].Website != "https://sunrise.example" || places[1].Website != "" {
		t.Errorf("websites = %q, %q", places[0].Website, places[1].Website)
	}
	if places[0].RatingLabel() != "⭐ 4.5 (12)" || places[1].RatingLabel() != "No ratings" {
		t.Errorf("rating labels = %q, %q", places[0].RatingLabel(), places[1].RatingLabel())
	}
	if details.Load() != 2 {
		t.Errorf("details requests = %d, want 2", details.Load())
	}
}

func TestNewGoogleLocator_RequiresKey(t *testing.T) {
	t.Parallel()

	if _, err := NewGoogleLocator("", nil, ""); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("error = %v, want ErrMissingAPIKey", err)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		provider Provider
		wantErr  error
	}{
		{provider: ProviderMock},
		{provider: ProviderOSM},
		{provider: ProviderGoogle, wantErr: ErrMissingAPIKey},
		{provider: "bing", wantErr: ErrUnknownProvider},
	}
	for _, tt := range tests {
		_, err := New(Options{Provider: tt.provider})
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("New(%q) error = %v, want %v", tt.provider, err, tt.wantErr)
		}
	}
}

// blockingSource never answers until its context ends.
type blockingSource struct{}

func (blockingSource) CurrentPosition(ctx context.Context) (model.LatLng, error) {
	<-ctx.Done()
	return model.LatLng{}, ctx.Err()
}

func TestGeolocate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	pos, err := Geolocate(ctx, FixedPosition{Lat: 1, Lng: 2})
	if err != nil || pos != (model.LatLng{Lat: 1, Lng: 2}) {
		t.Errorf("Geolocate(fixed) = %+v, %v", pos, err)
	}

	if _, err := Geolocate(ctx, nil); !errors.Is(err, ErrGeolocationUnavailable) {
		t.Errorf("Geolocate(nil) error = %v", err)
	}

	if _, err := geolocateWithin(ctx, blockingSource{}, 20*time.Millisecond); !errors.Is(err, ErrGeolocationTimeout) {
		t.Errorf("geolocateWithin(blocking) error = %v, want ErrGeolocationTimeout", err)
	}
}

func TestIPPosition(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			fmt.Fprint(w, `{"status":"fail","message":"private range"}`)
			return
		}
		fmt.Fprint(w, `{"status":"success","lat":18.5,"lon":73.8}`)
	}))
	t.Cleanup(srv.Close)

	pos, err := NewIPPosition(srv.Client(), srv.URL+"/json").CurrentPosition(context.Background())
	if err != nil {
		t.Fatalf("CurrentPosition() error = %v", err)
	}
	if pos != (model.LatLng{Lat: 18.5, Lng: 73.8}) {
		t.Errorf("CurrentPosition() = %+v", pos)
	}

	if _, err := NewIPPosition(srv.Client(), srv.URL+"/fail").CurrentPosition(context.Background()); !errors.Is(err, ErrGeolocationUnavailable) {
		t.Errorf("CurrentPosition(fail) error = %v", err)
	}
}
