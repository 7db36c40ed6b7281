package geo

import (
	"context"
	"fmt"
	"strings"

	"github.com/nao1215/salesqueen/internal/model"
)

// sampleCities are the locations known to MockLocator.
var sampleCities = []Location{
	{Name: "Pune", FormattedAddress: "Pune, Maharashtra, India", LatLng: model.LatLng{Lat: 18.5204, Lng: 73.8567}},
	{Name: "Mumbai", FormattedAddress: "Mumbai, Maharashtra, India", LatLng: model.LatLng{Lat: 19.0760, Lng: 72.8777}},
	{Name: "Bengaluru", FormattedAddress: "Bengaluru, Karnataka, India", LatLng: model.LatLng{Lat: 12.9716, Lng: 77.5946}},
	{Name: "Delhi", FormattedAddress: "New Delhi, Delhi, India", LatLng: model.LatLng{Lat: 28.6139, Lng: 77.2090}},
	{Name: "India", FormattedAddress: "India", LatLng: model.LatLng{Lat: 20.5937, Lng: 78.9629}},
}

// sampleBusiness is a business placed at an offset from the search center.
type sampleBusiness struct {
	name     string
	vicinity string
	website  string
	rating   float32
	reviews  int
	types    []string
	dLat     float64
	dLng     float64
}

var sampleBusinesses = []sampleBusiness{
	{name: "Sunrise Bakery", vicinity: "Market Road", rating: 4.5, reviews: 128, types: []string{"bakery", "food"}, dLat: 0.004, dLng: 0.002},
	{name: "Brew & Bean Cafe", vicinity: "Station Lane", website: "https://brewandbean.example", rating: 4.2, reviews: 86, types: []string{"cafe", "food"}, dLat: -0.003, dLng: 0.005},
	{name: "Spice Route Restaurant", vicinity: "Temple Street", rating: 4.0, reviews: 240, types: []string{"restaurant", "food"}, dLat: 0.006, dLng: -0.004},
	{name: "FitZone Gym", vicinity: "Lake View Road", website: "https://fitzone.example", rating: 4.6, reviews: 57, types: []string{"gym"}, dLat: -0.007, dLng: -0.002},
	{name: "Glow Beauty Salon", vicinity: "Park Avenue", rating: 4.3, reviews: 44, types: []string{"beauty_salon"}, dLat: 0.002, dLng: 0.008},
	{name: "City Hardware Store", vicinity: "Industrial Area", types: []string{"hardware_store", "store"}, dLat: -0.009, dLng: 0.006},
	{name: "Green Leaf Pharmacy", vicinity: "Hospital Road", rating: 3.9, reviews: 19, types: []string{"pharmacy", "health"}, dLat: 0.008, dLng: 0.001},
	{name: "Bright Smile Dental", vicinity: "College Road", website: "https://brightsmile.example", rating: 4.8, reviews: 132, types: []string{"dentist", "health"}, dLat: -0.001, dLng: -0.009},
}

// MockLocator answers from built-in sample data.
type MockLocator struct{}

var _ Locator = MockLocator{}

// NewMockLocator returns a MockLocator.
func NewMockLocator() MockLocator {
	return MockLocator{}
}

// Resolve implements Locator. It matches the query against a few sample cities.
func (MockLocator) Resolve(_ context.Context, query string) (Location, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Location{}, ErrEmptyQuery
	}
	for _, c := range sampleCities {
		name := strings.ToLower(c.Name)
		if strings.Contains(q, name) || strings.Contains(name, q) {
			return c, nil
		}
	}
	return Location{}, fmt.Errorf("%w: %q", ErrNotFound, query)
}

// Nearby implements Locator.
func (MockLocator) Nearby(_ context.Context, center model.LatLng, opts NearbyOptions) ([]model.Place, error) {
	return samplePlaces(center, opts), nil
}

// samplePlaces places the sample businesses around center.
func samplePlaces(center model.LatLng, opts NearbyOptions) []model.Place {
	opts = opts.normalized()
	places := make([]model.Place, 0, len(sampleBusinesses))
	for i, b := range sampleBusinesses {
		if !matchesIndustry(b.types, opts.Industry) {
			continue
		}
		places = append(places, model.Place{
			ID:               fmt.Sprintf("sample-%d", i+1),
			Name:             b.name,
			Vicinity:         b.vicinity,
			Website:          b.website,
			Rating:           b.rating,
			UserRatingsTotal: b.reviews,
			Types:            append([]string(nil), b.types...),
			Location:         model.LatLng{Lat: center.Lat + b.dLat, Lng: center.Lng + b.dLng},
		})
		if len(places) == opts.Limit {
			break
		}
	}
	return places
}
