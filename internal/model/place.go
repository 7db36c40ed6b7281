package model

import "fmt"

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String renders the coordinate as "lat,lng" with six decimals.
func (l LatLng) String() string {
	return fmt.Sprintf("%.6f,%.6f", l.Lat, l.Lng)
}

// Place is a point of interest returned by a location lookup.
// Vicinity is the short neighborhood address; FormattedAddress is the full one.
type Place struct {
	ID               string   `json:"id,omitempty"`
	Name             string   `json:"name"`
	Vicinity         string   `json:"vicinity,omitempty"`
	FormattedAddress string   `json:"formattedAddress,omitempty"`
	Website          string   `json:"website,omitempty"`
	Rating           float32  `json:"rating,omitempty"`
	UserRatingsTotal int      `json:"userRatingsTotal,omitempty"`
	Types            []string `json:"types,omitempty"`
	Location         LatLng   `json:"location"`
}

// Address returns the vicinity, falling back to the formatted address.
func (p Place) Address() string {
	if p.Vicinity != "" {
		return p.Vicinity
	}
	return p.FormattedAddress
}

// RatingLabel renders the rating the way result cards show it.
func (p Place) RatingLabel() string {
	if p.Rating == 0 {
		return "No ratings"
	}
	return fmt.Sprintf("⭐ %g (%d)", p.Rating, p.UserRatingsTotal)
}
