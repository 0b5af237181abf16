// Package domain contains the canonical data types for the RV Companion API.
// This package has zero dependencies on the wire layer and is imported by
// every other internal package (wire, repo, service, handler).
package domain

import (
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Coordinate is a geographic point. Latitude and longitude are finite
// doubles; no range validation is performed at this layer.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location is one endpoint of a leg: a named place with a display
// description and a coordinate. Description is never empty after decoding.
//
// Identity is the ID alone — two Locations with the same ID are the same
// place, which is what lets UniqueStops de-duplicate shared waypoints.
type Location struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Coordinate  Coordinate `json:"coordinate"`
}

// Same reports whether two locations refer to the same place.
// Only the ID participates; display fields may differ between payloads.
func (l Location) Same(other Location) bool {
	return l.ID == other.ID
}

// Leg is a single segment of an itinerary: one day's drive from Start to End.
// Legs are immutable after decode and owned exclusively by their Itinerary.
type Leg struct {
	ID                    string   `json:"id"`
	DayLabel              string   `json:"day_label"`
	DateRangeDescription  string   `json:"date_range_description"`
	Start                 Location `json:"start"`
	End                   Location `json:"end"`
	DistanceInMiles       float64  `json:"distance_in_miles"`
	EstimatedDriveTime    string   `json:"estimated_drive_time"`
	Highlights            []string `json:"highlights"`
	Notes                 string   `json:"notes,omitempty"`
	IsFromCurrentLocation bool     `json:"is_from_current_location"`
}

// CurrentLocation is the traveller's present park, when the backend knows it.
// The backend identifies the same park by both an integer ID and a UUID with
// no documented relationship between the two; both are carried as opaque
// identifiers.
type CurrentLocation struct {
	ParkID        int                 `json:"park_id"`
	ParkUUID      uuid.UUID           `json:"park_uuid"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	ArrivalDate   *openapi_types.Date `json:"arrival_date,omitempty"`
	DepartureDate *openapi_types.Date `json:"departure_date,omitempty"`
	Coordinate    Coordinate          `json:"coordinate"`
}

// Itinerary is an ordered sequence of legs in travel order, plus the
// traveller's current location when the backend supplied one.
//
// An empty Legs slice is a valid "no trip planned" state. A decoded
// Itinerary never contains a leg that failed to decode — one bad leg fails
// the whole decode rather than producing a silently truncated route.
type Itinerary struct {
	Legs            []Leg            `json:"legs"`
	CurrentLocation *CurrentLocation `json:"current_location,omitempty"`

	// RawResponse is the original upstream body, retained for diagnostics.
	// Never serialized back to clients.
	RawResponse string `json:"-"`
}

// UniqueStops returns every distinct location visited across the itinerary,
// in travel order. Locations are de-duplicated by ID, so a waypoint shared
// between consecutive legs appears once.
func (it Itinerary) UniqueStops() []Location {
	seen := make(map[string]struct{}, len(it.Legs)*2)
	var stops []Location
	for _, leg := range it.Legs {
		for _, loc := range []Location{leg.Start, leg.End} {
			if _, ok := seen[loc.ID]; ok {
				continue
			}
			seen[loc.ID] = struct{}{}
			stops = append(stops, loc)
		}
	}
	return stops
}

// TotalDistanceInMiles sums the distance of every leg.
func (it Itinerary) TotalDistanceInMiles() float64 {
	var total float64
	for _, leg := range it.Legs {
		total += leg.DistanceInMiles
	}
	return total
}
