package wire

import (
	"encoding/json"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/rv-companion/internal/domain"
)

// envelopeKeys are the nested wrappers the backend has placed the leg list
// under over the years, in probe order. The deepest observed real payload is
// data.current_trip.itinerary.legs, so resolution recurses through these
// keys; first match wins and there is no backtracking once a list is found.
var envelopeKeys = []string{"trip", "itinerary", "current_trip", "data", "timeline"}

// maxEnvelopeDepth bounds envelope recursion. Real payloads nest at most
// three levels; the cap only guards against pathological input.
const maxEnvelopeDepth = 8

// probeBareArray matches the oldest shape: the entire payload is the leg
// list. No current-location data is possible in this shape.
func probeBareArray(data []byte) ([]json.RawMessage, bool) {
	var legs []json.RawMessage
	if err := json.Unmarshal(data, &legs); err != nil {
		return nil, false
	}
	return legs, true
}

// probeLegsField matches an object carrying a "legs" array directly. The
// containing object is returned so the caller can pick up sibling fields
// (current_location).
func probeLegsField(obj rawObject) ([]json.RawMessage, rawObject, bool) {
	raw, ok := obj["legs"]
	if !ok {
		return nil, nil, false
	}
	var legs []json.RawMessage
	if err := json.Unmarshal(raw, &legs); err != nil {
		return nil, nil, false
	}
	return legs, obj, true
}

// probeEnvelopes descends through the known envelope keys, re-applying
// probeLegsField at each level, until a leg list is found or depth runs out.
func probeEnvelopes(obj rawObject, depth int) ([]json.RawMessage, rawObject, bool) {
	if depth <= 0 {
		return nil, nil, false
	}
	if legs, container, ok := probeLegsField(obj); ok {
		return legs, container, true
	}
	for _, key := range envelopeKeys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		nested, err := decodeObject(raw)
		if err != nil {
			continue
		}
		if legs, container, ok := probeEnvelopes(nested, depth-1); ok {
			return legs, container, true
		}
	}
	return nil, nil, false
}

// DecodeItinerary resolves whichever historical shape the payload uses and
// decodes the leg list it finds. Shapes are probed in fixed order:
//
//  1. the whole payload is a bare leg array
//  2. an object with a top-level "legs" array
//  3. an object nesting "legs" under envelope keys, recursively
//  4. an empty object — a valid zero-leg itinerary, not an error
//
// Anything else is an *EnvelopeError carrying the raw body. One leg failing
// to decode fails the whole itinerary (*FieldError) — a partial route would
// mislead the traveller. A malformed current_location, by contrast, is
// dropped rather than failing the decode.
func DecodeItinerary(data []byte) (domain.Itinerary, error) {
	it := domain.Itinerary{RawResponse: string(data)}

	if legsRaw, ok := probeBareArray(data); ok {
		legs, err := decodeLegs(legsRaw)
		if err != nil {
			return domain.Itinerary{}, err
		}
		it.Legs = legs
		return it, nil
	}

	obj, err := decodeObject(data)
	if err != nil {
		return domain.Itinerary{}, &EnvelopeError{Raw: snippet(data)}
	}

	legsRaw, container, ok := probeEnvelopes(obj, maxEnvelopeDepth)
	if !ok {
		if len(obj) == 0 {
			// Recognized "no active trip" signal.
			it.Legs = []domain.Leg{}
			return it, nil
		}
		return domain.Itinerary{}, &EnvelopeError{Raw: snippet(data)}
	}

	legs, err := decodeLegs(legsRaw)
	if err != nil {
		return domain.Itinerary{}, err
	}
	it.Legs = legs
	it.CurrentLocation = decodeCurrentLocation(container)
	return it, nil
}

// decodeLegs decodes every element of a located leg list, fail-fast.
func decodeLegs(raw []json.RawMessage) ([]domain.Leg, error) {
	legs := make([]domain.Leg, 0, len(raw))
	for i, legRaw := range raw {
		leg, err := DecodeLeg(legRaw, i)
		if err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}
	return legs, nil
}

// decodeCurrentLocation decodes the current_location sibling of a located
// leg list. Best-effort: any failure — absent field, bad park identifiers,
// missing coordinate, malformed dates — yields nil rather than an error,
// because current-location problems must never block an itinerary decode.
func decodeCurrentLocation(container rawObject) *domain.CurrentLocation {
	raw, ok := container["current_location"]
	if !ok {
		return nil
	}
	obj, err := decodeObject(raw)
	if err != nil {
		return nil
	}

	var parkID int
	if err := json.Unmarshal(obj["park_id"], &parkID); err != nil {
		return nil
	}
	parkUUID, err := uuid.Parse(obj.optionalString("park_uuid"))
	if err != nil {
		return nil
	}
	name, err := obj.stringField("current_location", "name")
	if err != nil {
		return nil
	}
	coord, err := decodeCoordinate("current_location", obj)
	if err != nil {
		return nil
	}

	loc := &domain.CurrentLocation{
		ParkID:      parkID,
		ParkUUID:    parkUUID,
		Name:        name,
		Description: obj.optionalString("description"),
		Coordinate:  coord,
	}

	if loc.ArrivalDate, err = optionalDate(obj, "arrival_date"); err != nil {
		return nil
	}
	if loc.DepartureDate, err = optionalDate(obj, "departure_date"); err != nil {
		return nil
	}
	return loc
}

// optionalDate decodes a yyyy-MM-dd date field that may be absent or null.
func optionalDate(obj rawObject, key string) (*openapi_types.Date, error) {
	raw, ok := obj[key]
	if !ok || string(raw) == "null" {
		return nil, nil
	}
	var d openapi_types.Date
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
