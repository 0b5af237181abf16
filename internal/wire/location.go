package wire

import (
	"encoding/json"
	"fmt"

	"github.com/pkordes/rv-companion/internal/domain"
)

// decodeCoordinate resolves the two coordinate shapes the backend has used:
// a nested object under coordKey ({"latitude":..,"longitude":..}), or
// latitude/longitude fields sitting directly on obj. Neither form present is
// a hard error — a location without a coordinate is unusable.
//
// Latitude and longitude individually go through scalar coercion, so
// {"latitude":"30.1"} decodes the same as {"latitude":30.1}.
func decodeCoordinate(entity string, obj rawObject) (domain.Coordinate, error) {
	if raw, ok := obj["coordinate"]; ok {
		nested, err := decodeObject(raw)
		if err != nil {
			return domain.Coordinate{}, badField(entity, "coordinate", "expected object", raw)
		}
		lat, err := nested.floatField(entity, "latitude")
		if err != nil {
			return domain.Coordinate{}, err
		}
		lon, err := nested.floatField(entity, "longitude")
		if err != nil {
			return domain.Coordinate{}, err
		}
		return domain.Coordinate{Latitude: lat, Longitude: lon}, nil
	}

	if obj.has("latitude") || obj.has("longitude") {
		lat, err := obj.floatField(entity, "latitude")
		if err != nil {
			return domain.Coordinate{}, err
		}
		lon, err := obj.floatField(entity, "longitude")
		if err != nil {
			return domain.Coordinate{}, err
		}
		return domain.Coordinate{Latitude: lat, Longitude: lon}, nil
	}

	return domain.Coordinate{}, missingField(entity, "coordinate")
}

// syntheticLocationID formats a coordinate into a stable identifier. Six
// decimal places, period as the decimal separator regardless of locale, so
// two decodes of the same coordinate always synthesize the same ID.
func syntheticLocationID(c domain.Coordinate) string {
	return fmt.Sprintf("coord_lat_%.6f_lon_%.6f", c.Latitude, c.Longitude)
}

// decodeLocation decodes one leg endpoint from raw. The description falls
// through a priority chain: explicit non-blank description field, then
// "{city}, {state}" composed from whichever of the two is present, then the
// name itself — it is never empty on a decoded Location.
func decodeLocation(entity string, raw json.RawMessage) (domain.Location, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return domain.Location{}, badField(entity, "", "expected object", raw)
	}

	name, err := obj.stringField(entity, "name")
	if err != nil {
		return domain.Location{}, err
	}

	coord, err := decodeCoordinate(entity, obj)
	if err != nil {
		return domain.Location{}, err
	}

	id := obj.optionalString("id")
	if isBlank(id) {
		id = syntheticLocationID(coord)
	}

	return domain.Location{
		ID:          id,
		Name:        name,
		Description: locationDescription(obj, name),
		Coordinate:  coord,
	}, nil
}

// locationDescription applies the description fallback chain.
func locationDescription(obj rawObject, name string) string {
	if d := obj.optionalString("description"); !isBlank(d) {
		return d
	}

	city := obj.optionalString("city")
	state := obj.optionalString("state")
	switch {
	case !isBlank(city) && !isBlank(state):
		return city + ", " + state
	case !isBlank(city):
		return city
	case !isBlank(state):
		return state
	}

	return name
}
