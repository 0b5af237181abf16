package wire

import (
	"encoding/json"
	"strconv"

	"github.com/pkordes/rv-companion/internal/domain"
)

// DecodeLeg decodes one itinerary segment. ordinal is the leg's zero-based
// position in its list; it is only used to synthesize an identifier when the
// payload carries none, so legs from ID-less backends still get stable,
// distinct IDs ("leg_1", "leg_2", ...).
func DecodeLeg(data []byte, ordinal int) (domain.Leg, error) {
	const entity = "leg"

	obj, err := decodeObject(data)
	if err != nil {
		return domain.Leg{}, badField(entity, "", "expected object", data)
	}

	dayLabel, err := obj.stringField(entity, "day_label")
	if err != nil {
		return domain.Leg{}, err
	}
	dateRange, err := obj.stringField(entity, "date_range_description")
	if err != nil {
		return domain.Leg{}, err
	}
	driveTime, err := obj.stringField(entity, "estimated_drive_time")
	if err != nil {
		return domain.Leg{}, err
	}
	distance, err := obj.floatField(entity, "distance_in_miles")
	if err != nil {
		return domain.Leg{}, err
	}

	startRaw, ok := obj["start"]
	if !ok {
		return domain.Leg{}, missingField(entity, "start")
	}
	start, err := decodeLocation("leg.start", startRaw)
	if err != nil {
		return domain.Leg{}, err
	}

	endRaw, ok := obj["end"]
	if !ok {
		return domain.Leg{}, missingField(entity, "end")
	}
	end, err := decodeLocation("leg.end", endRaw)
	if err != nil {
		return domain.Leg{}, err
	}

	var highlights StringList
	if raw, ok := obj["highlights"]; ok {
		if err := json.Unmarshal(raw, &highlights); err != nil {
			return domain.Leg{}, badField(entity, "highlights", "expected string array or delimited string", raw)
		}
	}

	id := obj.optionalString("id")
	if isBlank(id) {
		id = "leg_" + strconv.Itoa(ordinal+1)
	}

	return domain.Leg{
		ID:                    id,
		DayLabel:              dayLabel,
		DateRangeDescription:  dateRange,
		Start:                 start,
		End:                   end,
		DistanceInMiles:       distance,
		EstimatedDriveTime:    driveTime,
		Highlights:            []string(highlights),
		Notes:                 obj.optionalString("notes"),
		IsFromCurrentLocation: obj.boolField("is_from_current_location", false),
	}, nil
}

// EncodeLeg marshals a leg in the canonical wire shape: snake_case fields,
// native numbers and booleans, highlights as an array. Decoding the result
// yields an equal Leg.
func EncodeLeg(leg domain.Leg) ([]byte, error) {
	return json.Marshal(leg)
}
