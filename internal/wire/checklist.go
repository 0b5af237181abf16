package wire

import (
	"encoding/json"
	"sort"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/rv-companion/internal/domain"
)

// DecodeChecklist decodes a checklist payload. Fields added to the backend
// after the original checklist release — item position, relative_day,
// assigned_member_ids — are absent from older payloads and take their
// declared defaults (0, day_before, empty). Items are returned sorted by
// position; the sort is stable so pre-ordering payloads (all positions 0)
// keep their wire order.
func DecodeChecklist(data []byte) (domain.Checklist, error) {
	const entity = "checklist"

	obj, err := decodeObject(data)
	if err != nil {
		return domain.Checklist{}, badField(entity, "", "expected object", data)
	}
	return decodeChecklistObject(obj)
}

func decodeChecklistObject(obj rawObject) (domain.Checklist, error) {
	const entity = "checklist"

	id, err := obj.stringField(entity, "id")
	if err != nil {
		return domain.Checklist{}, err
	}
	title, err := obj.stringField(entity, "title")
	if err != nil {
		return domain.Checklist{}, err
	}

	items, err := decodeChecklistItems(obj)
	if err != nil {
		return domain.Checklist{}, err
	}

	memberIDs := []string{}
	if raw, ok := obj["assigned_member_ids"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &memberIDs); err != nil {
			return domain.Checklist{}, badField(entity, "assigned_member_ids", "expected string array", raw)
		}
	}

	relativeDay := domain.RelativeDayBefore
	if raw, ok := obj["relative_day"]; ok && string(raw) != "null" {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return domain.Checklist{}, badField(entity, "relative_day", "expected string", raw)
		}
		relativeDay = domain.RelativeDay(s)
		if !relativeDay.Valid() {
			return domain.Checklist{}, badField(entity, "relative_day", "unknown relative day", raw)
		}
	}

	return domain.Checklist{
		ID:                id,
		Title:             title,
		Description:       obj.optionalString("description"),
		Items:             items,
		AssignedMemberIDs: memberIDs,
		RelativeDay:       relativeDay,
	}, nil
}

// decodeChecklistItems decodes the items array. An absent or null items
// field is an empty checklist, not an error.
func decodeChecklistItems(obj rawObject) ([]domain.ChecklistItem, error) {
	const entity = "checklist"

	raw, ok := obj["items"]
	if !ok || string(raw) == "null" {
		return []domain.ChecklistItem{}, nil
	}

	var itemsRaw []json.RawMessage
	if err := json.Unmarshal(raw, &itemsRaw); err != nil {
		return nil, badField(entity, "items", "expected array", raw)
	}

	items := make([]domain.ChecklistItem, 0, len(itemsRaw))
	for _, itemRaw := range itemsRaw {
		item, err := decodeChecklistItem(itemRaw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})
	return items, nil
}

func decodeChecklistItem(raw json.RawMessage) (domain.ChecklistItem, error) {
	const entity = "checklist_item"

	obj, err := decodeObject(raw)
	if err != nil {
		return domain.ChecklistItem{}, badField(entity, "", "expected object", raw)
	}

	id, err := obj.stringField(entity, "id")
	if err != nil {
		return domain.ChecklistItem{}, err
	}
	title, err := obj.stringField(entity, "title")
	if err != nil {
		return domain.ChecklistItem{}, err
	}

	return domain.ChecklistItem{
		ID:         id,
		Title:      title,
		Notes:      obj.optionalString("notes"),
		IsComplete: obj.boolField("is_complete", false),
		Position:   obj.intField("position", 0),
	}, nil
}

// DecodeChecklistRun decodes a checklist bound to a calendar date. The
// target_date field is required and parsed strictly as yyyy-MM-dd with a
// fixed calendar — a malformed date is a hard failure naming the raw string,
// never a guess.
func DecodeChecklistRun(data []byte) (domain.ChecklistRun, error) {
	const entity = "checklist_run"

	obj, err := decodeObject(data)
	if err != nil {
		return domain.ChecklistRun{}, badField(entity, "", "expected object", data)
	}

	checklist, err := decodeChecklistObject(obj)
	if err != nil {
		return domain.ChecklistRun{}, err
	}

	raw, ok := obj["target_date"]
	if !ok {
		return domain.ChecklistRun{}, missingField(entity, "target_date")
	}
	var target openapi_types.Date
	if err := json.Unmarshal(raw, &target); err != nil {
		return domain.ChecklistRun{}, badField(entity, "target_date", "expected yyyy-MM-dd date", raw)
	}

	return domain.ChecklistRun{Checklist: checklist, TargetDate: target}, nil
}
