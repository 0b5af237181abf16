package wire

import "fmt"

// FieldError is a structural decode failure: a required field is absent or
// none of the tolerated representations could convert it. Always fatal to
// the entity being decoded — required fields are never silently defaulted.
type FieldError struct {
	Entity string // entity being decoded, e.g. "leg", "checklist_item"
	Field  string // wire field name, e.g. "distance_in_miles"
	Reason string // what was expected
	Raw    string // offending raw value or body snippet
}

func (e *FieldError) Error() string {
	if e.Raw == "" {
		return fmt.Sprintf("decode %s: field %q: %s", e.Entity, e.Field, e.Reason)
	}
	return fmt.Sprintf("decode %s: field %q: %s (raw: %s)", e.Entity, e.Field, e.Reason, e.Raw)
}

// missingField builds a FieldError for an absent required field.
func missingField(entity, field string) *FieldError {
	return &FieldError{Entity: entity, Field: field, Reason: "required field missing"}
}

// badField builds a FieldError for a field present in an unconvertible form.
func badField(entity, field, reason string, raw []byte) *FieldError {
	return &FieldError{Entity: entity, Field: field, Reason: reason, Raw: snippet(raw)}
}

// EnvelopeError means none of the known itinerary shapes matched a non-empty
// payload. Callers distinguish it from FieldError to report "unexpected
// upstream response" rather than a field-level bug; Raw carries the body for
// diagnostics.
type EnvelopeError struct {
	Raw string
}

func (e *EnvelopeError) Error() string {
	return "unable to locate itinerary legs in response"
}
