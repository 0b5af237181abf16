package domain

import (
	"time"

	"github.com/google/uuid"
)

// DecodeFailure is a persisted record of an upstream payload the wire layer
// could not normalize. The raw body is kept verbatim so a failure can be
// reproduced locally without re-running against production.
type DecodeFailure struct {
	ID        uuid.UUID `json:"id"`
	Entity    string    `json:"entity"`     // "itinerary", "checklist", "checklist_run", "park_detail"
	ErrorKind string    `json:"error_kind"` // "structural" or "envelope_not_found"
	Message   string    `json:"message"`
	RawBody   string    `json:"raw_body"`
	CreatedAt time.Time `json:"created_at"`
}

// Known ErrorKind values for DecodeFailure records.
const (
	ErrorKindStructural       = "structural"
	ErrorKindEnvelopeNotFound = "envelope_not_found"
)
