package domain

import (
	"fmt"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// RelativeDay says when a checklist is meant to be worked relative to a
// travel day. Older backend payloads predate scheduling and omit the field;
// decoders default those to RelativeDayBefore.
type RelativeDay string

const (
	RelativeDayBefore RelativeDay = "day_before"
	RelativeDayOf     RelativeDay = "day_of"
	RelativeDayAfter  RelativeDay = "day_after"
)

// Valid reports whether r is one of the known relative-day values.
func (r RelativeDay) Valid() bool {
	switch r {
	case RelativeDayBefore, RelativeDayOf, RelativeDayAfter:
		return true
	}
	return false
}

// ChecklistItem is a single line on a checklist. Position drives stable
// ordering; backends that predate ordering never sent it, so 0 is a valid
// position for every item.
type ChecklistItem struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Notes      string `json:"notes"`
	IsComplete bool   `json:"is_complete"`
	Position   int    `json:"position"`
}

// Checklist is a reusable list of travel-day tasks. AssignedMemberIDs is a
// weak reference: IDs are resolved against a separately fetched household
// member list via ResolveMembers, never embedded as owned copies.
type Checklist struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Items             []ChecklistItem `json:"items"`
	AssignedMemberIDs []string        `json:"assigned_member_ids"`
	RelativeDay       RelativeDay     `json:"relative_day"`
}

// ChecklistRun is a Checklist bound to a concrete calendar date.
type ChecklistRun struct {
	Checklist
	TargetDate openapi_types.Date `json:"target_date"`
}

// RunID derives the run's identifier from the checklist ID and target date.
// The derivation is deterministic, so repeated decodes of the same day yield
// the same ID and the value is safe to use as a cache or list key.
func (r ChecklistRun) RunID() string {
	return fmt.Sprintf("%s-%s", r.ID, r.TargetDate.Format("2006-01-02"))
}

// Member is one person in the travelling household.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ResolveMembers looks up assigned-member IDs against a member list.
// IDs with no matching member are skipped — the checklist stays usable when
// a member has been removed since the assignment was made.
func ResolveMembers(ids []string, members []Member) []Member {
	byID := make(map[string]Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	var resolved []Member
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			resolved = append(resolved, m)
		}
	}
	return resolved
}
