package domain

import (
	"time"

	"github.com/google/uuid"
)

// Amenity is a single park feature with an SF Symbols image name the mobile
// client renders next to it.
type Amenity struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	SystemImage string    `json:"system_image"`
}

// Park is the summary card for an RV park.
type Park struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	State         string    `json:"state"`
	City          string    `json:"city"`
	Rating        float64   `json:"rating"`
	Description   string    `json:"description"`
	Memberships   []string  `json:"memberships"`
	Amenities     []Amenity `json:"amenities"`
	FeaturedNotes []string  `json:"featured_notes"`
}

// Photo is one photo attached to a park. IsFamilyPhoto distinguishes the
// travelling family's own photos from community uploads.
type Photo struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Caption       string `json:"caption"`
	IsFamilyPhoto bool   `json:"is_family_photo"`
}

// Review is one park review. CreatedAt arrives as ISO-8601 with fractional
// seconds.
type Review struct {
	ID             string    `json:"id"`
	Rating         float64   `json:"rating"`
	Comment        string    `json:"comment"`
	AuthorName     string    `json:"author_name"`
	CreatedAt      time.Time `json:"created_at"`
	IsFamilyReview bool      `json:"is_family_review"`
}

// ParkDetail is a park summary plus its photo and review collections, split
// into family and community groups. Decoders guarantee the split: legacy
// payloads with a single undifferentiated list are reconciled into these
// four collections, never dropped.
type ParkDetail struct {
	Park             Park     `json:"park"`
	FamilyPhotos     []Photo  `json:"family_photos"`
	CommunityPhotos  []Photo  `json:"community_photos"`
	FamilyReviews    []Review `json:"family_reviews"`
	CommunityReviews []Review `json:"community_reviews"`
}
