package wire

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/rv-companion/internal/domain"
)

// DecodeParkDetail decodes a park detail payload, reconciling the two
// photo/review groupings the backend has shipped: explicit family_* and
// community_* lists (current), or one legacy undifferentiated list whose
// items carry an is_family_* flag (historical).
//
// Explicit lists are authoritative when their key is present, even when
// empty. Without them the legacy list is partitioned by flag — with one
// deliberate asymmetry: if the flag never marked anything as family, the
// entire legacy list is treated as community content, so untagged legacy
// data is surfaced rather than silently dropped.
func DecodeParkDetail(data []byte) (domain.ParkDetail, error) {
	const entity = "park_detail"

	obj, err := decodeObject(data)
	if err != nil {
		return domain.ParkDetail{}, badField(entity, "", "expected object", data)
	}

	parkRaw, ok := obj["park"]
	if !ok {
		return domain.ParkDetail{}, missingField(entity, "park")
	}
	park, err := decodePark(parkRaw)
	if err != nil {
		return domain.ParkDetail{}, err
	}

	familyPhotos, communityPhotos, err := reconcilePhotos(obj)
	if err != nil {
		return domain.ParkDetail{}, err
	}
	familyReviews, communityReviews, err := reconcileReviews(obj)
	if err != nil {
		return domain.ParkDetail{}, err
	}

	return domain.ParkDetail{
		Park:             park,
		FamilyPhotos:     familyPhotos,
		CommunityPhotos:  communityPhotos,
		FamilyReviews:    familyReviews,
		CommunityReviews: communityReviews,
	}, nil
}

// decodePark decodes the park summary. Rating goes through scalar coercion;
// memberships and featured_notes go through list normalization.
func decodePark(raw json.RawMessage) (domain.Park, error) {
	const entity = "park"

	obj, err := decodeObject(raw)
	if err != nil {
		return domain.Park{}, badField(entity, "", "expected object", raw)
	}

	idStr, err := obj.stringField(entity, "id")
	if err != nil {
		return domain.Park{}, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return domain.Park{}, badField(entity, "id", "expected UUID", obj["id"])
	}
	name, err := obj.stringField(entity, "name")
	if err != nil {
		return domain.Park{}, err
	}

	park := domain.Park{
		ID:          id,
		Name:        name,
		State:       obj.optionalString("state"),
		City:        obj.optionalString("city"),
		Description: obj.optionalString("description"),
		Memberships: []string{},
		Amenities:   []domain.Amenity{},
	}

	if raw, ok := obj["rating"]; ok {
		var r FlexFloat
		if err := json.Unmarshal(raw, &r); err != nil {
			return domain.Park{}, badField(entity, "rating", "expected number or numeric string", raw)
		}
		park.Rating = float64(r)
	}

	var memberships StringList
	if raw, ok := obj["memberships"]; ok {
		if err := json.Unmarshal(raw, &memberships); err != nil {
			return domain.Park{}, badField(entity, "memberships", "expected string array or delimited string", raw)
		}
		park.Memberships = append(park.Memberships, memberships...)
	}

	park.FeaturedNotes = []string{}
	if raw, ok := obj["featured_notes"]; ok {
		var notes StringList
		if err := json.Unmarshal(raw, &notes); err != nil {
			return domain.Park{}, badField(entity, "featured_notes", "expected string array or delimited string", raw)
		}
		park.FeaturedNotes = append(park.FeaturedNotes, notes...)
	}

	if raw, ok := obj["amenities"]; ok && string(raw) != "null" {
		if err := json.Unmarshal(raw, &park.Amenities); err != nil {
			return domain.Park{}, badField(entity, "amenities", "expected amenity array", raw)
		}
	}

	return park, nil
}

// decodePhoto decodes a single photo. The family flag is secondary data and
// degrades to false when malformed; url is the one structural requirement.
func decodePhoto(raw json.RawMessage) (domain.Photo, error) {
	const entity = "photo"

	obj, err := decodeObject(raw)
	if err != nil {
		return domain.Photo{}, badField(entity, "", "expected object", raw)
	}
	url, err := obj.stringField(entity, "url")
	if err != nil {
		return domain.Photo{}, err
	}
	return domain.Photo{
		ID:            obj.optionalString("id"),
		URL:           url,
		Caption:       obj.optionalString("caption"),
		IsFamilyPhoto: obj.boolField("is_family_photo", false),
	}, nil
}

// decodeReview decodes a single review. Rating goes through scalar coercion
// and is required; created_at is ISO-8601 with fractional seconds; the
// family flag degrades to false when malformed.
func decodeReview(raw json.RawMessage) (domain.Review, error) {
	const entity = "review"

	obj, err := decodeObject(raw)
	if err != nil {
		return domain.Review{}, badField(entity, "", "expected object", raw)
	}
	rating, err := obj.floatField(entity, "rating")
	if err != nil {
		return domain.Review{}, err
	}

	review := domain.Review{
		ID:             obj.optionalString("id"),
		Rating:         rating,
		Comment:        obj.optionalString("comment"),
		AuthorName:     obj.optionalString("author_name"),
		IsFamilyReview: obj.boolField("is_family_review", false),
	}

	if raw, ok := obj["created_at"]; ok && string(raw) != "null" {
		var ts time.Time
		if err := json.Unmarshal(raw, &ts); err != nil {
			return domain.Review{}, badField(entity, "created_at", "expected ISO-8601 timestamp", raw)
		}
		review.CreatedAt = ts
	}

	return review, nil
}

// photoList decodes an array field of photos, element by element.
func photoList(entity, key string, raw json.RawMessage) ([]domain.Photo, error) {
	if string(raw) == "null" {
		return []domain.Photo{}, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, badField(entity, key, "expected photo array", raw)
	}
	photos := make([]domain.Photo, 0, len(elems))
	for _, e := range elems {
		p, err := decodePhoto(e)
		if err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, nil
}

// reviewList decodes an array field of reviews, element by element.
func reviewList(entity, key string, raw json.RawMessage) ([]domain.Review, error) {
	if string(raw) == "null" {
		return []domain.Review{}, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, badField(entity, key, "expected review array", raw)
	}
	reviews := make([]domain.Review, 0, len(elems))
	for _, e := range elems {
		r, err := decodeReview(e)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, nil
}

// reconcilePhotos applies the three-way grouping logic to photos.
func reconcilePhotos(obj rawObject) (family, community []domain.Photo, err error) {
	const entity = "park_detail"

	legacy := []domain.Photo{}
	if raw, ok := obj["photos"]; ok {
		if legacy, err = photoList(entity, "photos", raw); err != nil {
			return nil, nil, err
		}
	}

	if raw, ok := obj["family_photos"]; ok {
		if family, err = photoList(entity, "family_photos", raw); err != nil {
			return nil, nil, err
		}
	} else {
		family = []domain.Photo{}
		for _, p := range legacy {
			if p.IsFamilyPhoto {
				family = append(family, p)
			}
		}
	}

	if raw, ok := obj["community_photos"]; ok {
		if community, err = photoList(entity, "community_photos", raw); err != nil {
			return nil, nil, err
		}
		return family, community, nil
	}

	// No explicit community list. An empty family set means the legacy list
	// was never tagged — all of it is community content.
	community = []domain.Photo{}
	if len(family) == 0 {
		community = append(community, legacy...)
		return family, community, nil
	}
	for _, p := range legacy {
		if !p.IsFamilyPhoto {
			community = append(community, p)
		}
	}
	return family, community, nil
}

// reconcileReviews applies the identical three-way grouping logic to
// reviews, independently of how photos resolved.
func reconcileReviews(obj rawObject) (family, community []domain.Review, err error) {
	const entity = "park_detail"

	legacy := []domain.Review{}
	if raw, ok := obj["reviews"]; ok {
		if legacy, err = reviewList(entity, "reviews", raw); err != nil {
			return nil, nil, err
		}
	}

	if raw, ok := obj["family_reviews"]; ok {
		if family, err = reviewList(entity, "family_reviews", raw); err != nil {
			return nil, nil, err
		}
	} else {
		family = []domain.Review{}
		for _, r := range legacy {
			if r.IsFamilyReview {
				family = append(family, r)
			}
		}
	}

	if raw, ok := obj["community_reviews"]; ok {
		if community, err = reviewList(entity, "community_reviews", raw); err != nil {
			return nil, nil, err
		}
		return family, community, nil
	}

	community = []domain.Review{}
	if len(family) == 0 {
		community = append(community, legacy...)
		return family, community, nil
	}
	for _, r := range legacy {
		if !r.IsFamilyReview {
			community = append(community, r)
		}
	}
	return family, community, nil
}
