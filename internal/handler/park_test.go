package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/rv-companion/internal/domain"
	"github.com/pkordes/rv-companion/internal/handler"
)

func parkDetailFixture() domain.ParkDetail {
	return domain.ParkDetail{
		Park: domain.Park{
			ID:            uuid.New(),
			Name:          "Palo Duro Canyon",
			Rating:        4.6,
			Memberships:   []string{"Texas State Parks Pass"},
			Amenities:     []domain.Amenity{},
			FeaturedNotes: []string{},
		},
		FamilyPhotos:     []domain.Photo{{ID: "p-1", URL: "https://img.example/p1.jpg", IsFamilyPhoto: true}},
		CommunityPhotos:  []domain.Photo{},
		FamilyReviews:    []domain.Review{},
		CommunityReviews: []domain.Review{{Rating: 5, Comment: "Stunning", AuthorName: "kc", CreatedAt: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)}},
	}
}

func TestGetParkDetail_200(t *testing.T) {
	fixture := parkDetailFixture()
	svc := &mockParkServicer{
		getDetail: func(_ context.Context, id string) (domain.ParkDetail, error) {
			assert.Equal(t, fixture.Park.ID.String(), id)
			return fixture, nil
		},
	}
	srv := handler.NewServer(nil, nil, svc, nil)

	rec := doRequest(t, srv.Routes(), http.MethodGet, "/api/parks/"+fixture.Park.ID.String())

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.ParkDetail
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Palo Duro Canyon", resp.Park.Name)
	require.Len(t, resp.FamilyPhotos, 1)
	assert.True(t, resp.FamilyPhotos[0].IsFamilyPhoto)
	require.Len(t, resp.CommunityReviews, 1)
	assert.Equal(t, "kc", resp.CommunityReviews[0].AuthorName)
}

func TestGetParkDetail_404(t *testing.T) {
	svc := &mockParkServicer{
		getDetail: func(_ context.Context, _ string) (domain.ParkDetail, error) {
			return domain.ParkDetail{}, fmt.Errorf("park: %w", domain.ErrNotFound)
		},
	}
	srv := handler.NewServer(nil, nil, svc, nil)

	rec := doRequest(t, srv.Routes(), http.MethodGet, "/api/parks/unknown")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeErrorCode(t, rec))
}

func TestGetParkDetail_422_BlankID(t *testing.T) {
	svc := &mockParkServicer{
		getDetail: func(_ context.Context, _ string) (domain.ParkDetail, error) {
			return domain.ParkDetail{}, fmt.Errorf("%w: park id is required", domain.ErrValidation)
		},
	}
	srv := handler.NewServer(nil, nil, svc, nil)

	rec := doRequest(t, srv.Routes(), http.MethodGet, "/api/parks/%20")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_failed", decodeErrorCode(t, rec))
}
