package handler

import (
	"net/http"
)

// GetItinerary handles GET /api/itinerary.
// It returns the normalized itinerary for the family's current trip.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	itinerary, err := s.itineraries.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, itinerary)
}
