package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wonwonleywon/roster-api/pkg/core/domain"
	"github.com/wonwonleywon/roster-api/pkg/ports"
)

type ArtistHandler struct {
	service ports.ArtistService
}

func NewArtistHandler(service ports.ArtistService) *ArtistHandler {
	return &ArtistHandler{service: service}
}

// AddArtistRequest payload
type AddArtistRequest struct {
	Name         string  `json:"name"`
	InstagramURL string  `json:"instagramUrl,omitempty"`
	Order        float64 `json:"order"`
}

// UpdateArtistRequest payload
type UpdateArtistRequest struct {
	Name         string `json:"name,omitempty"`
	InstagramURL string `json:"instagramUrl,omitempty"`
}

// ReorderRequest payload; the field name matches the legacy frontend.
type ReorderRequest struct {
	ReorderedArtists []domain.ReorderPair `json:"reorderedArtists"`
}

// List is the public roster endpoint; List and AdminList share semantics,
// the admin variant just sits behind the auth middleware.
func (h *ArtistHandler) List(w http.ResponseWriter, r *http.Request) {
	artists, err := h.service.ListArtists(r.Context())
	if err != nil {
		errorJSON(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if artists == nil {
		artists = []domain.Artist{}
	}
	writeJSON(w, http.StatusOK, artists)
}

func (h *ArtistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddArtistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	artist, err := h.service.AddArtist(r.Context(), req.Name, req.InstagramURL, req.Order)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			errorJSON(w, http.StatusBadRequest, ve.Error())
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Failed to add artist")
		return
	}

	writeJSON(w, http.StatusCreated, artist)
}

func (h *ArtistHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		errorJSON(w, http.StatusBadRequest, "Artist id missing")
		return
	}

	var req UpdateArtistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	artist, err := h.service.UpdateArtist(r.Context(), id, req.Name, req.InstagramURL)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			errorJSON(w, http.StatusNotFound, "Artist not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Failed to update artist")
		return
	}

	writeJSON(w, http.StatusOK, artist)
}

func (h *ArtistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		errorJSON(w, http.StatusBadRequest, "Artist id missing")
		return
	}

	if err := h.service.DeleteArtist(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			errorJSON(w, http.StatusNotFound, "Artist not found")
			return
		}
		errorJSON(w, http.StatusInternalServerError, "Failed to delete artist")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Artist deleted successfully"})
}

// Reorder applies a batch of order updates. Any failure — including an
// unknown id after the valid updates were applied — surfaces as a single
// 500 with no indication of which sub-updates went through, matching what
// the frontend expects.
func (h *ArtistHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Reorder(r.Context(), req.ReorderedArtists); err != nil {
		errorJSON(w, http.StatusInternalServerError, "Failed to save order")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Reorder saved successfully"})
}

// --- shared response helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
