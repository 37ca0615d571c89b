package service

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gathersplit/internal/models"
	"gathersplit/internal/storage"
)

// GatheringService handles gathering CRUD.
type GatheringService struct {
	store storage.Store
}

// NewGatheringService creates a new GatheringService with the given storage
// backend.
func NewGatheringService(store storage.Store) *GatheringService {
	return &GatheringService{store: store}
}

type gatheringRequest struct {
	Title        string   `json:"title" validate:"required"`
	Date         int64    `json:"date" validate:"required"`
	HostID       string   `json:"hostId"`
	Participants []string `json:"participants" validate:"required,min=1,dive,required"`
}

type gatheringResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Date         int64    `json:"date"`
	HostID       string   `json:"hostId,omitempty"`
	Participants []string `json:"participants"`
	CreatedAt    int64    `json:"createdAt"`
}

func toGatheringResponse(g *models.Gathering) gatheringResponse {
	return gatheringResponse{
		ID:           g.ID,
		Title:        g.Title,
		Date:         g.Date,
		HostID:       g.HostID,
		Participants: g.Participants,
		CreatedAt:    g.CreatedAt,
	}
}

// checkParticipantsExist verifies that every referenced user ID exists.
func (s *GatheringService) checkParticipantsExist(r *http.Request, ids []string) error {
	users, err := s.store.GetUsersByIDs(r.Context(), ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := users[id]; !ok {
			return fmt.Errorf("unknown participant: %s", id)
		}
	}
	return nil
}

// CreateGathering handles POST /gatherings.
func (s *GatheringService) CreateGathering(w http.ResponseWriter, r *http.Request) {
	var req gatheringRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	gathering := &models.Gathering{
		Title:        req.Title,
		Date:         req.Date,
		HostID:       req.HostID,
		Participants: req.Participants,
	}
	if err := gathering.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.checkParticipantsExist(r, req.Participants); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.CreateGathering(r.Context(), gathering); err != nil {
		slog.Error("CreateGathering failed", "error", err)
		respondStoreError(w, err)
		return
	}

	slog.Info("Gathering created", "gathering_id", gathering.ID, "participants", len(gathering.Participants))
	respondJSON(w, http.StatusCreated, toGatheringResponse(gathering))
}

// ListGatherings handles GET /gatherings.
func (s *GatheringService) ListGatherings(w http.ResponseWriter, r *http.Request) {
	gatherings, err := s.store.ListGatherings(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}

	resp := make([]gatheringResponse, len(gatherings))
	for i, g := range gatherings {
		resp[i] = toGatheringResponse(g)
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetGathering handles GET /gatherings/{id}.
func (s *GatheringService) GetGathering(w http.ResponseWriter, r *http.Request) {
	gathering, err := s.store.GetGathering(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toGatheringResponse(gathering))
}

// UpdateGathering handles PUT /gatherings/{id}.
// Shrinking the participant list does not touch stored expenses; expenses
// declared for removed participants keep debiting them in the balance
// computation, matching their declared share at spend time.
func (s *GatheringService) UpdateGathering(w http.ResponseWriter, r *http.Request) {
	var req gatheringRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	gathering, err := s.store.GetGathering(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}

	gathering.Title = req.Title
	gathering.Date = req.Date
	gathering.HostID = req.HostID
	gathering.Participants = req.Participants

	if err := gathering.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.checkParticipantsExist(r, req.Participants); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.UpdateGathering(r.Context(), gathering); err != nil {
		slog.Error("UpdateGathering failed", "gathering_id", gathering.ID, "error", err)
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toGatheringResponse(gathering))
}

// DeleteGathering handles DELETE /gatherings/{id}; its expenses go with it.
func (s *GatheringService) DeleteGathering(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteGathering(r.Context(), id); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Error("DeleteGathering failed", "gathering_id", id, "error", err)
		}
		respondStoreError(w, err)
		return
	}
	slog.Info("Gathering deleted", "gathering_id", id)
	respondJSON(w, http.StatusNoContent, nil)
}
