package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"skillswap/internal/store"
	"skillswap/pkg/auth"
)

// SessionStore is the slice of the store the booking endpoints need
type SessionStore interface {
	CreateSession(ctx context.Context, skillID, requesterID string, start, end time.Time, notes string) (store.Session, error)
	ListSessionsFor(ctx context.Context, userID string) ([]store.Session, error)
	GetSession(ctx context.Context, id string) (store.Session, error)
	UpdateSessionStatus(ctx context.Context, id, status string) (store.Session, error)
}

type SessionsAPI struct{ DB SessionStore }

type createSessionReq struct {
	SkillID   string `json:"skillId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Notes     string `json:"notes"`
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// Create books a session between the caller and the skill's owner
func (a *SessionsAPI) Create(w http.ResponseWriter, r *http.Request) {
	var req createSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad payload")
		return
	}
	if req.SkillID == "" {
		writeErr(w, http.StatusBadRequest, "skill ID is required")
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "valid start time is required")
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "valid end time is required")
		return
	}
	if len(req.Notes) > 500 {
		writeErr(w, http.StatusBadRequest, "notes too long")
		return
	}

	se, err := a.DB.CreateSession(r.Context(), req.SkillID, auth.UserID(r.Context()), start, end, req.Notes)
	if err != nil {
		storeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Session created successfully",
		"session": toSessionDTO(se),
	})
}

// List returns the caller's sessions, latest start time first
func (a *SessionsAPI) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := a.DB.ListSessionsFor(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		storeErr(w, err)
		return
	}
	out := make([]sessionDTO, 0, len(sessions))
	for _, se := range sessions {
		out = append(out, toSessionDTO(se))
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": out, "count": len(out)})
}

// Get returns one session; participants only
func (a *SessionsAPI) Get(w http.ResponseWriter, r *http.Request) {
	se, err := a.DB.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		storeErr(w, err)
		return
	}
	if !slices.Contains(se.Participants, auth.UserID(r.Context())) {
		writeErr(w, http.StatusForbidden, "not authorized to view this session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]sessionDTO{"session": toSessionDTO(se)})
}

// UpdateStatus moves a session through pending/confirmed/completed/cancelled;
// participants only
func (a *SessionsAPI) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad payload")
		return
	}
	if !store.ValidStatus(req.Status) {
		writeErr(w, http.StatusBadRequest, "invalid status")
		return
	}

	se, err := a.DB.GetSession(r.Context(), id)
	if err != nil {
		storeErr(w, err)
		return
	}
	if !slices.Contains(se.Participants, auth.UserID(r.Context())) {
		writeErr(w, http.StatusForbidden, "not authorized to update this session")
		return
	}

	se, err = a.DB.UpdateSessionStatus(r.Context(), id, req.Status)
	if err != nil {
		storeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Session status updated successfully",
		"session": toSessionDTO(se),
	})
}
