package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"skillswap/internal/store"
	"skillswap/pkg/auth"
)

// UserStore is the slice of the store the profile endpoints need
type UserStore interface {
	GetUser(ctx context.Context, id string) (store.User, error)
	UpdateProfile(ctx context.Context, id string, up store.ProfileUpdate) (store.User, error)
}

type UsersAPI struct{ DB UserStore }

type updateProfileReq struct {
	Name     *string      `json:"name"`
	Skills   []string     `json:"skills"`
	Bio      *string      `json:"bio"`
	Location *locationDTO `json:"location"`
}

// Profile returns the authenticated user's profile
func (a *UsersAPI) Profile(w http.ResponseWriter, r *http.Request) {
	u, err := a.DB.GetUser(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		storeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]userDTO{"user": toUserDTO(u)})
}

// UpdateProfile applies a partial update to the caller's profile
func (a *UsersAPI) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad payload")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		writeErr(w, http.StatusBadRequest, "name cannot be empty")
		return
	}
	if req.Bio != nil && len(*req.Bio) > 500 {
		writeErr(w, http.StatusBadRequest, "bio too long")
		return
	}

	up := store.ProfileUpdate{Name: req.Name, Skills: req.Skills, Bio: req.Bio}
	if req.Location != nil {
		up.Lat, up.Lng = &req.Location.Lat, &req.Location.Lng
	}

	u, err := a.DB.UpdateProfile(r.Context(), auth.UserID(r.Context()), up)
	if err != nil {
		storeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    toUserDTO(u),
	})
}

// Get returns another user's public profile
func (a *UsersAPI) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	u, err := a.DB.GetUser(r.Context(), id)
	if err != nil {
		storeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]userDTO{"user": toUserDTO(u)})
}
