package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"skillswap/internal/store"
	"skillswap/pkg/auth"
)

// AuthStore is the slice of the store the auth endpoints need
type AuthStore interface {
	CreateUser(ctx context.Context, name, email, password string) (store.User, error)
	VerifyUser(ctx context.Context, email, password string) (store.User, error)
	GetUser(ctx context.Context, id string) (store.User, error)
}

type AuthAPI struct {
	DB  AuthStore
	JWT *auth.JWT
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type tokenResp struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

// Register handles user signup and returns a JWT
func (a *AuthAPI) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad payload")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	// Basic validation
	if req.Name == "" {
		writeErr(w, http.StatusBadRequest, "name is required")
		return
	}
	if len(req.Password) < 8 || !strings.Contains(req.Email, "@") {
		writeErr(w, http.StatusBadRequest, "invalid email or weak password")
		return
	}

	// Create user
	u, err := a.DB.CreateUser(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeErr(w, http.StatusConflict, "email already in use")
		return
	}

	// Issue token for 24hrs
	tok, _ := a.JWT.Sign(u.ID, 24*time.Hour)
	writeJSON(w, http.StatusCreated, tokenResp{Token: tok, User: toUserDTO(u)})
}

// Login verifies credentials and returns a JWT
func (a *AuthAPI) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad payload")
		return
	}

	// Check credentials
	u, err := a.DB.VerifyUser(r.Context(), req.Email, req.Password)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	// Issue token (24h)
	tok, _ := a.JWT.Sign(u.ID, 24*time.Hour)
	writeJSON(w, http.StatusOK, tokenResp{Token: tok, User: toUserDTO(u)})
}

// Me returns the authenticated user
func (a *AuthAPI) Me(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	u, err := a.DB.GetUser(r.Context(), uid)
	if err != nil {
		storeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]userDTO{"user": toUserDTO(u)})
}
