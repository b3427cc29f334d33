package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"skillswap/internal/store"
	"skillswap/pkg/auth"
)

// SkillStore is the slice of the store the skill endpoints need
type SkillStore interface {
	CreateSkill(ctx context.Context, in store.SkillInput) (store.Skill, error)
	ListSkills(ctx context.Context, f store.SkillFilter) ([]store.Skill, error)
	GetSkill(ctx context.Context, id string) (store.Skill, error)
	UpdateSkill(ctx context.Context, id string, up store.SkillUpdate) (store.Skill, error)
	DeleteSkill(ctx context.Context, id string) error
	MatchSkills(ctx context.Context, tags []string) ([]store.Skill, error)
}

type SkillsAPI struct{ DB SkillStore }

type createSkillReq struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	Level        string   `json:"level"`
	Availability string   `json:"availability"`
}

type updateSkillReq struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Tags         []string `json:"tags"`
	Level        *string  `json:"level"`
	Availability *string  `json:"availability"`
}

// Create adds a new skill listing owned by the caller
func (a *SkillsAPI) Create(w http.ResponseWriter, r *http.Request) {
	var req createSkillReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad payload")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)

	if req.Title == "" || req.Description == "" {
		writeErr(w, http.StatusBadRequest, "title and description are required")
		return
	}
	if len(req.Description) > 1000 {
		writeErr(w, http.StatusBadRequest, "description too long")
		return
	}
	if req.Level == "" {
		req.Level = store.LevelIntermediate
	}
	if !store.ValidLevel(req.Level) {
		writeErr(w, http.StatusBadRequest, "invalid level")
		return
	}
	if req.Availability == "" {
		req.Availability = store.AvailabilityAvailable
	}
	if !store.ValidAvailability(req.Availability) {
		writeErr(w, http.StatusBadRequest, "invalid availability")
		return
	}

	s, err := a.DB.CreateSkill(r.Context(), store.SkillInput{
		Title:        req.Title,
		Description:  req.Description,
		Tags:         req.Tags,
		Level:        req.Level,
		Availability: req.Availability,
		OwnerID:      auth.UserID(r.Context()),
	})
	if err != nil {
		storeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Skill created successfully",
		"skill":   toSkillDTO(s),
	})
}

// List returns skills newest first, optionally filtered by tag/level/search
func (a *SkillsAPI) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	skills, err := a.DB.ListSkills(r.Context(), store.SkillFilter{
		Tag:    q.Get("tag"),
		Level:  q.Get("level"),
		Search: q.Get("search"),
	})
	if err != nil {
		storeErr(w, err)
		return
	}
	writeSkillList(w, skills)
}

// Match returns skills sharing tags with the given comma-separated list,
// best match first
func (a *SkillsAPI) Match(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("tags")
	if raw == "" {
		writeErr(w, http.StatusBadRequest, "tags parameter is required")
		return
	}
	skills, err := a.DB.MatchSkills(r.Context(), strings.Split(raw, ","))
	if err != nil {
		storeErr(w, err)
		return
	}
	writeSkillList(w, skills)
}

// Get returns one skill with its owner
func (a *SkillsAPI) Get(w http.ResponseWriter, r *http.Request) {
	s, err := a.DB.GetSkill(r.Context(), r.PathValue("id"))
	if err != nil {
		storeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]skillDTO{"skill": toSkillDTO(s)})
}

// Update applies a partial update; only the owner may change a skill
func (a *SkillsAPI) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateSkillReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "bad payload")
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		writeErr(w, http.StatusBadRequest, "title cannot be empty")
		return
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		writeErr(w, http.StatusBadRequest, "description cannot be empty")
		return
	}
	if req.Level != nil && !store.ValidLevel(*req.Level) {
		writeErr(w, http.StatusBadRequest, "invalid level")
		return
	}
	if req.Availability != nil && !store.ValidAvailability(*req.Availability) {
		writeErr(w, http.StatusBadRequest, "invalid availability")
		return
	}

	s, err := a.DB.GetSkill(r.Context(), id)
	if err != nil {
		storeErr(w, err)
		return
	}
	if s.OwnerID != auth.UserID(r.Context()) {
		writeErr(w, http.StatusForbidden, "not authorized to update this skill")
		return
	}

	s, err = a.DB.UpdateSkill(r.Context(), id, store.SkillUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Tags:         req.Tags,
		Level:        req.Level,
		Availability: req.Availability,
	})
	if err != nil {
		storeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Skill updated successfully",
		"skill":   toSkillDTO(s),
	})
}

// Delete removes a skill; only the owner may delete it
func (a *SkillsAPI) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	s, err := a.DB.GetSkill(r.Context(), id)
	if err != nil {
		storeErr(w, err)
		return
	}
	if s.OwnerID != auth.UserID(r.Context()) {
		writeErr(w, http.StatusForbidden, "not authorized to delete this skill")
		return
	}

	if err := a.DB.DeleteSkill(r.Context(), id); err != nil {
		storeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Skill deleted successfully"})
}

func writeSkillList(w http.ResponseWriter, skills []store.Skill) {
	out := make([]skillDTO, 0, len(skills))
	for _, s := range skills {
		out = append(out, toSkillDTO(s))
	}
	writeJSON(w, http.StatusOK, map[string]any{"skills": out, "count": len(out)})
}
