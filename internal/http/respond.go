package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"skillswap/internal/store"
)

// send JSON with proper headers
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr sends the original app's {"error": ...} shape
func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// storeErr maps store failures to a response
func storeErr(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	writeErr(w, http.StatusInternalServerError, "server error")
}

type locationDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type userDTO struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Skills    []string    `json:"skills"`
	Bio       string      `json:"bio"`
	Location  locationDTO `json:"location"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// userBrief is the embedded owner/participant shape
type userBrief struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Skills []string `json:"skills,omitempty"`
	Bio    string   `json:"bio,omitempty"`
}

type skillDTO struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Tags         []string   `json:"tags"`
	Level        string     `json:"level"`
	Availability string     `json:"availability"`
	Owner        *userBrief `json:"owner,omitempty"`
	MatchCount   int        `json:"matchCount,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type sessionDTO struct {
	ID           string      `json:"id"`
	Skill        *skillDTO   `json:"skill,omitempty"`
	Participants []userBrief `json:"participants"`
	StartTime    time.Time   `json:"startTime"`
	EndTime      time.Time   `json:"endTime"`
	Status       string      `json:"status"`
	Notes        string      `json:"notes"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func toUserDTO(u store.User) userDTO {
	return userDTO{
		ID: u.ID, Name: u.Name, Email: u.Email, Skills: u.Skills, Bio: u.Bio,
		Location:  locationDTO{Lat: u.Lat, Lng: u.Lng},
		CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

func toUserBrief(u store.User) userBrief {
	return userBrief{ID: u.ID, Name: u.Name, Email: u.Email, Skills: u.Skills, Bio: u.Bio}
}

func toSkillDTO(s store.Skill) skillDTO {
	d := skillDTO{
		ID: s.ID, Title: s.Title, Description: s.Description, Tags: s.Tags,
		Level: s.Level, Availability: s.Availability, MatchCount: s.MatchCount,
		CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt,
	}
	if s.Owner != nil {
		b := toUserBrief(*s.Owner)
		d.Owner = &b
	}
	return d
}

func toSessionDTO(se store.Session) sessionDTO {
	d := sessionDTO{
		ID: se.ID, StartTime: se.StartTime, EndTime: se.EndTime,
		Status: se.Status, Notes: se.Notes,
		CreatedAt: se.CreatedAt, UpdatedAt: se.UpdatedAt,
		Participants: make([]userBrief, 0, len(se.Users)),
	}
	if se.Skill != nil {
		sd := toSkillDTO(*se.Skill)
		d.Skill = &sd
	}
	for _, u := range se.Users {
		d.Participants = append(d.Participants, toUserBrief(u))
	}
	return d
}
