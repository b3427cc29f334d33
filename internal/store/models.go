package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a row does not exist
var ErrNotFound = errors.New("not found")

// Skill proficiency levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelExpert       = "expert"
)

// Skill availability states
const (
	AvailabilityAvailable   = "available"
	AvailabilityBusy        = "busy"
	AvailabilityUnavailable = "unavailable"
)

// Session booking statuses
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

func ValidLevel(s string) bool {
	switch s {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return true
	}
	return false
}

func ValidAvailability(s string) bool {
	switch s {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityUnavailable:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type User struct {
	ID        string
	Name      string
	Email     string
	Skills    []string
	Bio       string
	Lat       float64
	Lng       float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Skill struct {
	ID           string
	Title        string
	Description  string
	Tags         []string
	OwnerID      string
	Level        string
	Availability string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Owner      *User // populated on reads
	MatchCount int   // shared-tag count, match queries only
}

type Session struct {
	ID           string
	SkillID      string
	Participants []string
	StartTime    time.Time
	EndTime      time.Time
	Status       string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Skill *Skill // populated on reads
	Users []User // expanded participants
}
