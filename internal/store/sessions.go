package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

const sessionCols = `se.id, se.skill_id, se.participants::text[], se.start_time, se.end_time, se.status, se.notes, se.created_at, se.updated_at`

func scanSessionWithSkill(row pgx.Row) (Session, error) {
	var se Session
	var sk Skill
	err := row.Scan(&se.ID, &se.SkillID, &se.Participants, &se.StartTime, &se.EndTime, &se.Status, &se.Notes,
		&se.CreatedAt, &se.UpdatedAt,
		&sk.ID, &sk.Title, &sk.Description, &sk.Tags, &sk.OwnerID, &sk.Level, &sk.Availability, &sk.CreatedAt, &sk.UpdatedAt)
	if err != nil {
		return Session{}, err
	}
	se.Skill = &sk
	return se, nil
}

// expandParticipants attaches user rows for every participant id
func (p *Postgres) expandParticipants(ctx context.Context, sessions []Session) error {
	idset := map[string]struct{}{}
	for _, se := range sessions {
		for _, id := range se.Participants {
			idset[id] = struct{}{}
		}
	}
	if len(idset) == 0 {
		return nil
	}
	ids := make([]string, 0, len(idset))
	for id := range idset {
		ids = append(ids, id)
	}

	rows, err := p.pool.Query(ctx, `
		SELECT id, name, email, bio
		FROM users
		WHERE id = ANY($1::uuid[])
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	byID := map[string]User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Bio); err != nil {
			return err
		}
		byID[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range sessions {
		sessions[i].Users = make([]User, 0, len(sessions[i].Participants))
		for _, id := range sessions[i].Participants {
			if u, ok := byID[id]; ok {
				sessions[i].Users = append(sessions[i].Users, u)
			}
		}
	}
	return nil
}

// CreateSession books a session on a skill between the requester and the
// skill's owner, starting out pending
func (p *Postgres) CreateSession(ctx context.Context, skillID, requesterID string, start, end time.Time, notes string) (Session, error) {
	sk, err := p.GetSkill(ctx, skillID)
	if err != nil {
		return Session{}, err
	}

	row := p.pool.QueryRow(ctx, `
		WITH se AS (
			INSERT INTO sessions (skill_id, participants, start_time, end_time, notes, status)
			VALUES ($1, $2::uuid[], $3, $4, $5, 'pending')
			RETURNING *
		)
		SELECT `+sessionCols+`, s.id, s.title, s.description, s.tags, s.owner_id, s.level, s.availability, s.created_at, s.updated_at
		FROM se JOIN skills s ON s.id = se.skill_id
	`, skillID, []string{requesterID, sk.OwnerID}, start, end, notes)

	se, err := scanSessionWithSkill(row)
	if err != nil {
		return Session{}, err
	}
	sessions := []Session{se}
	if err := p.expandParticipants(ctx, sessions); err != nil {
		return Session{}, err
	}
	return sessions[0], nil
}

// ListSessionsFor returns the user's sessions, latest start time first
func (p *Postgres) ListSessionsFor(ctx context.Context, userID string) ([]Session, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT `+sessionCols+`, s.id, s.title, s.description, s.tags, s.owner_id, s.level, s.availability, s.created_at, s.updated_at
		FROM sessions se
		JOIN skills s ON s.id = se.skill_id
		WHERE $1 = ANY(se.participants)
		ORDER BY se.start_time DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		se, err := scanSessionWithSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, se)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := p.expandParticipants(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSession fetches a session by ID with skill and participants
func (p *Postgres) GetSession(ctx context.Context, id string) (Session, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT `+sessionCols+`, s.id, s.title, s.description, s.tags, s.owner_id, s.level, s.availability, s.created_at, s.updated_at
		FROM sessions se
		JOIN skills s ON s.id = se.skill_id
		WHERE se.id = $1
	`, id)
	se, err := scanSessionWithSkill(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	sessions := []Session{se}
	if err := p.expandParticipants(ctx, sessions); err != nil {
		return Session{}, err
	}
	return sessions[0], nil
}

// UpdateSessionStatus moves a session to a new status and returns the fresh row
func (p *Postgres) UpdateSessionStatus(ctx context.Context, id, status string) (Session, error) {
	row := p.pool.QueryRow(ctx, `
		WITH se AS (
			UPDATE sessions
			SET status = $2, updated_at = now()
			WHERE id = $1
			RETURNING *
		)
		SELECT `+sessionCols+`, s.id, s.title, s.description, s.tags, s.owner_id, s.level, s.availability, s.created_at, s.updated_at
		FROM se JOIN skills s ON s.id = se.skill_id
	`, id, status)
	se, err := scanSessionWithSkill(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	sessions := []Session{se}
	if err := p.expandParticipants(ctx, sessions); err != nil {
		return Session{}, err
	}
	return sessions[0], nil
}
