package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// NormTags lowercases, trims, and drops empty tags
func NormTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

const skillCols = `s.id, s.title, s.description, s.tags, s.owner_id, s.level, s.availability, s.created_at, s.updated_at`

func scanSkillWithOwner(row pgx.Row) (Skill, error) {
	var s Skill
	var o User
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Tags, &s.OwnerID, &s.Level, &s.Availability,
		&s.CreatedAt, &s.UpdatedAt, &o.ID, &o.Name, &o.Email, &o.Skills, &o.Bio)
	if err != nil {
		return Skill{}, err
	}
	s.Owner = &o
	return s, nil
}

// SkillInput is the payload for creating a skill
type SkillInput struct {
	Title        string
	Description  string
	Tags         []string
	Level        string
	Availability string
	OwnerID      string
}

// CreateSkill inserts a new skill listing and returns it with the owner row
func (p *Postgres) CreateSkill(ctx context.Context, in SkillInput) (Skill, error) {
	row := p.pool.QueryRow(ctx, `
		WITH s AS (
			INSERT INTO skills (title, description, tags, owner_id, level, availability)
			VALUES ($1, $2, $3::text[], $4, $5, $6)
			RETURNING *
		)
		SELECT `+skillCols+`, u.id, u.name, u.email, u.skills, u.bio
		FROM s JOIN users u ON u.id = s.owner_id
	`, in.Title, in.Description, NormTags(in.Tags), in.OwnerID, in.Level, in.Availability)
	return scanSkillWithOwner(row)
}

// SkillFilter narrows a skill listing; zero values mean no filter
type SkillFilter struct {
	Tag    string
	Level  string
	Search string // case-insensitive match on title or description
}

// ListSkills returns skills newest first, owner embedded
func (p *Postgres) ListSkills(ctx context.Context, f SkillFilter) ([]Skill, error) {
	q := `SELECT ` + skillCols + `, u.id, u.name, u.email, u.skills, u.bio
		FROM skills s JOIN users u ON u.id = s.owner_id`
	var where []string
	var args []any
	if f.Tag != "" {
		args = append(args, strings.ToLower(strings.TrimSpace(f.Tag)))
		where = append(where, fmt.Sprintf("$%d = ANY(s.tags)", len(args)))
	}
	if f.Level != "" {
		args = append(args, f.Level)
		where = append(where, fmt.Sprintf("s.level = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(s.title ILIKE $%d OR s.description ILIKE $%d)", len(args), len(args)))
	}
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY s.created_at DESC"

	rows, err := p.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Skill
	for rows.Next() {
		s, err := scanSkillWithOwner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetSkill fetches a skill by ID with its owner
func (p *Postgres) GetSkill(ctx context.Context, id string) (Skill, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT `+skillCols+`, u.id, u.name, u.email, u.skills, u.bio
		FROM skills s JOIN users u ON u.id = s.owner_id
		WHERE s.id = $1
	`, id)
	s, err := scanSkillWithOwner(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Skill{}, ErrNotFound
		}
		return Skill{}, err
	}
	return s, nil
}

// SkillUpdate carries partial skill changes; nil fields are left alone
type SkillUpdate struct {
	Title        *string
	Description  *string
	Tags         []string
	Level        *string
	Availability *string
}

// UpdateSkill applies a partial update and returns the fresh row with owner
func (p *Postgres) UpdateSkill(ctx context.Context, id string, up SkillUpdate) (Skill, error) {
	var tags []string
	if up.Tags != nil {
		tags = NormTags(up.Tags)
	}
	row := p.pool.QueryRow(ctx, `
		WITH s AS (
			UPDATE skills
			SET title        = COALESCE($2, title),
			    description  = COALESCE($3, description),
			    tags         = COALESCE($4::text[], tags),
			    level        = COALESCE($5, level),
			    availability = COALESCE($6, availability),
			    updated_at   = now()
			WHERE id = $1
			RETURNING *
		)
		SELECT `+skillCols+`, u.id, u.name, u.email, u.skills, u.bio
		FROM s JOIN users u ON u.id = s.owner_id
	`, id, up.Title, up.Description, tags, up.Level, up.Availability)
	s, err := scanSkillWithOwner(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Skill{}, ErrNotFound
		}
		return Skill{}, err
	}
	return s, nil
}

// DeleteSkill removes a skill by ID
func (p *Postgres) DeleteSkill(ctx context.Context, id string) error {
	ct, err := p.pool.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MatchSkills returns skills sharing at least one tag with the given set,
// best match first (shared-tag count, then recency)
func (p *Postgres) MatchSkills(ctx context.Context, tags []string) ([]Skill, error) {
	tags = NormTags(tags)
	rows, err := p.pool.Query(ctx, `
		SELECT `+skillCols+`,
		       cardinality(ARRAY(SELECT unnest(s.tags) INTERSECT SELECT unnest($1::text[]))) AS match_count,
		       u.id, u.name, u.email, u.skills, u.bio
		FROM skills s
		JOIN users u ON u.id = s.owner_id
		WHERE s.tags && $1::text[]
		ORDER BY match_count DESC, s.created_at DESC
	`, tags)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Skill
	for rows.Next() {
		var s Skill
		var o User
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Tags, &s.OwnerID, &s.Level, &s.Availability,
			&s.CreatedAt, &s.UpdatedAt, &s.MatchCount, &o.ID, &o.Name, &o.Email, &o.Skills, &o.Bio); err != nil {
			return nil, err
		}
		s.Owner = &o
		out = append(out, s)
	}
	return out, rows.Err()
}
