package store

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// normEmail trims and lowercases the email (needed if DB col isnt citext)
func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// CreateUser inserts a new user with a hashed password
func (p *Postgres) CreateUser(ctx context.Context, name, email, password string) (User, error) {
	email = normEmail(email)
	if name == "" || email == "" || password == "" {
		return User{}, errors.New("missing name, email or password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	row := p.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, skills, bio, lat, lng, created_at, updated_at
	`, name, email, string(hash))

	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Skills, &u.Bio, &u.Lat, &u.Lng, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return User{}, err
	}
	return u, nil
}

// GetUserByEmail returns the user + hashed password for login verification
func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (User, string, error) {
	email = normEmail(email)

	row := p.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, skills, bio, lat, lng, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)

	var u User
	var hash string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &hash, &u.Skills, &u.Bio, &u.Lat, &u.Lng, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, "", ErrNotFound
		}
		return User{}, "", err
	}
	return u, hash, nil
}

// VerifyUser checks email + password match
func (p *Postgres) VerifyUser(ctx context.Context, email, password string) (User, error) {
	u, hash, err := p.GetUserByEmail(ctx, email)
	if err != nil {
		return User{}, errors.New("invalid credentials")
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, errors.New("invalid credentials")
	}

	return u, nil
}

// GetUser fetches a user by ID, without the password hash
func (p *Postgres) GetUser(ctx context.Context, id string) (User, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT id, name, email, skills, bio, lat, lng, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Skills, &u.Bio, &u.Lat, &u.Lng, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

// ProfileUpdate carries partial profile changes; nil fields are left alone
type ProfileUpdate struct {
	Name   *string
	Skills []string
	Bio    *string
	Lat    *float64
	Lng    *float64
}

// UpdateProfile applies a partial update and returns the fresh row
func (p *Postgres) UpdateProfile(ctx context.Context, id string, up ProfileUpdate) (User, error) {
	row := p.pool.QueryRow(ctx, `
		UPDATE users
		SET name   = COALESCE($2, name),
		    skills = COALESCE($3::text[], skills),
		    bio    = COALESCE($4, bio),
		    lat    = COALESCE($5, lat),
		    lng    = COALESCE($6, lng),
		    updated_at = now()
		WHERE id = $1
		RETURNING id, name, email, skills, bio, lat, lng, created_at, updated_at
	`, id, up.Name, up.Skills, up.Bio, up.Lat, up.Lng)

	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Skills, &u.Bio, &u.Lat, &u.Lng, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}
