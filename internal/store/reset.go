package store

import "context"

// ResetAll wipes every table. Seed/dev use only.
func (p *Postgres) ResetAll(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `TRUNCATE sessions, skills, users CASCADE`)
	return err
}
