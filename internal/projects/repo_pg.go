package projects

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// PGRepo implements Repo using Postgres. The technologies list is stored
// joined on a separator so the row scans through database/sql directly.
type PGRepo struct {
	DB *sql.DB
}

const projectColumns = `id, owner_id, name, technologies, short_description, long_description, github_url, live_url, image_url, status, created_at, updated_at`

const techSeparator = "\x1f"

// Create inserts a new project.
func (r *PGRepo) Create(ctx context.Context, p Project) error {
	const query = `
INSERT INTO projects (
    id, owner_id, name, technologies, short_description, long_description,
    github_url, live_url, image_url, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		p.ID,
		p.OwnerID,
		p.Name,
		joinTech(p.Technologies),
		p.ShortDescription,
		p.LongDescription,
		p.GithubURL,
		p.LiveURL,
		p.ImageURL,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

// GetByID fetches a project by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Project, error) {
	const query = `
SELECT ` + projectColumns + `
FROM projects
WHERE id = $1`
	p, err := scanProject(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	return p, nil
}

// List returns projects in store order, capped at limit.
func (r *PGRepo) List(ctx context.Context, limit int) ([]Project, error) {
	const query = `
SELECT ` + projectColumns + `
FROM projects
ORDER BY created_at, id
LIMIT $1`
	return r.queryMany(ctx, query, boundLimit(limit))
}

// ListByOwner returns the owner's projects in store order.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]Project, error) {
	const query = `
SELECT ` + projectColumns + `
FROM projects
WHERE owner_id = $1
ORDER BY created_at, id
LIMIT $2`
	return r.queryMany(ctx, query, ownerID, boundLimit(limit))
}

// Update applies a partial update; absent fields keep their stored values.
func (r *PGRepo) Update(ctx context.Context, id string, upd Update) (Project, error) {
	const query = `
UPDATE projects SET
    name = COALESCE($2, name),
    technologies = COALESCE($3, technologies),
    short_description = COALESCE($4, short_description),
    long_description = COALESCE($5, long_description),
    github_url = COALESCE($6, github_url),
    live_url = COALESCE($7, live_url),
    image_url = COALESCE($8, image_url),
    status = COALESCE($9, status),
    updated_at = $10
WHERE id = $1
RETURNING ` + projectColumns

	var tech *string
	if upd.Technologies != nil {
		joined := joinTech(*upd.Technologies)
		tech = &joined
	}

	p, err := scanProject(r.DB.QueryRowContext(
		ctx,
		query,
		id,
		upd.Name,
		tech,
		upd.ShortDescription,
		upd.LongDescription,
		upd.GithubURL,
		upd.LiveURL,
		upd.ImageURL,
		upd.Status,
		time.Now().UTC(),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Project{}, ErrNotFound
		}
		return Project{}, err
	}
	return p, nil
}

// Delete removes a project.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) queryMany(ctx context.Context, query string, args ...any) ([]Project, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (Project, error) {
	var (
		p    Project
		tech string
	)
	if err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&tech,
		&p.ShortDescription,
		&p.LongDescription,
		&p.GithubURL,
		&p.LiveURL,
		&p.ImageURL,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return Project{}, err
	}
	p.Technologies = splitTech(tech)
	return p, nil
}

func joinTech(list []string) string {
	return strings.Join(list, techSeparator)
}

func splitTech(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, techSeparator)
}

func boundLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}

var _ Repo = (*PGRepo)(nil)
