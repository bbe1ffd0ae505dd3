package resumes

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// PGRepo implements Repo using Postgres. The unique index on owner_id
// backs the conditional write in Upsert; counters use single-statement
// atomic increments.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, owner_id, name, email, title, description, skills, experience, storage_key, original_file_name, mime_type, size_bytes, views, downloads, is_updated, created_at, updated_at`

// Upsert writes the resume with INSERT ... ON CONFLICT keyed on owner_id,
// so concurrent upserts for the same owner cannot create two records. The
// prev CTE captures the storage key held before this statement ran.
func (r *PGRepo) Upsert(ctx context.Context, res Resume) (Resume, string, bool, error) {
	const query = `
WITH prev AS (
    SELECT storage_key FROM resumes WHERE owner_id = $2
)
INSERT INTO resumes (
    id, owner_id, name, email, title, description, skills, experience,
    storage_key, original_file_name, mime_type, size_bytes,
    views, downloads, is_updated, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 0, 0, FALSE, $13, $13)
ON CONFLICT (owner_id) DO UPDATE SET
    name = EXCLUDED.name,
    email = EXCLUDED.email,
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    skills = EXCLUDED.skills,
    experience = EXCLUDED.experience,
    storage_key = COALESCE(EXCLUDED.storage_key, resumes.storage_key),
    original_file_name = COALESCE(EXCLUDED.original_file_name, resumes.original_file_name),
    mime_type = COALESCE(EXCLUDED.mime_type, resumes.mime_type),
    size_bytes = COALESCE(EXCLUDED.size_bytes, resumes.size_bytes),
    is_updated = TRUE,
    updated_at = EXCLUDED.updated_at
RETURNING ` + resumeColumns + `, (xmax = 0) AS inserted, (SELECT storage_key FROM prev) AS prev_storage_key`

	row := r.DB.QueryRowContext(
		ctx,
		query,
		res.ID,
		res.OwnerID,
		res.Name,
		res.Email,
		res.Title,
		res.Description,
		res.Skills,
		res.Experience,
		nullString(res.StorageKey),
		nullString(res.OriginalFileName),
		nullString(res.MimeType),
		nullInt64(res.SizeBytes),
		res.UpdatedAt,
	)

	var (
		stored   Resume
		created  bool
		prevKey  sql.NullString
		fileCols fileColumns
	)
	if err := row.Scan(
		&stored.ID,
		&stored.OwnerID,
		&stored.Name,
		&stored.Email,
		&stored.Title,
		&stored.Description,
		&stored.Skills,
		&stored.Experience,
		&fileCols.storageKey,
		&fileCols.originalFileName,
		&fileCols.mimeType,
		&fileCols.sizeBytes,
		&stored.Views,
		&stored.Downloads,
		&stored.IsUpdated,
		&stored.CreatedAt,
		&stored.UpdatedAt,
		&created,
		&prevKey,
	); err != nil {
		return Resume{}, "", false, err
	}
	fileCols.apply(&stored)
	return stored, prevKey.String, created, nil
}

// GetByID fetches a resume by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE id = $1`
	return r.queryOne(ctx, query, id)
}

// GetByOwner fetches the owner's resume. The unique index guarantees at
// most one row; ORDER BY id keeps the pick deterministic should the
// constraint ever be violated out-of-band.
func (r *PGRepo) GetByOwner(ctx context.Context, ownerID string) (Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE owner_id = $1
ORDER BY id
LIMIT 1`
	return r.queryOne(ctx, query, ownerID)
}

// List returns resumes in store order, capped at limit.
func (r *PGRepo) List(ctx context.Context, limit int) ([]Resume, error) {
	const query = `
SELECT ` + resumeColumns + `
FROM resumes
ORDER BY created_at, id
LIMIT $1`
	return r.queryMany(ctx, query, boundLimit(limit))
}

// Search matches the concatenated text fields case-insensitively.
func (r *PGRepo) Search(ctx context.Context, query string, limit int) ([]Resume, error) {
	const stmt = `
SELECT ` + resumeColumns + `
FROM resumes
WHERE (name || ' ' || title || ' ' || description || ' ' || skills || ' ' || experience) ILIKE '%' || $1 || '%' ESCAPE '\'
ORDER BY created_at, id
LIMIT $2`
	return r.queryMany(ctx, stmt, escapeLike(query), boundLimit(limit))
}

// IncrementViews bumps the view counter atomically in the store.
func (r *PGRepo) IncrementViews(ctx context.Context, id string) (int64, error) {
	return r.increment(ctx, `UPDATE resumes SET views = views + 1 WHERE id = $1 RETURNING views`, id)
}

// IncrementDownloads bumps the download counter atomically in the store.
func (r *PGRepo) IncrementDownloads(ctx context.Context, id string) (int64, error) {
	return r.increment(ctx, `UPDATE resumes SET downloads = downloads + 1 WHERE id = $1 RETURNING downloads`, id)
}

func (r *PGRepo) increment(ctx context.Context, query, id string) (int64, error) {
	var count int64
	if err := r.DB.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return count, nil
}

// Delete removes the resume and returns the deleted row.
func (r *PGRepo) Delete(ctx context.Context, id string) (Resume, error) {
	const query = `
DELETE FROM resumes
WHERE id = $1
RETURNING ` + resumeColumns
	return r.queryOne(ctx, query, id)
}

func (r *PGRepo) queryOne(ctx context.Context, query string, args ...any) (Resume, error) {
	res, err := scanResume(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return res, nil
}

func (r *PGRepo) queryMany(ctx context.Context, query string, args ...any) ([]Resume, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var (
		res      Resume
		fileCols fileColumns
	)
	if err := row.Scan(
		&res.ID,
		&res.OwnerID,
		&res.Name,
		&res.Email,
		&res.Title,
		&res.Description,
		&res.Skills,
		&res.Experience,
		&fileCols.storageKey,
		&fileCols.originalFileName,
		&fileCols.mimeType,
		&fileCols.sizeBytes,
		&res.Views,
		&res.Downloads,
		&res.IsUpdated,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	fileCols.apply(&res)
	return res, nil
}

type fileColumns struct {
	storageKey       sql.NullString
	originalFileName sql.NullString
	mimeType         sql.NullString
	sizeBytes        sql.NullInt64
}

func (f fileColumns) apply(res *Resume) {
	res.StorageKey = f.storageKey.String
	res.OriginalFileName = f.originalFileName.String
	res.MimeType = f.mimeType.String
	res.SizeBytes = f.sizeBytes.Int64
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(n int64) sql.NullInt64 {
	return sql.NullInt64{Int64: n, Valid: n != 0}
}

func boundLimit(limit int) int {
	if limit <= 0 || limit > 50 {
		return 50
	}
	return limit
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

var _ Repo = (*PGRepo)(nil)
