package resumes

import "context"

// Repo defines persistence operations for resumes. The store enforces the
// one-record-per-owner invariant: Upsert is a conditional write keyed on
// OwnerID, not a read-then-write at this layer.
type Repo interface {
	// Upsert creates the resume or overwrites the owner's existing one.
	// On overwrite the stored record keeps its ID, CreatedAt, Views, and
	// Downloads, and keeps its file metadata when the incoming record
	// carries none. prevStorageKey is the storage key the record held
	// before the call (empty when none), so callers can release
	// superseded blobs; created reports whether a new record was made.
	Upsert(ctx context.Context, r Resume) (stored Resume, prevStorageKey string, created bool, err error)

	GetByID(ctx context.Context, id string) (Resume, error)
	GetByOwner(ctx context.Context, ownerID string) (Resume, error)
	List(ctx context.Context, limit int) ([]Resume, error)

	// Search matches the query case-insensitively against the record's
	// concatenated text fields, in store order, capped at limit.
	Search(ctx context.Context, query string, limit int) ([]Resume, error)

	// IncrementViews and IncrementDownloads bump the counter atomically
	// in the store and return the new value, or ErrNotFound.
	IncrementViews(ctx context.Context, id string) (int64, error)
	IncrementDownloads(ctx context.Context, id string) (int64, error)

	// Delete removes the record and returns it, or ErrNotFound.
	Delete(ctx context.Context, id string) (Resume, error)
}
