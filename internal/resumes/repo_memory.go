package resumes

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo. Tests and
// database-less dev runs use it in place of the Postgres repo.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[string]Resume
	byOwner map[string]string // ownerID -> resume ID
	order   []string          // insertion order of IDs
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[string]Resume),
		byOwner: make(map[string]string),
	}
}

// Upsert creates or overwrites the owner's resume under the lock, so the
// one-per-owner invariant holds for concurrent callers.
func (m *MemoryRepo) Upsert(ctx context.Context, r Resume) (Resume, string, bool, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, "", false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	existingID, ok := m.byOwner[r.OwnerID]
	if !ok {
		r.IsUpdated = false
		r.Views = 0
		r.Downloads = 0
		m.byID[r.ID] = r
		m.byOwner[r.OwnerID] = r.ID
		m.order = append(m.order, r.ID)
		return r, "", true, nil
	}

	existing := m.byID[existingID]
	prevKey := existing.StorageKey

	r.ID = existing.ID
	r.CreatedAt = existing.CreatedAt
	r.Views = existing.Views
	r.Downloads = existing.Downloads
	r.IsUpdated = true
	if r.StorageKey == "" {
		r.StorageKey = existing.StorageKey
		r.OriginalFileName = existing.OriginalFileName
		r.MimeType = existing.MimeType
		r.SizeBytes = existing.SizeBytes
	}
	m.byID[r.ID] = r
	return r, prevKey, false, nil
}

// GetByID returns a resume by ID.
func (m *MemoryRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.byID[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return r, nil
}

// GetByOwner returns the owner's resume.
func (m *MemoryRepo) GetByOwner(ctx context.Context, ownerID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byOwner[ownerID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return m.byID[id], nil
}

// List returns resumes in insertion order, capped at limit.
func (m *MemoryRepo) List(ctx context.Context, limit int) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Resume, 0, len(m.order))
	for _, id := range m.order {
		if r, ok := m.byID[id]; ok {
			out = append(out, r)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

// Search returns resumes whose concatenated text fields contain the query,
// case-insensitively, in insertion order.
func (m *MemoryRepo) Search(ctx context.Context, query string, limit int) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []Resume{}
	for _, id := range m.order {
		r, ok := m.byID[id]
		if !ok {
			continue
		}
		haystack := strings.ToLower(r.Name + " " + r.Title + " " + r.Description + " " + r.Skills + " " + r.Experience)
		if strings.Contains(haystack, needle) {
			out = append(out, r)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

// IncrementViews bumps the view counter under the lock.
func (m *MemoryRepo) IncrementViews(ctx context.Context, id string) (int64, error) {
	return m.increment(ctx, id, func(r *Resume) *int64 { return &r.Views })
}

// IncrementDownloads bumps the download counter under the lock.
func (m *MemoryRepo) IncrementDownloads(ctx context.Context, id string) (int64, error) {
	return m.increment(ctx, id, func(r *Resume) *int64 { return &r.Downloads })
}

func (m *MemoryRepo) increment(ctx context.Context, id string, field func(*Resume) *int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return 0, ErrNotFound
	}
	counter := field(&r)
	*counter++
	m.byID[id] = r
	return *counter, nil
}

// Delete removes the resume and returns it.
func (m *MemoryRepo) Delete(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	delete(m.byID, id)
	delete(m.byOwner, r.OwnerID)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return r, nil
}

var _ Repo = (*MemoryRepo)(nil)
