package projects

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu    sync.RWMutex
	byID  map[string]Project
	order []string // insertion order of IDs
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Project)}
}

// Create stores a new project.
func (m *MemoryRepo) Create(ctx context.Context, p Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[p.ID] = p
	m.order = append(m.order, p.ID)
	return nil
}

// GetByID returns a project by ID.
func (m *MemoryRepo) GetByID(ctx context.Context, id string) (Project, error) {
	if err := ctx.Err(); err != nil {
		return Project{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.byID[id]
	if !ok {
		return Project{}, ErrNotFound
	}
	return p, nil
}

// List returns projects in insertion order, capped at limit.
func (m *MemoryRepo) List(ctx context.Context, limit int) ([]Project, error) {
	return m.collect(ctx, limit, func(Project) bool { return true })
}

// ListByOwner returns the owner's projects in insertion order.
func (m *MemoryRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]Project, error) {
	return m.collect(ctx, limit, func(p Project) bool { return p.OwnerID == ownerID })
}

func (m *MemoryRepo) collect(ctx context.Context, limit int, keep func(Project) bool) ([]Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []Project{}
	for _, id := range m.order {
		p, ok := m.byID[id]
		if !ok || !keep(p) {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Update applies a partial update and returns the stored project.
func (m *MemoryRepo) Update(ctx context.Context, id string, upd Update) (Project, error) {
	if err := ctx.Err(); err != nil {
		return Project{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return Project{}, ErrNotFound
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Technologies != nil {
		p.Technologies = *upd.Technologies
	}
	if upd.ShortDescription != nil {
		p.ShortDescription = *upd.ShortDescription
	}
	if upd.LongDescription != nil {
		p.LongDescription = *upd.LongDescription
	}
	if upd.GithubURL != nil {
		p.GithubURL = *upd.GithubURL
	}
	if upd.LiveURL != nil {
		p.LiveURL = *upd.LiveURL
	}
	if upd.ImageURL != nil {
		p.ImageURL = *upd.ImageURL
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	p.UpdatedAt = time.Now().UTC()

	m.byID[id] = p
	return p, nil
}

// Delete removes a project.
func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
