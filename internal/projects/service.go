package projects

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service contains business logic for projects.
type Service struct {
	Repo Repo
}

// CreateInput carries the fields accepted when creating a project.
type CreateInput struct {
	OwnerID          string
	Name             string
	Technologies     []string
	ShortDescription string
	LongDescription  string
	GithubURL        string
	LiveURL          string
	ImageURL         string
	Status           string
}

// Create validates and stores a new project.
func (s *Service) Create(ctx context.Context, in CreateInput) (Project, error) {
	in.OwnerID = strings.TrimSpace(in.OwnerID)
	in.Name = strings.TrimSpace(in.Name)
	in.ShortDescription = strings.TrimSpace(in.ShortDescription)
	if in.OwnerID == "" || in.Name == "" || len(in.Technologies) == 0 || in.ShortDescription == "" {
		return Project{}, fmt.Errorf("%w: ownerId, name, technologies, and short_description are required", ErrInvalidInput)
	}

	status := in.Status
	if status == "" {
		status = StatusInProgress
	}
	if !ValidStatus(status) {
		return Project{}, fmt.Errorf("%w: status must be %q or %q", ErrInvalidInput, StatusCompleted, StatusInProgress)
	}

	now := time.Now().UTC()
	p := Project{
		ID:               uuid.NewString(),
		OwnerID:          in.OwnerID,
		Name:             in.Name,
		Technologies:     in.Technologies,
		ShortDescription: in.ShortDescription,
		LongDescription:  in.LongDescription,
		GithubURL:        in.GithubURL,
		LiveURL:          in.LiveURL,
		ImageURL:         in.ImageURL,
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

// GetByID returns a project by ID.
func (s *Service) GetByID(ctx context.Context, id string) (Project, error) {
	if strings.TrimSpace(id) == "" {
		return Project{}, fmt.Errorf("%w: project ID is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns stored projects in store order.
func (s *Service) List(ctx context.Context, limit int) ([]Project, error) {
	return s.Repo.List(ctx, limit)
}

// ListByOwner returns the owner's projects.
func (s *Service) ListByOwner(ctx context.Context, ownerID string, limit int) ([]Project, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: owner ID is required", ErrInvalidInput)
	}
	return s.Repo.ListByOwner(ctx, ownerID, limit)
}

// Update applies a partial update to a project.
func (s *Service) Update(ctx context.Context, id string, upd Update) (Project, error) {
	if strings.TrimSpace(id) == "" {
		return Project{}, fmt.Errorf("%w: project ID is required", ErrInvalidInput)
	}
	if upd.Status != nil && !ValidStatus(*upd.Status) {
		return Project{}, fmt.Errorf("%w: status must be %q or %q", ErrInvalidInput, StatusCompleted, StatusInProgress)
	}
	return s.Repo.Update(ctx, id, upd)
}

// Delete removes a project.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: project ID is required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, id)
}
