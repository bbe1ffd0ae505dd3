package projects

import "context"

// Update carries a partial project update; nil fields are left unchanged.
type Update struct {
	Name             *string
	Technologies     *[]string
	ShortDescription *string
	LongDescription  *string
	GithubURL        *string
	LiveURL          *string
	ImageURL         *string
	Status           *string
}

// Repo defines persistence operations for projects.
type Repo interface {
	Create(ctx context.Context, p Project) error
	GetByID(ctx context.Context, id string) (Project, error)
	List(ctx context.Context, limit int) ([]Project, error)
	ListByOwner(ctx context.Context, ownerID string, limit int) ([]Project, error)
	Update(ctx context.Context, id string, upd Update) (Project, error)
	Delete(ctx context.Context, id string) error
}
