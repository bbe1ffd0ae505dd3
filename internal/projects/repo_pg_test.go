package projects

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var projectTestColumns = []string{
	"id", "owner_id", "name", "technologies", "short_description", "long_description",
	"github_url", "live_url", "image_url", "status", "created_at", "updated_at",
}

func newPGRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateJoinsTechnologies(t *testing.T) {
	repo, mock := newPGRepo(t)
	now := time.Now().UTC()
	p := Project{
		ID:               "project-1",
		OwnerID:          "user-1",
		Name:             "Portfolio",
		Technologies:     []string{"Go", "Postgres"},
		ShortDescription: "short",
		Status:           StatusInProgress,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	mock.ExpectExec("INSERT INTO projects").
		WithArgs(
			p.ID, p.OwnerID, p.Name, "Go\x1fPostgres", p.ShortDescription, "",
			"", "", "", p.Status, now, now,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdatePartial(t *testing.T) {
	repo, mock := newPGRepo(t)
	now := time.Now().UTC()
	status := StatusCompleted

	rows := sqlmock.NewRows(projectTestColumns).AddRow(
		"project-1", "user-1", "Portfolio", "Go\x1fPostgres", "short", "long",
		"", "", "", status, now.Add(-time.Hour), now,
	)

	mock.ExpectQuery("UPDATE projects SET").
		WithArgs(
			"project-1",
			nil, nil, nil, nil, nil, nil, nil,
			status,
			sqlmock.AnyArg(),
		).
		WillReturnRows(rows)

	p, err := repo.Update(context.Background(), "project-1", Update{Status: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p.Status != StatusCompleted {
		t.Fatalf("expected status completed, got %q", p.Status)
	}
	if !reflect.DeepEqual(p.Technologies, []string{"Go", "Postgres"}) {
		t.Fatalf("expected technologies split from the stored row, got %v", p.Technologies)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteMissingProject(t *testing.T) {
	repo, mock := newPGRepo(t)

	mock.ExpectExec("DELETE FROM projects").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
