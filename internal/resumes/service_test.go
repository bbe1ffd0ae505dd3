package resumes_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"portfolio-backend/internal/resumes"
	localstore "portfolio-backend/internal/shared/storage/object/local"
)

func newService(t *testing.T) *resumes.Service {
	t.Helper()
	return &resumes.Service{
		Repo:    resumes.NewMemoryRepo(),
		Store:   localstore.New(t.TempDir()),
		BaseURL: "http://localhost:8080",
	}
}

func TestUpsertCreateThenOverwrite(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, isNew, err := svc.Upsert(ctx, resumes.UpsertInput{
		OwnerID: "u1",
		Name:    "Jane Doe",
		Email:   "j@x.com",
	}, nil)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if !isNew {
		t.Fatalf("expected creation on first upsert")
	}
	if created.IsUpdated {
		t.Fatalf("expected isUpdated=false on creation")
	}
	if created.Views != 0 || created.Downloads != 0 {
		t.Fatalf("expected zero counters, got views=%d downloads=%d", created.Views, created.Downloads)
	}

	if _, err := svc.IncrementViews(ctx, created.ID); err != nil {
		t.Fatalf("increment views: %v", err)
	}

	updated, isNew, err := svc.Upsert(ctx, resumes.UpsertInput{
		OwnerID: "u1",
		Name:    "Jane Doe",
		Email:   "j@x.com",
		Title:   "Senior Engineer",
	}, nil)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if isNew {
		t.Fatalf("expected overwrite on second upsert")
	}
	if updated.ID != created.ID {
		t.Fatalf("expected same record id, got %s and %s", created.ID, updated.ID)
	}
	if !updated.IsUpdated {
		t.Fatalf("expected isUpdated=true after overwrite")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("expected createdAt preserved, got %v then %v", created.CreatedAt, updated.CreatedAt)
	}
	if updated.Views != 1 {
		t.Fatalf("expected views preserved across overwrite, got %d", updated.Views)
	}
	if updated.Title != "Senior Engineer" {
		t.Fatalf("expected title updated, got %q", updated.Title)
	}

	// Still exactly one record for the owner.
	all, err := svc.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one record for owner, got %d", len(all))
	}
}

func TestUpsertValidation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	cases := []resumes.UpsertInput{
		{Name: "Jane", Email: "j@x.com"},
		{OwnerID: "u1", Email: "j@x.com"},
		{OwnerID: "u1", Name: "Jane"},
	}
	for _, in := range cases {
		if _, _, err := svc.Upsert(ctx, in, nil); !errors.Is(err, resumes.ErrInvalidInput) {
			t.Fatalf("input %+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestUpsertRejectsBadFiles(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	in := resumes.UpsertInput{OwnerID: "u1", Name: "Jane", Email: "j@x.com"}

	_, _, err := svc.Upsert(ctx, in, &resumes.FileUpload{
		FileName: "resume.exe",
		MimeType: "application/x-msdownload",
		Size:     10,
		Content:  strings.NewReader("MZ"),
	})
	if !errors.Is(err, resumes.ErrFileType) {
		t.Fatalf("expected ErrFileType, got %v", err)
	}

	_, _, err = svc.Upsert(ctx, in, &resumes.FileUpload{
		FileName: "resume.pdf",
		MimeType: "application/pdf",
		Size:     resumes.MaxFileSize + 1,
		Content:  strings.NewReader("%PDF"),
	})
	if !errors.Is(err, resumes.ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}

	// Nothing was persisted.
	if _, err := svc.GetByOwner(ctx, "u1"); !errors.Is(err, resumes.ErrNotFound) {
		t.Fatalf("expected no record after rejected uploads, got %v", err)
	}
}

func TestUpsertKeepsFileWhenNoNewUpload(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	in := resumes.UpsertInput{OwnerID: "u1", Name: "Jane", Email: "j@x.com"}

	withFile, _, err := svc.Upsert(ctx, in, &resumes.FileUpload{
		FileName: "resume.pdf",
		MimeType: "application/pdf",
		Size:     8,
		Content:  strings.NewReader("%PDF-1.4"),
	})
	if err != nil {
		t.Fatalf("upsert with file: %v", err)
	}
	if !withFile.HasFile() {
		t.Fatalf("expected file metadata after upload")
	}

	in.Title = "Engineer"
	after, _, err := svc.Upsert(ctx, in, nil)
	if err != nil {
		t.Fatalf("text-only upsert: %v", err)
	}
	if after.StorageKey != withFile.StorageKey {
		t.Fatalf("expected file metadata untouched, got key %q then %q", withFile.StorageKey, after.StorageKey)
	}
	if after.OriginalFileName != "resume.pdf" {
		t.Fatalf("expected original file name kept, got %q", after.OriginalFileName)
	}
}

func TestUpsertReplacesSupersededBlob(t *testing.T) {
	store := localstore.New(t.TempDir())
	svc := &resumes.Service{Repo: resumes.NewMemoryRepo(), Store: store, BaseURL: "http://localhost:8080"}
	ctx := context.Background()
	in := resumes.UpsertInput{OwnerID: "u1", Name: "Jane", Email: "j@x.com"}

	first, _, err := svc.Upsert(ctx, in, &resumes.FileUpload{
		FileName: "resume_v1.pdf",
		MimeType: "application/pdf",
		Size:     8,
		Content:  strings.NewReader("%PDF-1.4"),
	})
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}

	second, _, err := svc.Upsert(ctx, in, &resumes.FileUpload{
		FileName: "resume_v2.pdf",
		MimeType: "application/pdf",
		Size:     8,
		Content:  strings.NewReader("%PDF-1.5"),
	})
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if second.StorageKey == first.StorageKey {
		t.Fatalf("expected a new storage key for the replacement file")
	}

	if _, err := store.Open(ctx, first.StorageKey); err == nil {
		t.Fatalf("expected superseded blob to be deleted")
	}
	if rc, err := store.Open(ctx, second.StorageKey); err != nil {
		t.Fatalf("expected current blob retrievable: %v", err)
	} else {
		rc.Close()
	}
}

func TestConcurrentViewIncrements(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, _, err := svc.Upsert(ctx, resumes.UpsertInput{OwnerID: "u1", Name: "Jane", Email: "j@x.com"}, nil)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.IncrementViews(ctx, created.ID); err != nil {
				t.Errorf("increment views: %v", err)
			}
		}()
	}
	wg.Wait()

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Views != n {
		t.Fatalf("expected %d views after %d concurrent increments, got %d", n, n, got.Views)
	}
}

func TestIncrementMissingResume(t *testing.T) {
	svc := newService(t)
	if _, err := svc.IncrementViews(context.Background(), "missing"); !errors.Is(err, resumes.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearch(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	seed := []resumes.UpsertInput{
		{OwnerID: "u1", Name: "Jane", Email: "j@x.com", Skills: "Angular, TypeScript"},
		{OwnerID: "u2", Name: "Bob", Email: "b@x.com", Skills: "Go, Postgres"},
	}
	for _, in := range seed {
		if _, _, err := svc.Upsert(ctx, in, nil); err != nil {
			t.Fatalf("seed upsert: %v", err)
		}
	}

	hits, err := svc.Search(ctx, "angular")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 || hits[0].OwnerID != "u1" {
		t.Fatalf("expected only u1's resume, got %d hits", len(hits))
	}

	for _, q := range []string{"", "   ", "\t"} {
		hits, err := svc.Search(ctx, q)
		if err != nil {
			t.Fatalf("blank search %q: %v", q, err)
		}
		if len(hits) != 0 {
			t.Fatalf("expected empty result for blank query %q, got %d", q, len(hits))
		}
	}
}

func TestDownloadSynthesizesTextResume(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, _, err := svc.Upsert(ctx, resumes.UpsertInput{
		OwnerID: "u1",
		Name:    "Jane Doe",
		Email:   "j@x.com",
		Skills:  "Go",
	}, nil)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	result, err := svc.Download(ctx, created.ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer result.Content.Close()

	if result.MimeType != "text/plain" {
		t.Fatalf("expected text/plain, got %s", result.MimeType)
	}
	body, err := io.ReadAll(result.Content)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "Name: Jane Doe") {
		t.Fatalf("expected rendered resume to contain the name, got %q", body)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Downloads != 1 {
		t.Fatalf("expected one download recorded, got %d", got.Downloads)
	}
}

func TestDeleteRemovesBlob(t *testing.T) {
	store := localstore.New(t.TempDir())
	svc := &resumes.Service{Repo: resumes.NewMemoryRepo(), Store: store, BaseURL: "http://localhost:8080"}
	ctx := context.Background()

	created, _, err := svc.Upsert(ctx, resumes.UpsertInput{OwnerID: "u1", Name: "Jane", Email: "j@x.com"}, &resumes.FileUpload{
		FileName: "resume.pdf",
		MimeType: "application/pdf",
		Size:     8,
		Content:  strings.NewReader("%PDF-1.4"),
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, resumes.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := store.Open(ctx, created.StorageKey); err == nil {
		t.Fatalf("expected blob gone after delete")
	}

	if err := svc.Delete(ctx, created.ID); !errors.Is(err, resumes.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for second delete, got %v", err)
	}
}
