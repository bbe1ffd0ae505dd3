package resumes

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"portfolio-backend/internal/shared/storage/object"
	"portfolio-backend/internal/shared/telemetry"
	"portfolio-backend/internal/shared/util"
)

// MaxFileSize is the upload ceiling for resume files.
const MaxFileSize = 5 << 20 // 5MB

const searchLimit = 50

var allowedMimeTypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"text/plain": {},
}

var mimeByExtension = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
}

// Service contains business logic for resumes.
type Service struct {
	Repo    Repo
	Store   object.ObjectStore
	BaseURL string
}

// UpsertInput carries the resume text fields submitted by a client.
type UpsertInput struct {
	OwnerID     string
	Name        string
	Email       string
	Title       string
	Description string
	Skills      string
	Experience  string
}

// FileUpload describes an optional binary resume file accompanying an upsert.
type FileUpload struct {
	FileName string
	MimeType string
	Size     int64
	Content  io.Reader
}

// DownloadResult is what a download request streams back to the client.
type DownloadResult struct {
	FileName  string
	MimeType  string
	SizeBytes int64
	Content   io.ReadCloser
}

// Upsert creates the owner's resume or overwrites the existing one,
// preserving its creation time and counters. The blob is written before
// the document references it; the superseded blob is deleted only after
// the new record is persisted. Returns the stored record and whether it
// was newly created.
func (s *Service) Upsert(ctx context.Context, in UpsertInput, file *FileUpload) (Resume, bool, error) {
	in.OwnerID = strings.TrimSpace(in.OwnerID)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.OwnerID == "" || in.Name == "" || in.Email == "" {
		return Resume{}, false, fmt.Errorf("%w: name, email, and ownerId are required", ErrInvalidInput)
	}
	if file != nil {
		if err := validateFile(file); err != nil {
			return Resume{}, false, err
		}
	}

	now := time.Now().UTC()
	res := Resume{
		ID:          uuid.NewString(),
		OwnerID:     in.OwnerID,
		Name:        in.Name,
		Email:       in.Email,
		Title:       in.Title,
		Description: in.Description,
		Skills:      in.Skills,
		Experience:  in.Experience,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if file != nil {
		storageKey, size, _, err := s.Store.Save(ctx, in.OwnerID, file.FileName, file.Content)
		if err != nil {
			return Resume{}, false, fmt.Errorf("store resume file: %w", err)
		}
		res.StorageKey = storageKey
		res.OriginalFileName = file.FileName
		res.MimeType = file.MimeType
		res.SizeBytes = size
	}

	stored, prevKey, created, err := s.Repo.Upsert(ctx, res)
	if err != nil {
		// The document never referenced the new blob; release it.
		if res.StorageKey != "" {
			if delErr := s.Store.Delete(ctx, res.StorageKey); delErr != nil {
				telemetry.Warn("resume.blob_cleanup_failed", map[string]any{
					"storage_key": res.StorageKey,
					"error":       delErr.Error(),
				})
			}
		}
		return Resume{}, false, err
	}

	if file != nil && prevKey != "" && prevKey != stored.StorageKey {
		if err := s.Store.Delete(ctx, prevKey); err != nil {
			telemetry.Warn("resume.superseded_blob_delete_failed", map[string]any{
				"storage_key": prevKey,
				"error":       err.Error(),
			})
		}
	}

	return s.withURL(stored), created, nil
}

// GetByID returns a resume by ID.
func (s *Service) GetByID(ctx context.Context, id string) (Resume, error) {
	if strings.TrimSpace(id) == "" {
		return Resume{}, fmt.Errorf("%w: resume ID is required", ErrInvalidInput)
	}
	res, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	return s.withURL(res), nil
}

// GetByOwner returns the owner's resume.
func (s *Service) GetByOwner(ctx context.Context, ownerID string) (Resume, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Resume{}, fmt.Errorf("%w: owner ID is required", ErrInvalidInput)
	}
	res, err := s.Repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return Resume{}, err
	}
	return s.withURL(res), nil
}

// List returns stored resumes in store order.
func (s *Service) List(ctx context.Context, limit int) ([]Resume, error) {
	out, err := s.Repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.withURLs(out), nil
}

// Search runs a case-insensitive substring search over the text fields.
// Blank queries return an empty result rather than erroring.
func (s *Service) Search(ctx context.Context, query string) ([]Resume, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Resume{}, nil
	}
	out, err := s.Repo.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}
	return s.withURLs(out), nil
}

// IncrementViews bumps the view counter and returns the new count.
func (s *Service) IncrementViews(ctx context.Context, id string) (int64, error) {
	return s.Repo.IncrementViews(ctx, id)
}

// Download increments the download counter and streams the stored file,
// or synthesizes a plain-text rendering when no file was uploaded.
func (s *Service) Download(ctx context.Context, id string) (DownloadResult, error) {
	res, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return DownloadResult{}, err
	}

	if _, err := s.Repo.IncrementDownloads(ctx, id); err != nil {
		return DownloadResult{}, err
	}

	if res.HasFile() {
		rc, err := s.Store.Open(ctx, res.StorageKey)
		if err != nil {
			return DownloadResult{}, fmt.Errorf("open resume file: %w", err)
		}
		return DownloadResult{
			FileName:  res.OriginalFileName,
			MimeType:  res.MimeType,
			SizeBytes: res.SizeBytes,
			Content:   rc,
		}, nil
	}

	body := renderText(res)
	name, err := util.SanitizeFileName(strings.ToLower(strings.ReplaceAll(res.Name, " ", "_")) + "_resume.txt")
	if err != nil {
		name = "resume.txt"
	}
	return DownloadResult{
		FileName:  name,
		MimeType:  "text/plain",
		SizeBytes: int64(len(body)),
		Content:   io.NopCloser(bytes.NewReader(body)),
	}, nil
}

// Delete removes the resume and any associated blob.
func (s *Service) Delete(ctx context.Context, id string) error {
	res, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if res.HasFile() {
		if err := s.Store.Delete(ctx, res.StorageKey); err != nil {
			telemetry.Warn("resume.blob_delete_failed", map[string]any{
				"resume_id":   res.ID,
				"storage_key": res.StorageKey,
				"error":       err.Error(),
			})
		}
	}
	return nil
}

func (s *Service) withURL(res Resume) Resume {
	res.DownloadURL = fmt.Sprintf("%s/api/v1/resumes/%s/download", s.BaseURL, res.ID)
	return res
}

func (s *Service) withURLs(list []Resume) []Resume {
	for i := range list {
		list[i] = s.withURL(list[i])
	}
	return list
}

func validateFile(file *FileUpload) error {
	if file.Size > MaxFileSize {
		return ErrFileTooLarge
	}
	mimeType := strings.ToLower(strings.TrimSpace(file.MimeType))
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mimeByExtension[strings.ToLower(filepath.Ext(file.FileName))]
	}
	if _, ok := allowedMimeTypes[mimeType]; !ok {
		return ErrFileType
	}
	file.MimeType = mimeType
	return nil
}

func renderText(res Resume) []byte {
	var b strings.Builder
	b.WriteString("RESUME\n\n")
	fmt.Fprintf(&b, "Name: %s\n", res.Name)
	fmt.Fprintf(&b, "Email: %s\n", res.Email)
	fmt.Fprintf(&b, "Title: %s\n\n", res.Title)
	fmt.Fprintf(&b, "About:\n%s\n\n", res.Description)
	fmt.Fprintf(&b, "Skills:\n%s\n\n", res.Skills)
	fmt.Fprintf(&b, "Experience:\n%s\n\n", res.Experience)
	fmt.Fprintf(&b, "Uploaded: %s\n", res.CreatedAt.Format(time.RFC3339))
	return []byte(b.String())
}
