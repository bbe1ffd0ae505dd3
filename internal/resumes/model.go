package resumes

import "time"

// Resume is the single shareable resume record an owner maintains.
// At most one exists per OwnerID; upserts overwrite in place.
type Resume struct {
	ID          string
	OwnerID     string
	Name        string
	Email       string
	Title       string
	Description string
	Skills      string
	Experience  string

	// File metadata; zero values when the resume is text-only.
	StorageKey       string
	OriginalFileName string
	MimeType         string
	SizeBytes        int64

	// DownloadURL is derived from the record ID, never persisted.
	DownloadURL string

	Views     int64
	Downloads int64
	IsUpdated bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasFile reports whether a binary file is attached to the resume.
func (r Resume) HasFile() bool {
	return r.StorageKey != ""
}
