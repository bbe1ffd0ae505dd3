package resumes

import "time"

// FileMetadata describes an uploaded resume file.
type FileMetadata struct {
	StorageKey       string `json:"storageKey"`
	OriginalFileName string `json:"originalFileName"`
	MimeType         string `json:"mimeType"`
	SizeBytes        int64  `json:"sizeBytes"`
}

// ResumeResponse is the outward-facing representation of a resume.
type ResumeResponse struct {
	ID           string        `json:"id"`
	OwnerID      string        `json:"ownerId"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Skills       string        `json:"skills"`
	Experience   string        `json:"experience"`
	FileMetadata *FileMetadata `json:"fileMetadata,omitempty"`
	DownloadURL  string        `json:"downloadUrl"`
	Views        int64         `json:"views"`
	Downloads    int64         `json:"downloads"`
	IsUpdated    bool          `json:"isUpdated"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func toResponse(r Resume) ResumeResponse {
	resp := ResumeResponse{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Email:       r.Email,
		Title:       r.Title,
		Description: r.Description,
		Skills:      r.Skills,
		Experience:  r.Experience,
		DownloadURL: r.DownloadURL,
		Views:       r.Views,
		Downloads:   r.Downloads,
		IsUpdated:   r.IsUpdated,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.HasFile() {
		resp.FileMetadata = &FileMetadata{
			StorageKey:       r.StorageKey,
			OriginalFileName: r.OriginalFileName,
			MimeType:         r.MimeType,
			SizeBytes:        r.SizeBytes,
		}
	}
	return resp
}

func toResponses(list []Resume) []ResumeResponse {
	out := make([]ResumeResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toResponse(r))
	}
	return out
}
