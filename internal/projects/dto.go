package projects

import (
	"encoding/json"
	"strings"
	"time"
)

// StringList unmarshals from either a JSON array of strings or a single
// comma-separated string, which is how older clients submit technologies.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		*s = splitAndTrim(raw)
		return nil
	}
	var arr []string
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	*s = arr
	return nil
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := []string{}
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ProjectResponse is the outward-facing representation of a project.
type ProjectResponse struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"ownerId"`
	Name             string    `json:"name"`
	Technologies     []string  `json:"technologies"`
	ShortDescription string    `json:"short_description"`
	LongDescription  string    `json:"long_description"`
	GithubURL        string    `json:"github_url"`
	LiveURL          string    `json:"live_url"`
	ImageURL         string    `json:"image_url"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toResponse(p Project) ProjectResponse {
	tech := p.Technologies
	if tech == nil {
		tech = []string{}
	}
	return ProjectResponse{
		ID:               p.ID,
		OwnerID:          p.OwnerID,
		Name:             p.Name,
		Technologies:     tech,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		GithubURL:        p.GithubURL,
		LiveURL:          p.LiveURL,
		ImageURL:         p.ImageURL,
		Status:           p.Status,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toResponses(list []Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toResponse(p))
	}
	return out
}
