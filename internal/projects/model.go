package projects

import "time"

// Project status values.
const (
	StatusCompleted  = "completed"
	StatusInProgress = "in-progress"
)

// Project is a portfolio entry. Unlike resumes, an owner may have any
// number of projects, each with an independent lifecycle.
type Project struct {
	ID               string
	OwnerID          string
	Name             string
	Technologies     []string
	ShortDescription string
	LongDescription  string
	GithubURL        string
	LiveURL          string
	ImageURL         string
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ValidStatus reports whether s is a recognized project status.
func ValidStatus(s string) bool {
	return s == StatusCompleted || s == StatusInProgress
}
