package resumes

import "errors"

var (
	ErrNotFound     = errors.New("resume not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrFileTooLarge = errors.New("file exceeds the 5MB size limit")
	ErrFileType     = errors.New("invalid file type; only PDF, DOC, DOCX, and TXT files are allowed")
)
