package resumes

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/server/respond"
)

// maxRequestSize caps upsert request bodies: the file ceiling plus room
// for multipart framing and the text fields.
const maxRequestSize = MaxFileSize + 1<<20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes", h.list)
	rg.POST("/resumes", h.upsert)
	rg.GET("/resumes/:id", h.get)
	rg.DELETE("/resumes/:id", h.delete)
	rg.POST("/resumes/:id/view", h.view)
	rg.GET("/resumes/:id/download", h.download)
	rg.GET("/resumes/user/:ownerId", h.getByOwner)
	rg.GET("/resumes/search/:query", h.search)
}

type upsertRequest struct {
	OwnerID     string `json:"ownerId"`
	UserID      string `json:"userId"` // legacy alias for ownerId
	Name        string `json:"name"`
	Email       string `json:"email"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Skills      string `json:"skills"`
	Experience  string `json:"experience"`
}

func (h *Handler) upsert(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestSize)

	var (
		in   UpsertInput
		file *FileUpload
	)

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		in = UpsertInput{
			OwnerID:     firstNonEmpty(c.PostForm("ownerId"), c.PostForm("userId")),
			Name:        c.PostForm("name"),
			Email:       c.PostForm("email"),
			Title:       c.PostForm("title"),
			Description: c.PostForm("description"),
			Skills:      c.PostForm("skills"),
			Experience:  c.PostForm("experience"),
		}

		fileHeader, err := c.FormFile("file")
		if err == nil {
			f, openErr := fileHeader.Open()
			if openErr != nil {
				respond.Error(c, http.StatusBadRequest, "unable to read file")
				return
			}
			defer f.Close()
			file = &FileUpload{
				FileName: fileHeader.Filename,
				MimeType: fileHeader.Header.Get("Content-Type"),
				Size:     fileHeader.Size,
				Content:  f,
			}
		} else if !errors.Is(err, http.ErrMissingFile) {
			respond.Error(c, http.StatusBadRequest, "invalid multipart form")
			return
		}
	} else {
		var req upsertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid request body")
			return
		}
		in = UpsertInput{
			OwnerID:     firstNonEmpty(req.OwnerID, req.UserID),
			Name:        req.Name,
			Email:       req.Email,
			Title:       req.Title,
			Description: req.Description,
			Skills:      req.Skills,
			Experience:  req.Experience,
		}
	}

	res, created, err := h.Svc.Upsert(c.Request.Context(), in, file)
	if err != nil {
		h.writeError(c, err, "failed to save resume")
		return
	}

	message := "Resume updated successfully"
	status := http.StatusOK
	if created {
		message = "Resume uploaded successfully"
		status = http.StatusCreated
	}
	respond.JSON(c, status, gin.H{
		"message":  message,
		"isUpdate": !created,
		"data":     toResponse(res),
	})
}

func (h *Handler) list(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	list, err := h.Svc.List(c.Request.Context(), limit)
	if err != nil {
		h.writeError(c, err, "failed to list resumes")
		return
	}
	respond.OK(c, gin.H{"resumes": toResponses(list)})
}

func (h *Handler) get(c *gin.Context) {
	res, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to fetch resume")
		return
	}
	respond.OK(c, gin.H{"resume": toResponse(res)})
}

func (h *Handler) getByOwner(c *gin.Context) {
	res, err := h.Svc.GetByOwner(c.Request.Context(), c.Param("ownerId"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "resume not found for this user")
			return
		}
		h.writeError(c, err, "failed to fetch resume")
		return
	}
	respond.OK(c, gin.H{"resume": toResponse(res)})
}

func (h *Handler) search(c *gin.Context) {
	list, err := h.Svc.Search(c.Request.Context(), c.Param("query"))
	if err != nil {
		h.writeError(c, err, "failed to search resumes")
		return
	}
	respond.OK(c, gin.H{"resumes": toResponses(list)})
}

func (h *Handler) view(c *gin.Context) {
	views, err := h.Svc.IncrementViews(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to increment view count")
		return
	}
	respond.OK(c, gin.H{
		"message": "View count incremented",
		"views":   views,
	})
}

func (h *Handler) download(c *gin.Context) {
	result, err := h.Svc.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to download resume")
		return
	}
	defer result.Content.Close()

	c.Header("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	c.DataFromReader(http.StatusOK, result.SizeBytes, result.MimeType, result.Content, nil)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "failed to delete resume")
		return
	}
	respond.OK(c, gin.H{"message": "Resume deleted successfully"})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "resume not found")
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrFileTooLarge), errors.Is(err, ErrFileType):
		respond.Error(c, http.StatusBadRequest, err.Error())
	default:
		respond.Error(c, http.StatusInternalServerError, fallback)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
