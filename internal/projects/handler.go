package projects

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches project routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects", h.list)
	rg.POST("/projects", h.create)
	rg.GET("/projects/:id", h.get)
	rg.PUT("/projects/:id", h.update)
	rg.DELETE("/projects/:id", h.delete)
	rg.GET("/projects/user/:ownerId", h.listByOwner)
}

type createRequest struct {
	OwnerID          string     `json:"ownerId"`
	UserID           string     `json:"userId"` // legacy alias for ownerId
	Name             string     `json:"name"`
	Technologies     StringList `json:"technologies"`
	ShortDescription string     `json:"short_description"`
	LongDescription  string     `json:"long_description"`
	GithubURL        string     `json:"github_url"`
	LiveURL          string     `json:"live_url"`
	ImageURL         string     `json:"image_url"`
	Status           string     `json:"status"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	ownerID := req.OwnerID
	if strings.TrimSpace(ownerID) == "" {
		ownerID = req.UserID
	}

	p, err := h.Svc.Create(c.Request.Context(), CreateInput{
		OwnerID:          ownerID,
		Name:             req.Name,
		Technologies:     req.Technologies,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		GithubURL:        req.GithubURL,
		LiveURL:          req.LiveURL,
		ImageURL:         req.ImageURL,
		Status:           req.Status,
	})
	if err != nil {
		h.writeError(c, err, "failed to create project")
		return
	}

	respond.Created(c, gin.H{
		"message": "Project created successfully",
		"data":    toResponse(p),
	})
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), queryLimit(c))
	if err != nil {
		h.writeError(c, err, "failed to list projects")
		return
	}
	respond.OK(c, gin.H{"data": toResponses(list)})
}

func (h *Handler) listByOwner(c *gin.Context) {
	list, err := h.Svc.ListByOwner(c.Request.Context(), c.Param("ownerId"), queryLimit(c))
	if err != nil {
		h.writeError(c, err, "failed to list projects")
		return
	}
	respond.OK(c, gin.H{"data": toResponses(list)})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "failed to fetch project")
		return
	}
	respond.OK(c, gin.H{"data": toResponse(p)})
}

type updateRequest struct {
	Name             *string     `json:"name"`
	Technologies     *StringList `json:"technologies"`
	ShortDescription *string     `json:"short_description"`
	LongDescription  *string     `json:"long_description"`
	GithubURL        *string     `json:"github_url"`
	LiveURL          *string     `json:"live_url"`
	ImageURL         *string     `json:"image_url"`
	Status           *string     `json:"status"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := Update{
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		GithubURL:        req.GithubURL,
		LiveURL:          req.LiveURL,
		ImageURL:         req.ImageURL,
		Status:           req.Status,
	}
	if req.Technologies != nil {
		tech := []string(*req.Technologies)
		upd.Technologies = &tech
	}

	p, err := h.Svc.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		h.writeError(c, err, "failed to update project")
		return
	}

	respond.OK(c, gin.H{
		"message": "Project updated successfully",
		"data":    toResponse(p),
	})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "failed to delete project")
		return
	}
	respond.OK(c, gin.H{"message": "Project deleted successfully"})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "project not found")
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, err.Error())
	default:
		respond.Error(c, http.StatusInternalServerError, fallback)
	}
}

func queryLimit(c *gin.Context) int {
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return 0
}
