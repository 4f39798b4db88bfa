package users

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taxdocs-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the users service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches user routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/users", h.create)
	rg.GET("/users/:email", h.getByEmail)
}

type createUserRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *Handler) create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		respond.Error(c, http.StatusBadRequest, "email is required")
		return
	}

	id, err := h.Svc.Create(c.Request.Context(), req.Email, req.Role)
	if err != nil {
		respond.InternalError(c, err.Error())
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"userId": id,
		"email":  strings.TrimSpace(req.Email),
	})
}

func (h *Handler) getByEmail(c *gin.Context) {
	user, err := h.Svc.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "user not found")
			return
		}
		respond.InternalError(c, err.Error())
		return
	}
	respond.OK(c, user)
}
