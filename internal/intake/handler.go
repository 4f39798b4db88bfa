package intake

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taxdocs-backend/internal/shared/server/respond"
)

// Handler wires the intake endpoint to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches intake routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/intake/email", h.createFromEmail)
}

func (h *Handler) createFromEmail(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	req.ClientEmail = strings.TrimSpace(req.ClientEmail)
	req.ClientName = strings.TrimSpace(req.ClientName)
	req.FolderPath = strings.TrimSpace(req.FolderPath)

	// Validation happens before any store call; a rejected request leaves no
	// side effects behind.
	if req.ClientEmail == "" {
		respond.Error(c, http.StatusBadRequest, "clientEmail is required")
		return
	}
	if req.FolderPath == "" {
		respond.Error(c, http.StatusBadRequest, "folderPath is required")
		return
	}
	if len(req.Attachments) == 0 {
		respond.Error(c, http.StatusBadRequest, "At least one attachment is required")
		return
	}

	resp, err := h.Svc.Process(c.Request.Context(), req)
	if err != nil {
		respond.InternalError(c, err.Error())
		return
	}

	c.Set("clientId", resp.ClientID)
	c.Set("documentsCreated", resp.DocumentsCreated)
	respond.OK(c, resp)
}
