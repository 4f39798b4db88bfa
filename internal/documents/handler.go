package documents

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"taxdocs-backend/internal/audit"
	"taxdocs-backend/internal/shared/server/respond"
	"taxdocs-backend/internal/shared/telemetry"
)

// Handler exposes document routes: the per-client listing and the
// storage-event hook that advances a pending document toward extraction.
type Handler struct {
	Repo  Repo
	Audit *audit.Recorder
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo, auditRec *audit.Recorder) *Handler {
	return &Handler{Repo: repo, Audit: auditRec}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/clients/:id/documents", h.listByClient)
	rg.POST("/documents/process", h.process)
}

func (h *Handler) listByClient(c *gin.Context) {
	clientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid client id")
		return
	}

	summaries, err := h.Repo.ListByClient(c.Request.Context(), clientID, c.Query("status"))
	if err != nil {
		respond.InternalError(c, err.Error())
		return
	}

	out := make([]gin.H, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, gin.H{
			"documentId":       s.ID,
			"fileName":         s.OriginalFileName,
			"documentType":     s.DocumentType,
			"uploadTimestamp":  s.UploadTimestamp,
			"processingStatus": s.ProcessingStatus,
			"confidence":       s.Confidence,
		})
	}
	respond.OK(c, out)
}

type processRequest struct {
	BlobPath string `json:"blobPath"`
}

// process is invoked when an attachment blob lands in storage. It transitions
// the matching pending document to processing and then marks it ready for the
// downstream extraction stage; the extraction call itself lives outside this
// service.
func (h *Handler) process(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	req.BlobPath = strings.TrimSpace(req.BlobPath)
	if req.BlobPath == "" {
		respond.Error(c, http.StatusBadRequest, "blobPath is required")
		return
	}

	ctx := c.Request.Context()
	doc, err := h.Repo.GetPendingByPath(ctx, req.BlobPath)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			telemetry.Warn("documents.process.no_pending_document", map[string]any{
				"blob_path": req.BlobPath,
			})
			respond.Error(c, http.StatusNotFound, "no pending document for path")
			return
		}
		respond.InternalError(c, err.Error())
		return
	}

	docType := ""
	if doc.DocumentType != nil {
		docType = *doc.DocumentType
	}

	if err := h.Repo.UpdateStatus(ctx, doc.ID, StatusProcessing, "", nil); err != nil {
		h.failProcessing(c, doc.ID, err)
		return
	}
	h.Audit.Record(ctx, doc.ID,
		"Blob trigger activated",
		audit.StatusSuccess,
		"File: "+doc.OriginalFileName+", Type: "+docType,
		"")

	if err := h.Repo.UpdateStatus(ctx, doc.ID, StatusReadyForAI, "", nil); err != nil {
		h.failProcessing(c, doc.ID, err)
		return
	}
	h.Audit.Record(ctx, doc.ID,
		"Ready for AI processing",
		audit.StatusSuccess,
		"File validated and ready for Document Intelligence",
		"")

	c.Set("documentId", doc.ID)
	respond.OK(c, gin.H{
		"success":    true,
		"documentId": doc.ID,
		"status":     StatusReadyForAI,
	})
}

// failProcessing marks the document errored best-effort and reports the
// original failure.
func (h *Handler) failProcessing(c *gin.Context, documentID int64, cause error) {
	if err := h.Repo.UpdateStatus(c.Request.Context(), documentID, StatusError, cause.Error(), nil); err != nil {
		telemetry.Error("documents.process.mark_error_failed", map[string]any{
			"document_id": documentID,
			"error":       err.Error(),
		})
	}
	respond.InternalError(c, cause.Error())
}
