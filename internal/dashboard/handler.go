package dashboard

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taxdocs-backend/internal/audit"
	"taxdocs-backend/internal/clients"
	"taxdocs-backend/internal/documents"
	"taxdocs-backend/internal/shared/server/respond"
)

// Handler serves the accountant dashboard read surfaces: aggregate stats,
// client and document listings, and the per-document detail view.
type Handler struct {
	Clients   clients.Repo
	Documents documents.Repo
	Audit     audit.Repo
}

// NewHandler constructs a Handler.
func NewHandler(clientsRepo clients.Repo, documentsRepo documents.Repo, auditRepo audit.Repo) *Handler {
	return &Handler{Clients: clientsRepo, Documents: documentsRepo, Audit: auditRepo}
}

// RegisterRoutes attaches dashboard routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/stats", h.stats)
	rg.GET("/dashboard/clients", h.listClients)
	rg.GET("/dashboard/documents", h.listDocuments)
	rg.GET("/dashboard/documents/:id", h.documentDetail)
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.Documents.Stats(c.Request.Context())
	if err != nil {
		respond.InternalError(c, err.Error())
		return
	}
	respond.OK(c, stats)
}

func (h *Handler) listClients(c *gin.Context) {
	all, err := h.Clients.List(c.Request.Context())
	if err != nil {
		respond.InternalError(c, err.Error())
		return
	}

	out := make([]gin.H, 0, len(all))
	for _, client := range all {
		out = append(out, gin.H{
			"clientId":          client.ID,
			"email":             client.Email,
			"name":              client.Name,
			"createdDate":       client.CreatedDate,
			"lastProcessedDate": client.LastProcessedDate,
			"isActive":          client.IsActive,
		})
	}
	respond.OK(c, out)
}

func (h *Handler) listDocuments(c *gin.Context) {
	var filter documents.Filter
	if raw := c.Query("clientId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid clientId")
			return
		}
		filter.ClientID = id
	}
	filter.Status = c.Query("status")
	filter.DocumentType = c.Query("documentType")

	docs, err := h.Documents.ListAll(c.Request.Context(), filter)
	if err != nil {
		respond.InternalError(c, err.Error())
		return
	}

	out := make([]gin.H, 0, len(docs))
	for _, doc := range docs {
		out = append(out, documentJSON(doc.Document, doc.ClientEmail, doc.ClientName))
	}
	respond.OK(c, out)
}

func (h *Handler) documentDetail(c *gin.Context) {
	documentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid document id")
		return
	}

	ctx := c.Request.Context()
	doc, err := h.Documents.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, documents.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "document not found")
			return
		}
		respond.InternalError(c, err.Error())
		return
	}

	fields, err := h.Documents.ListExtractedFields(ctx, documentID)
	if err != nil {
		respond.InternalError(c, err.Error())
		return
	}

	trail, err := h.Audit.ListByDocument(ctx, documentID)
	if err != nil {
		respond.InternalError(c, err.Error())
		return
	}

	extracted := make([]gin.H, 0, len(fields))
	for _, f := range fields {
		extracted = append(extracted, gin.H{
			"fieldName":          f.FieldName,
			"fieldValue":         f.FieldValue,
			"confidence":         f.Confidence,
			"extractedTimestamp": f.ExtractedTimestamp,
		})
	}

	// The dashboard shows the trail newest-first; the store reads it oldest-first.
	auditTrail := make([]gin.H, 0, len(trail))
	for i := len(trail) - 1; i >= 0; i-- {
		entry := trail[i]
		auditTrail = append(auditTrail, gin.H{
			"processingStep": entry.ProcessingStep,
			"status":         entry.Status,
			"details":        entry.Details,
			"errorDetails":   entry.ErrorDetails,
			"timestamp":      entry.Timestamp,
		})
	}

	respond.OK(c, gin.H{
		"document":      documentJSON(doc, "", ""),
		"extractedData": extracted,
		"auditTrail":    auditTrail,
	})
}

func documentJSON(doc documents.Document, clientEmail, clientName string) gin.H {
	out := gin.H{
		"documentId":         doc.ID,
		"clientId":           doc.ClientID,
		"fileName":           doc.OriginalFileName,
		"blobPath":           doc.BlobStoragePath,
		"documentType":       doc.DocumentType,
		"processingStatus":   doc.ProcessingStatus,
		"confidence":         doc.Confidence,
		"errorMessage":       doc.ErrorMessage,
		"uploadTimestamp":    doc.UploadTimestamp,
		"processedTimestamp": doc.ProcessedTimestamp,
		"taxYear":            doc.TaxYear,
	}
	if clientEmail != "" {
		out["clientEmail"] = clientEmail
		out["clientName"] = clientName
	}
	return out
}
