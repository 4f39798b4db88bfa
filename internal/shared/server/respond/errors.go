package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxdocs-backend/internal/shared/telemetry"
)

// Error sends a flat {"error": message} body, the shape the intake and
// dashboard clients contract on, and logs the failure.
func Error(c *gin.Context, status int, message string) {
	logError(c, status, message, "")
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// InternalError sends a 500 with a generic message plus the underlying
// error text in a details field.
func InternalError(c *gin.Context, details string) {
	logError(c, http.StatusInternalServerError, "Internal server error", details)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal server error",
		"details": details,
	})
}

func logError(c *gin.Context, status int, message, details string) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if details != "" {
		fields["details"] = details
	}
	telemetry.Error("http.error", fields)
}
