package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ReceiptHandler serves stored receipt images for the bill detail view.
type ReceiptHandler struct {
	deps Deps
}

// Serve resolves the storage path from the URL and streams the file.
func (h *ReceiptHandler) Serve(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "receipt not found"})
		return
	}

	fullPath, err := h.deps.Receipts.Open(path)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "receipt not found"})
		return
	}

	c.File(fullPath)
}
