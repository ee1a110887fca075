package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/billed-app/billed-server/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewBillHandler drives the new-bill submission flow: one request covers
// one upload session, selecting the receipt file (when present), awaiting
// its upload, and submitting the bill.
type NewBillHandler struct {
	deps Deps
}

// Create accepts a multipart form with the bill fields and an optional
// "file" part holding the receipt image.
func (h *NewBillHandler) Create(c *gin.Context) {
	sess := h.deps.NewBills.NewSession(identityFor(c, h.deps))
	ctx := c.Request.Context()

	fileHeader, err := c.FormFile("file")
	if err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file part"})
			return
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file part"})
			return
		}

		if err := sess.SelectFile(ctx, fileHeader.Filename, content); err != nil {
			var unsupported *service.UnsupportedFormatError
			if errors.As(err, &unsupported) {
				// The exact message is user-facing; the UI alerts it as-is.
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": unsupported.Error()})
				return
			}
			h.deps.Logger.Error("Failed to select receipt file", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "file selection failed"})
			return
		}

		if err := sess.AwaitUpload(ctx); err != nil {
			h.deps.Logger.Error("Receipt upload failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "receipt upload failed"})
			return
		}
	}

	fields := service.SubmitFields{
		Type:       c.PostForm("type"),
		Name:       c.PostForm("name"),
		Amount:     c.PostForm("amount"),
		Date:       c.PostForm("date"),
		VAT:        c.PostForm("vat"),
		Pct:        c.PostForm("pct"),
		Commentary: c.PostForm("commentary"),
	}

	// Submit returns only once the store acknowledged the create, so the
	// redirect below cannot race it.
	bill, err := sess.Submit(ctx, fields)
	if err != nil {
		h.deps.Logger.Error("Failed to submit bill", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Location", "/api/bills")
	c.JSON(http.StatusCreated, gin.H{"bill": bill})
}
