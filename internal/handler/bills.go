package handler

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/billed-app/billed-server/internal/domain/entity"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BillsHandler serves the bill listing and export endpoints.
type BillsHandler struct {
	deps Deps
}

// List returns the current user's bills with display formatting applied,
// sorted by date descending. Sorting is a presentation concern, so it
// lives here rather than in the list service.
func (h *BillsHandler) List(c *gin.Context) {
	bills, err := h.deps.Bills.ListBillsForCurrentUser(c.Request.Context(), identityFor(c, h.deps))
	if err != nil {
		h.deps.Logger.Error("Failed to list bills", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	sortBillsByDateDesc(bills)

	c.JSON(http.StatusOK, gin.H{"bills": bills})
}

// Export streams the current user's bills as an .xlsx statement.
func (h *BillsHandler) Export(c *gin.Context) {
	data, err := h.deps.Export.ExportBills(c.Request.Context(), identityFor(c, h.deps))
	if err != nil {
		h.deps.Logger.Error("Failed to export bills", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("notes-de-frais-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// sortBillsByDateDesc orders bills latest first on their raw storage date.
func sortBillsByDateDesc(bills []entity.DisplayBill) {
	sort.Slice(bills, func(i, j int) bool {
		return bills[i].Date > bills[j].Date
	})
}
