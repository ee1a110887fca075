// Package handler exposes the expense-report services over HTTP. The
// handlers are thin shells wiring requests to the services, the way the
// reference UI's view controllers wired DOM events.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/billed-app/billed-server/internal/service"
	"github.com/billed-app/billed-server/internal/session"
	"github.com/billed-app/billed-server/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionItems is the per-session key-value persistence the handlers bind
// request sessions to.
type SessionItems interface {
	GetItem(ctx context.Context, sessionID, key string) (string, bool, error)
	SetItem(ctx context.Context, sessionID, key, value string) error
}

// sessionHeader carries the caller's session identifier.
const sessionHeader = "X-Session-ID"

// Deps aggregates everything the HTTP layer needs.
type Deps struct {
	Bills    *service.BillListService
	NewBills *service.NewBillService
	Export   *service.ExportService
	Sessions SessionItems
	Receipts storage.ReceiptStorage
	Logger   *zap.Logger
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(deps.Logger))
	router.Use(corsMiddleware())

	bills := &BillsHandler{deps: deps}
	newBill := &NewBillHandler{deps: deps}
	sessions := &SessionHandler{deps: deps}
	receipts := &ReceiptHandler{deps: deps}

	api := router.Group("/api")
	{
		api.GET("/bills", bills.List)
		api.GET("/bills/export", bills.Export)
		api.POST("/bills", newBill.Create)
		api.POST("/session", sessions.Create)
	}

	router.GET("/receipts/*path", receipts.Serve)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

// identityFor binds the request's session to an identity resolver.
func identityFor(c *gin.Context, deps Deps) *session.Resolver {
	store := session.NewRepoStore(deps.Sessions, c.GetHeader(sessionHeader))
	return session.NewResolver(store, deps.Logger)
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}

// corsMiddleware adds CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Session-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
