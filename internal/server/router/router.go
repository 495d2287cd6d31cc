package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
	"github.com/mamadbah2/hotelbudget/internal/server/handlers"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Metrics is the optional Prometheus surface of a router.
type Metrics interface {
	Handler() http.Handler
	Middleware() gin.HandlerFunc
}

// LedgerRoutes are the handlers of the ledger API. Webhook and Reports are
// optional and their routes exist only when set.
type LedgerRoutes struct {
	Ledger  *handlers.LedgerHandler
	Webhook *handlers.WebhookHandler
	Reports *handlers.ReportHandler
}

// NewLedger wires the ledger API. metrics may be nil.
func NewLedger(routes LedgerRoutes, metrics Metrics, logger *zap.Logger) *gin.Engine {
	r := newEngine(metrics, logger)
	handler := routes.Ledger

	api := r.Group("/api")
	api.GET("/summary", handler.Summary)
	api.POST("/summary/refresh", handler.Refresh)
	api.GET("/availability", handler.Availability)
	api.POST("/availability/selection", handler.SelectDate)
	api.GET("/availability/selection", handler.CheckSelected)

	api.POST("/"+string(models.CategoryRoomBookings), handler.BookRoom)
	api.POST("/"+string(models.CategoryFoodOrders), handler.CreateFoodOrder)
	api.POST("/"+string(models.CategorySupplies), handler.CreateSupply)
	api.POST("/"+string(models.CategorySalaries), handler.CreateSalary)
	for _, category := range models.Categories() {
		if category.Deletable() {
			api.DELETE("/"+string(category)+"/:id", handler.Delete(category))
		}
	}

	if routes.Reports != nil {
		api.GET("/reports/:date", routes.Reports.Get)
	}

	if routes.Webhook != nil {
		r.GET("/webhook", routes.Webhook.Verify)
		r.POST("/webhook", routes.Webhook.Receive)
	}

	if logger != nil {
		logger.Info("ledger router initialized",
			zap.Bool("webhook", routes.Webhook != nil),
			zap.Bool("reports", routes.Reports != nil))
	}
	return r
}

// NewStore wires the record store REST resources. metrics may be nil.
func NewStore(handler *handlers.StoreHandler, metrics Metrics, logger *zap.Logger) *gin.Engine {
	r := newEngine(metrics, logger)

	api := r.Group("/api")
	api.GET("/"+string(models.CategoryRoomBookings), handler.ListBookings)
	api.POST("/"+string(models.CategoryRoomBookings), handler.CreateBooking)
	api.GET("/"+string(models.CategoryFoodOrders), handler.ListFoodOrders)
	api.POST("/"+string(models.CategoryFoodOrders), handler.CreateFoodOrder)
	api.GET("/"+string(models.CategorySupplies), handler.ListSupplies)
	api.POST("/"+string(models.CategorySupplies), handler.CreateSupply)
	api.GET("/"+string(models.CategorySalaries), handler.ListSalaries)
	api.POST("/"+string(models.CategorySalaries), handler.CreateSalary)
	for _, category := range models.Categories() {
		if category.Deletable() {
			api.DELETE("/"+string(category)+"/:id", handler.Delete(category))
		}
	}

	if logger != nil {
		logger.Info("record store router initialized")
	}
	return r
}

func newEngine(metrics Metrics, logger *zap.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))
	if metrics != nil {
		r.Use(metrics.Middleware())
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
