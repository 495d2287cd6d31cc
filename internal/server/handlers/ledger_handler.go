package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
	"github.com/mamadbah2/hotelbudget/internal/service/availability"
	"github.com/mamadbah2/hotelbudget/internal/service/ledger"
)

// Ledger is the coordinator surface exposed over HTTP.
type Ledger interface {
	State() ledger.State
	Summary() models.FinancialSummary
	Refresh(ctx context.Context) (models.FinancialSummary, error)
	Availability(ctx context.Context, room string, date models.Date) (availability.Result, error)
	BookRoom(ctx context.Context, req models.BookingRequest) (ledger.Result, error)
	CreateFoodOrder(ctx context.Context, req models.FoodOrderRequest) (ledger.Result, error)
	CreateSupply(ctx context.Context, req models.SupplyRequest) (ledger.Result, error)
	CreateSalary(ctx context.Context, req models.SalaryRequest) (ledger.Result, error)
	Delete(ctx context.Context, category models.Category, id int64) (ledger.Result, error)
}

// LedgerHandler serves the summary and accepts ledger writes. The tracker
// holds the front desk's currently selected booking date.
type LedgerHandler struct {
	ledger  Ledger
	tracker *availability.Tracker
	logger  *zap.Logger
}

// NewLedgerHandler constructs the HTTP adapter around the coordinator.
func NewLedgerHandler(l Ledger, tracker *availability.Tracker, logger *zap.Logger) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerHandler{ledger: l, tracker: tracker, logger: logger}
}

// Summary returns the current summary. With ?refresh=true it re-reads first;
// a failed re-read serves the last computed summary marked stale.
func (h *LedgerHandler) Summary(c *gin.Context) {
	if c.Query("refresh") != "true" {
		c.JSON(http.StatusOK, gin.H{"summary": h.ledger.Summary(), "state": h.ledger.State().String()})
		return
	}
	h.refresh(c)
}

// Refresh forces a full re-read of the record store.
func (h *LedgerHandler) Refresh(c *gin.Context) {
	h.refresh(c)
}

func (h *LedgerHandler) refresh(c *gin.Context) {
	summary, err := h.ledger.Refresh(c.Request.Context())
	if err != nil {
		h.logger.Warn("summary refresh failed", zap.Error(err))
		if summary.RefreshedAt == nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"summary": summary, "state": h.ledger.State().String(), "stale": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary, "state": h.ledger.State().String()})
}

// Availability answers whether ?room= is free on ?date=.
func (h *LedgerHandler) Availability(c *gin.Context) {
	room := c.Query("room")
	date, err := models.ParseDate(c.Query("date"))
	if room == "" || err != nil {
		abortWithError(c, models.NewValidationError("date", "Both room and date (YYYY-MM-DD) are required."))
		return
	}

	result, err := h.ledger.Availability(c.Request.Context(), room, date)
	if err != nil {
		h.logger.Warn("availability check failed", zap.String("room", room), zap.Error(err))
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type selectionRequest struct {
	Date models.Date `json:"date"`
}

// SelectDate loads the bookings of the posted date and makes it current. A
// response overtaken by a newer selection is discarded with 409.
func (h *LedgerHandler) SelectDate(c *gin.Context) {
	var req selectionRequest
	if !h.bind(c, &req) {
		return
	}
	if req.Date.IsZero() {
		abortWithError(c, models.NewValidationError("date", "A date (YYYY-MM-DD) is required."))
		return
	}

	bookings, err := h.tracker.Select(c.Request.Context(), req.Date)
	if errors.Is(err, availability.ErrStaleSelection) {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "A newer date was selected."})
		return
	}
	if err != nil {
		h.logger.Warn("date selection failed", zap.String("date", req.Date.String()), zap.Error(err))
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": req.Date, "bookings": bookings})
}

// CheckSelected answers ?room= against the selected date's bookings.
func (h *LedgerHandler) CheckSelected(c *gin.Context) {
	room := c.Query("room")
	if room == "" {
		abortWithError(c, models.NewValidationError("room", "A room is required."))
		return
	}

	result, err := h.tracker.Check(room)
	if errors.Is(err, availability.ErrNoSelection) {
		abortWithError(c, models.NewValidationError("date", "Select a booking date first."))
		return
	}
	if err != nil {
		abortWithError(c, err)
		return
	}

	date, _ := h.tracker.Selected()
	c.JSON(http.StatusOK, gin.H{"date": date, "available": result.Available, "reason": result.Reason})
}

// BookRoom handles POST /api/room-bookings.
func (h *LedgerHandler) BookRoom(c *gin.Context) {
	var req models.BookingRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, func(ctx context.Context) (ledger.Result, error) { return h.ledger.BookRoom(ctx, req) })
}

// CreateFoodOrder handles POST /api/food-orders.
func (h *LedgerHandler) CreateFoodOrder(c *gin.Context) {
	var req models.FoodOrderRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, func(ctx context.Context) (ledger.Result, error) { return h.ledger.CreateFoodOrder(ctx, req) })
}

// CreateSupply handles POST /api/supplies.
func (h *LedgerHandler) CreateSupply(c *gin.Context) {
	var req models.SupplyRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, func(ctx context.Context) (ledger.Result, error) { return h.ledger.CreateSupply(ctx, req) })
}

// CreateSalary handles POST /api/salaries.
func (h *LedgerHandler) CreateSalary(c *gin.Context) {
	var req models.SalaryRequest
	if !h.bind(c, &req) {
		return
	}
	h.respond(c, func(ctx context.Context) (ledger.Result, error) { return h.ledger.CreateSalary(ctx, req) })
}

// Delete returns a handler removing records of category by :id.
func (h *LedgerHandler) Delete(category models.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			abortWithError(c, models.NewValidationError("id", "A valid record id is required."))
			return
		}
		result, err := h.ledger.Delete(c.Request.Context(), category, id)
		if err != nil {
			h.logger.Info("delete rejected", zap.String("category", string(category)), zap.Int64("id", id), zap.Error(err))
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func (h *LedgerHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn("invalid ledger payload", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

func (h *LedgerHandler) respond(c *gin.Context, submit func(context.Context) (ledger.Result, error)) {
	result, err := submit(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
