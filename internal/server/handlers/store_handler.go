package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
	"github.com/mamadbah2/hotelbudget/internal/repository"
)

// StoreHandler serves the record store REST resources. Validation failures and
// uniqueness conflicts are both answered with 400 and an {error} body.
type StoreHandler struct {
	repo   repository.RecordRepository
	logger *zap.Logger
}

// NewStoreHandler wraps a repository.
func NewStoreHandler(repo repository.RecordRepository, logger *zap.Logger) *StoreHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreHandler{repo: repo, logger: logger}
}

// ListBookings handles GET /api/room-bookings[?bookingDate=YYYY-MM-DD].
func (h *StoreHandler) ListBookings(c *gin.Context) {
	var date models.Date
	if raw := c.Query("bookingDate"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bookingDate must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	rows, err := h.repo.ListBookings(c.Request.Context(), date)
	if err != nil {
		h.internalError(c, "list room bookings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{models.CategoryRoomBookings.ListKey(): nonNil(rows)})
}

// ListFoodOrders handles GET /api/food-orders.
func (h *StoreHandler) ListFoodOrders(c *gin.Context) {
	rows, err := h.repo.ListFoodOrders(c.Request.Context())
	if err != nil {
		h.internalError(c, "list food orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{models.CategoryFoodOrders.ListKey(): nonNil(rows)})
}

// ListSupplies handles GET /api/supplies.
func (h *StoreHandler) ListSupplies(c *gin.Context) {
	rows, err := h.repo.ListSupplies(c.Request.Context())
	if err != nil {
		h.internalError(c, "list supplies", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{models.CategorySupplies.ListKey(): nonNil(rows)})
}

// ListSalaries handles GET /api/salaries.
func (h *StoreHandler) ListSalaries(c *gin.Context) {
	rows, err := h.repo.ListSalaries(c.Request.Context())
	if err != nil {
		h.internalError(c, "list salaries", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{models.CategorySalaries.ListKey(): nonNil(rows)})
}

// CreateBooking handles POST /api/room-bookings.
func (h *StoreHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if !h.bindValid(c, &req) {
		return
	}
	rec, err := h.repo.InsertBooking(c.Request.Context(), req.Record())
	h.created(c, "insert room booking", rec, err)
}

// CreateFoodOrder handles POST /api/food-orders.
func (h *StoreHandler) CreateFoodOrder(c *gin.Context) {
	var req models.FoodOrderRequest
	if !h.bindValid(c, &req) {
		return
	}
	rec, err := h.repo.InsertFoodOrder(c.Request.Context(), req.Record())
	h.created(c, "insert food order", rec, err)
}

// CreateSupply handles POST /api/supplies.
func (h *StoreHandler) CreateSupply(c *gin.Context) {
	var req models.SupplyRequest
	if !h.bindValid(c, &req) {
		return
	}
	rec, err := h.repo.InsertSupply(c.Request.Context(), req.Record())
	h.created(c, "insert supply", rec, err)
}

// CreateSalary handles POST /api/salaries. Final pay is recomputed server side.
func (h *StoreHandler) CreateSalary(c *gin.Context) {
	var req models.SalaryRequest
	if !h.bindValid(c, &req) {
		return
	}
	rec, err := h.repo.InsertSalary(c.Request.Context(), req.Record())
	h.created(c, "insert salary", rec, err)
}

// Delete returns a handler for DELETE /api/<category>/:id.
func (h *StoreHandler) Delete(category models.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		err = h.repo.Delete(c.Request.Context(), category, id)
		switch {
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		case err != nil:
			h.internalError(c, "delete record", err)
		default:
			c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully."})
		}
	}
}

type validator interface {
	Validate() error
}

// bindValid decodes the body into req and runs its Validate method.
func (h *StoreHandler) bindValid(c *gin.Context, req validator) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn("invalid store payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func (h *StoreHandler) created(c *gin.Context, op string, rec any, err error) {
	var conflict *models.ConflictError
	switch {
	case errors.As(err, &conflict):
		h.logger.Info("store write rejected", zap.String("op", op), zap.String("reason", conflict.Message))
		c.JSON(http.StatusBadRequest, gin.H{"error": conflict.Message})
	case err != nil:
		h.internalError(c, op, err)
	default:
		c.JSON(http.StatusCreated, rec)
	}
}

func (h *StoreHandler) internalError(c *gin.Context, op string, err error) {
	h.logger.Error("record store failure", zap.String("op", op), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
