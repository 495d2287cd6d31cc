// Package ledger serializes writes to the record store and keeps the
// financial summary in step with what the store has confirmed.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
	"github.com/mamadbah2/hotelbudget/internal/service/availability"
	"github.com/mamadbah2/hotelbudget/internal/service/reporting"
)

const (
	MessageRoomBooked    = "Room booked successfully!"
	MessageFoodOrdered   = "Food order added successfully!"
	MessageSupplyAdded   = "Supply added successfully!"
	MessageSalaryAdded   = "Salary successfully added."
	MessageRecordDeleted = "Record deleted successfully."
)

// Store is the subset of the record store the coordinator writes through.
type Store interface {
	reporting.Reader
	CreateBooking(ctx context.Context, req models.BookingRequest) (models.RoomBooking, error)
	CreateFoodOrder(ctx context.Context, req models.FoodOrderRequest) (models.FoodOrder, error)
	CreateSupply(ctx context.Context, req models.SupplyRequest) (models.Supply, error)
	CreateSalary(ctx context.Context, req models.SalaryRequest) (models.SalaryRecord, error)
	Delete(ctx context.Context, category models.Category, id int64) error
}

// EventPublisher receives an event for every confirmed write.
type EventPublisher interface {
	PublishMutation(ctx context.Context, event models.MutationEvent) error
}

// Observer records coordinator activity, typically as metrics.
type Observer interface {
	ObserveMutation(category models.Category, outcome string, elapsed time.Duration)
	ObserveRefresh(ok bool, elapsed time.Duration)
	SetSummary(summary models.FinancialSummary)
}

// Options carries the optional collaborators of a Coordinator.
type Options struct {
	Location  *time.Location
	Now       func() time.Time
	Publisher EventPublisher
	Observer  Observer
}

// Result is returned for a confirmed write. Stale is set when the write
// succeeded but the follow-up refresh failed, so Summary is the last one known.
type Result struct {
	Message string                  `json:"message"`
	Summary models.FinancialSummary `json:"summary"`
	Stale   bool                    `json:"stale,omitempty"`
}

// Coordinator runs one mutation at a time: validate, submit, then re-read
// every category and swap the summary in a single step.
type Coordinator struct {
	store     Store
	summaries *reporting.Service
	logger    *zap.Logger
	loc       *time.Location
	now       func() time.Time
	publisher EventPublisher
	observer  Observer

	mu        sync.Mutex
	refreshMu sync.Mutex
	state     atomic.Int32
	summary   atomic.Pointer[models.FinancialSummary]
}

// NewCoordinator wires a coordinator around the store and the summary builder.
func NewCoordinator(store Store, summaries *reporting.Service, opts Options, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Coordinator{
		store:     store,
		summaries: summaries,
		logger:    logger,
		loc:       opts.Location,
		now:       opts.Now,
		publisher: opts.Publisher,
		observer:  opts.Observer,
	}
	c.summary.Store(&models.FinancialSummary{})
	return c
}

// State reports the coordinator's current phase.
func (c *Coordinator) State() State {
	return State(c.state.Load())
}

// Summary returns the last successfully computed summary.
func (c *Coordinator) Summary() models.FinancialSummary {
	return *c.summary.Load()
}

// Refresh re-reads all four categories and replaces the summary. On failure
// the previous summary stays in place.
func (c *Coordinator) Refresh(ctx context.Context) (models.FinancialSummary, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	start := time.Now()
	summary, err := c.summaries.BuildSummary(ctx)
	if c.observer != nil {
		c.observer.ObserveRefresh(err == nil, time.Since(start))
	}
	if err != nil {
		c.logger.Warn("summary refresh failed", zap.Error(err))
		return c.Summary(), err
	}

	c.summary.Store(&summary)
	if c.observer != nil {
		c.observer.SetSummary(summary)
	}
	return summary, nil
}

// Availability checks room against a fresh read of the day's bookings.
func (c *Coordinator) Availability(ctx context.Context, room string, date models.Date) (availability.Result, error) {
	bookings, err := c.store.ListBookings(ctx, date)
	if err != nil {
		return availability.Result{}, err
	}
	return availability.Check(room, date, bookings), nil
}

// BookRoom validates the booking, re-checks availability against the store,
// then submits it.
func (c *Coordinator) BookRoom(ctx context.Context, req models.BookingRequest) (Result, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	if err := availability.ValidateDate(req.BookingDate, c.now(), c.loc); err != nil {
		return Result{}, err
	}

	return c.submit(ctx, models.CategoryRoomBookings, models.MutationCreated, MessageRoomBooked, func(ctx context.Context) (int64, error) {
		check, err := c.Availability(ctx, req.RoomName, req.BookingDate)
		if err != nil {
			return 0, err
		}
		if !check.Available {
			return 0, &models.ConflictError{Message: check.Reason}
		}

		booking, err := c.store.CreateBooking(ctx, req)
		if err != nil {
			return 0, err
		}
		return booking.ID, nil
	})
}

// CreateFoodOrder validates and submits a food order.
func (c *Coordinator) CreateFoodOrder(ctx context.Context, req models.FoodOrderRequest) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	return c.submit(ctx, models.CategoryFoodOrders, models.MutationCreated, MessageFoodOrdered, func(ctx context.Context) (int64, error) {
		order, err := c.store.CreateFoodOrder(ctx, req)
		return order.ID, err
	})
}

// CreateSupply validates and submits a supply purchase.
func (c *Coordinator) CreateSupply(ctx context.Context, req models.SupplyRequest) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	return c.submit(ctx, models.CategorySupplies, models.MutationCreated, MessageSupplyAdded, func(ctx context.Context) (int64, error) {
		supply, err := c.store.CreateSupply(ctx, req)
		return supply.ID, err
	})
}

// CreateSalary validates the entry, derives the final pay and submits it.
func (c *Coordinator) CreateSalary(ctx context.Context, req models.SalaryRequest) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	req = req.WithFinalPay()

	return c.submit(ctx, models.CategorySalaries, models.MutationCreated, MessageSalaryAdded, func(ctx context.Context) (int64, error) {
		salary, err := c.store.CreateSalary(ctx, req)
		return salary.ID, err
	})
}

// Delete removes a record by id.
func (c *Coordinator) Delete(ctx context.Context, category models.Category, id int64) (Result, error) {
	if !category.Deletable() {
		return Result{}, models.NewValidationError("category", fmt.Sprintf("Records of %s cannot be deleted.", category))
	}
	if id <= 0 {
		return Result{}, models.NewValidationError("id", "A valid record id is required.")
	}

	return c.submit(ctx, category, models.MutationDeleted, MessageRecordDeleted, func(ctx context.Context) (int64, error) {
		return id, c.store.Delete(ctx, category, id)
	})
}

func (c *Coordinator) submit(
	ctx context.Context,
	category models.Category,
	kind models.MutationKind,
	message string,
	write func(context.Context) (int64, error),
) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	logger := c.logger.With(zap.String("category", string(category)), zap.String("kind", string(kind)))
	start := time.Now()

	c.setState(StateSubmitting)
	id, err := write(ctx)
	if err != nil {
		c.setState(StateIdle)
		c.observe(category, outcomeOf(err), start)
		logger.Info("mutation rejected", zap.Error(err))
		return Result{}, err
	}

	c.setState(StateRefreshingOnSuccess)
	summary, refreshErr := c.Refresh(ctx)
	c.setState(StateIdle)
	c.observe(category, "ok", start)

	result := Result{Message: message, Summary: summary}
	if refreshErr != nil {
		result.Stale = true
		logger.Warn("mutation stored but summary refresh failed", zap.Int64("id", id), zap.Error(refreshErr))
	} else {
		logger.Info("mutation stored", zap.Int64("id", id))
	}

	c.publish(ctx, models.MutationEvent{
		ID:         uuid.NewString(),
		Kind:       kind,
		Category:   category,
		RecordID:   id,
		OccurredAt: c.now().UTC(),
		Summary:    summary,
	})

	return result, nil
}

func (c *Coordinator) publish(ctx context.Context, event models.MutationEvent) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.PublishMutation(ctx, event); err != nil {
		c.logger.Warn("failed to publish mutation event",
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}

func (c *Coordinator) observe(category models.Category, outcome string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveMutation(category, outcome, time.Since(start))
	}
}

func (c *Coordinator) setState(s State) {
	c.state.Store(int32(s))
}

func outcomeOf(err error) string {
	switch {
	case models.IsValidation(err):
		return "invalid"
	case models.IsConflict(err):
		return "conflict"
	case models.IsNetwork(err):
		return "network_error"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
