package availability

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
)

// ErrStaleSelection is returned when a fetch finished after a newer date was
// selected. Its result was discarded.
var ErrStaleSelection = errors.New("date selection changed before bookings arrived")

// ErrNoSelection is returned by Check before any date was loaded.
var ErrNoSelection = errors.New("no booking date selected")

// BookingLister fetches the bookings of a single day.
type BookingLister interface {
	ListBookings(ctx context.Context, date models.Date) ([]models.RoomBooking, error)
}

// Tracker keeps the booking set of the currently selected date. Selecting a
// new date cancels the previous fetch, and a response for an older selection
// is never applied.
type Tracker struct {
	lister BookingLister
	logger *zap.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	date       models.Date
	bookings   []models.RoomBooking
	loaded     bool
}

// NewTracker builds a tracker backed by lister.
func NewTracker(lister BookingLister, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{lister: lister, logger: logger}
}

// Select makes date the current selection and loads its bookings.
func (t *Tracker) Select(ctx context.Context, date models.Date) ([]models.RoomBooking, error) {
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.generation++
	gen := t.generation
	t.cancel = cancel
	t.mu.Unlock()

	bookings, err := t.lister.ListBookings(fetchCtx, date)

	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.generation {
		t.logger.Debug("discarding stale bookings response", zap.String("date", date.String()))
		return nil, ErrStaleSelection
	}
	t.cancel = nil
	if err != nil {
		return nil, fmt.Errorf("load bookings for %s: %w", date, err)
	}

	t.date = date
	t.bookings = append([]models.RoomBooking(nil), bookings...)
	t.loaded = true
	return bookings, nil
}

// Selected returns the date whose bookings are currently applied.
func (t *Tracker) Selected() (models.Date, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.date, t.loaded
}

// Check answers against the applied booking set of the selected date.
func (t *Tracker) Check(room string) (Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.loaded {
		return Result{}, ErrNoSelection
	}
	return Check(room, t.date, t.bookings), nil
}
