// Package memory keeps the record collections in process memory.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
	"github.com/mamadbah2/hotelbudget/internal/repository"
)

// Repository is a mutex-guarded in-memory RecordRepository.
type Repository struct {
	mu         sync.RWMutex
	nextID     int64
	bookings   []models.RoomBooking
	foodOrders []models.FoodOrder
	supplies   []models.Supply
	salaries   []models.SalaryRecord
}

var _ repository.RecordRepository = (*Repository)(nil)

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) ListBookings(_ context.Context, date models.Date) ([]models.RoomBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.RoomBooking, 0, len(r.bookings))
	for _, b := range r.bookings {
		if date.IsZero() || b.BookingDate.Equal(date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *Repository) ListFoodOrders(context.Context) ([]models.FoodOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.FoodOrder{}, r.foodOrders...), nil
}

func (r *Repository) ListSupplies(context.Context) ([]models.Supply, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Supply{}, r.supplies...), nil
}

func (r *Repository) ListSalaries(context.Context) ([]models.SalaryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.SalaryRecord{}, r.salaries...), nil
}

func (r *Repository) InsertBooking(_ context.Context, b models.RoomBooking) (models.RoomBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := strings.TrimSpace(b.RoomName)
	for _, existing := range r.bookings {
		if strings.TrimSpace(existing.RoomName) == room && existing.BookingDate.Equal(b.BookingDate) {
			return models.RoomBooking{}, repository.BookingConflict(room, b.BookingDate)
		}
	}

	b.ID = r.allocID()
	b.RoomName = room
	r.bookings = append(r.bookings, b)
	return b, nil
}

func (r *Repository) InsertFoodOrder(_ context.Context, f models.FoodOrder) (models.FoodOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f.ID = r.allocID()
	r.foodOrders = append(r.foodOrders, f)
	return f, nil
}

func (r *Repository) InsertSupply(_ context.Context, s models.Supply) (models.Supply, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = r.allocID()
	r.supplies = append(r.supplies, s)
	return s, nil
}

func (r *Repository) InsertSalary(_ context.Context, s models.SalaryRecord) (models.SalaryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.TrimSpace(s.EmployeeName)
	for _, existing := range r.salaries {
		if strings.TrimSpace(existing.EmployeeName) == name && existing.Date.Equal(s.Date) {
			return models.SalaryRecord{}, repository.SalaryConflict(name, s.Date)
		}
	}

	s.ID = r.allocID()
	s.EmployeeName = name
	r.salaries = append(r.salaries, s)
	return s, nil
}

func (r *Repository) Delete(_ context.Context, category models.Category, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed bool
	switch category {
	case models.CategoryRoomBookings:
		r.bookings, removed = without(r.bookings, id, func(b models.RoomBooking) int64 { return b.ID })
	case models.CategoryFoodOrders:
		r.foodOrders, removed = without(r.foodOrders, id, func(f models.FoodOrder) int64 { return f.ID })
	case models.CategorySupplies:
		r.supplies, removed = without(r.supplies, id, func(s models.Supply) int64 { return s.ID })
	case models.CategorySalaries:
		r.salaries, removed = without(r.salaries, id, func(s models.SalaryRecord) int64 { return s.ID })
	default:
		return fmt.Errorf("delete from %q: unknown category", category)
	}

	if !removed {
		return fmt.Errorf("delete %s/%d: %w", category, id, models.ErrNotFound)
	}
	return nil
}

// Close is a no-op.
func (r *Repository) Close() error { return nil }

// allocID must be called with mu held.
func (r *Repository) allocID() int64 {
	r.nextID++
	return r.nextID
}

func without[T any](rows []T, id int64, idOf func(T) int64) ([]T, bool) {
	for i, row := range rows {
		if idOf(row) == id {
			return append(rows[:i:i], rows[i+1:]...), true
		}
	}
	return rows, false
}
