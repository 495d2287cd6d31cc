// Package repository defines the persistence contract of the record store.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
)

// RecordRepository persists the four record collections. Inserts return the
// stored record with its id. A second booking of a room for the same day, or a
// second payment of an employee for the same day, is a *models.ConflictError.
// Deleting an unknown id returns models.ErrNotFound.
type RecordRepository interface {
	ListBookings(ctx context.Context, date models.Date) ([]models.RoomBooking, error)
	ListFoodOrders(ctx context.Context) ([]models.FoodOrder, error)
	ListSupplies(ctx context.Context) ([]models.Supply, error)
	ListSalaries(ctx context.Context) ([]models.SalaryRecord, error)

	InsertBooking(ctx context.Context, b models.RoomBooking) (models.RoomBooking, error)
	InsertFoodOrder(ctx context.Context, f models.FoodOrder) (models.FoodOrder, error)
	InsertSupply(ctx context.Context, s models.Supply) (models.Supply, error)
	InsertSalary(ctx context.Context, s models.SalaryRecord) (models.SalaryRecord, error)

	Delete(ctx context.Context, category models.Category, id int64) error
	Close() error
}

// BookingConflict is the store's answer to a double booking.
func BookingConflict(room string, date models.Date) *models.ConflictError {
	return &models.ConflictError{
		Message: fmt.Sprintf("Room %s is already booked for %s.", strings.TrimSpace(room), date),
	}
}

// SalaryConflict is the store's answer to a second payment on the same day.
func SalaryConflict(employee string, date models.Date) *models.ConflictError {
	return &models.ConflictError{
		Message: fmt.Sprintf("%s has already been paid for %s.", strings.TrimSpace(employee), date),
	}
}
