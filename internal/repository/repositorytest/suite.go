// Package repositorytest holds behaviour checks shared by every
// RecordRepository implementation.
package repositorytest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
	"github.com/mamadbah2/hotelbudget/internal/repository"
)

// Run exercises a fresh repository returned by open for each sub-test.
func Run(t *testing.T, open func(t *testing.T) repository.RecordRepository) {
	t.Helper()

	t.Run("booking uniqueness", func(t *testing.T) { testBookingUniqueness(t, open(t)) })
	t.Run("bookings filtered by date", func(t *testing.T) { testBookingsByDate(t, open(t)) })
	t.Run("salary uniqueness", func(t *testing.T) { testSalaryUniqueness(t, open(t)) })
	t.Run("amounts round trip", func(t *testing.T) { testAmounts(t, open(t)) })
	t.Run("delete", func(t *testing.T) { testDelete(t, open(t)) })
}

func day(d int) models.Date { return models.NewDate(2025, time.June, d) }

func testBookingUniqueness(t *testing.T, repo repository.RecordRepository) {
	ctx := context.Background()
	b := models.RoomBooking{RoomName: "101", CustomerName: "Alice", Amount: models.AmountFromInt(1500), BookingDate: day(10)}

	first, err := repo.InsertBooking(ctx, b)
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if first.ID == 0 {
		t.Fatalf("expected an id to be assigned")
	}

	dup := b
	dup.RoomName = " 101 "
	dup.CustomerName = "Bob"
	_, err = repo.InsertBooking(ctx, dup)
	var conflict *models.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.Message != "Room 101 is already booked for 2025-06-10." {
		t.Fatalf("conflict message = %q", conflict.Message)
	}

	other := b
	other.BookingDate = day(11)
	if _, err := repo.InsertBooking(ctx, other); err != nil {
		t.Fatalf("same room on another day: %v", err)
	}

	all, err := repo.ListBookings(ctx, models.Date{})
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(all))
	}
}

func testBookingsByDate(t *testing.T, repo repository.RecordRepository) {
	ctx := context.Background()
	for i, room := range []string{"101", "102", "103"} {
		_, err := repo.InsertBooking(ctx, models.RoomBooking{
			RoomName: room, CustomerName: "Guest", Amount: models.AmountFromInt(100), BookingDate: day(10 + i%2),
		})
		if err != nil {
			t.Fatalf("insert %s: %v", room, err)
		}
	}

	got, err := repo.ListBookings(ctx, day(10))
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 bookings on the 10th, got %d", len(got))
	}
	for _, b := range got {
		if !b.BookingDate.Equal(day(10)) {
			t.Fatalf("booking %d is on %s", b.ID, b.BookingDate)
		}
	}
}

func testSalaryUniqueness(t *testing.T, repo repository.RecordRepository) {
	ctx := context.Background()
	s := models.SalaryRecord{
		EmployeeName:  "Bob",
		HoursWorked:   models.AmountFromInt(8),
		TotalPay:      models.AmountFromInt(1000),
		TotalDamages:  models.AmountFromInt(150),
		FinalTotalPay: models.AmountFromInt(850),
		Date:          day(1),
	}
	if _, err := repo.InsertSalary(ctx, s); err != nil {
		t.Fatalf("first salary: %v", err)
	}
	if _, err := repo.InsertSalary(ctx, s); !models.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}

	s.Date = day(2)
	if _, err := repo.InsertSalary(ctx, s); err != nil {
		t.Fatalf("next day salary: %v", err)
	}
}

func testAmounts(t *testing.T, repo repository.RecordRepository) {
	ctx := context.Background()

	if _, err := repo.InsertSupply(ctx, models.Supply{
		Name: "Soap", Amount: models.AmountFromFloat(499.99), Quantity: models.AmountFromInt(3), Unit: "pcs", SupplyDate: day(1),
	}); err != nil {
		t.Fatalf("InsertSupply: %v", err)
	}
	if _, err := repo.InsertFoodOrder(ctx, models.FoodOrder{
		FoodType: "Meat", Quantity: models.AmountFromInt(2), Beverage: "Soda", BeverageQuantity: models.AmountFromInt(4), OrderDate: day(1),
	}); err != nil {
		t.Fatalf("InsertFoodOrder: %v", err)
	}

	supplies, err := repo.ListSupplies(ctx)
	if err != nil || len(supplies) != 1 {
		t.Fatalf("ListSupplies = %v, %v", supplies, err)
	}
	if got := supplies[0].Amount.String(); got != "499.99" {
		t.Fatalf("supply amount = %s", got)
	}

	orders, err := repo.ListFoodOrders(ctx)
	if err != nil || len(orders) != 1 {
		t.Fatalf("ListFoodOrders = %v, %v", orders, err)
	}
	if orders[0].PricePerUnit.Valid() {
		t.Fatalf("missing price should stay missing, got %s", orders[0].PricePerUnit)
	}
	if got := orders[0].BeverageQuantity.String(); got != "4" {
		t.Fatalf("beverage quantity = %s", got)
	}
	if !orders[0].OrderDate.Equal(day(1)) {
		t.Fatalf("order date = %s", orders[0].OrderDate)
	}
}

func testDelete(t *testing.T, repo repository.RecordRepository) {
	ctx := context.Background()
	b, err := repo.InsertBooking(ctx, models.RoomBooking{
		RoomName: "101", CustomerName: "Alice", Amount: models.AmountFromInt(1500), BookingDate: day(10),
	})
	if err != nil {
		t.Fatalf("InsertBooking: %v", err)
	}

	if err := repo.Delete(ctx, models.CategoryRoomBookings, b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, models.CategoryRoomBookings, b.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}

	if _, err := repo.InsertBooking(ctx, models.RoomBooking{
		RoomName: "101", CustomerName: "Carol", Amount: models.AmountFromInt(1200), BookingDate: day(10),
	}); err != nil {
		t.Fatalf("rebooking a cancelled room: %v", err)
	}
}
