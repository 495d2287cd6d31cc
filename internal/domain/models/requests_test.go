package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBookingRequestValidate(t *testing.T) {
	good := BookingRequest{RoomName: "101", CustomerName: "Jane", Amount: AmountFromInt(1500), BookingDate: NewDate(2025, 5, 1)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []BookingRequest{
		{CustomerName: "Jane", Amount: AmountFromInt(1), BookingDate: NewDate(2025, 5, 1)},
		{RoomName: "  ", CustomerName: "Jane", Amount: AmountFromInt(1), BookingDate: NewDate(2025, 5, 1)},
		{RoomName: "101", Amount: AmountFromInt(1), BookingDate: NewDate(2025, 5, 1)},
		{RoomName: "101", CustomerName: "Jane", BookingDate: NewDate(2025, 5, 1)},
		{RoomName: "101", CustomerName: "Jane", Amount: AmountFromInt(0), BookingDate: NewDate(2025, 5, 1)},
		{RoomName: "101", CustomerName: "Jane", Amount: AmountFromInt(10)},
	}
	for i, r := range bads {
		if err := r.Validate(); !IsValidation(err) {
			t.Fatalf("case %d expected validation error, got %v", i, err)
		}
	}
}

func TestSupplyRequestRejectsNegativeAmount(t *testing.T) {
	r := SupplyRequest{Name: "Soap", Amount: AmountFromInt(-5), Quantity: AmountFromInt(2), Unit: "pcs", SupplyDate: NewDate(2025, 5, 1)}
	err := r.Validate()
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve := err.(*ValidationError); ve.Field != "amount" {
		t.Fatalf("expected amount field, got %s", ve.Field)
	}
}

func TestFoodOrderRequestValidate(t *testing.T) {
	good := FoodOrderRequest{FoodType: "Meat", Quantity: AmountFromInt(2), Beverage: "Water", BeverageQuantity: AmountFromInt(0), OrderDate: NewDate(2025, 5, 1)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bad := good
	bad.Quantity = AmountFromInt(0)
	if err := bad.Validate(); !IsValidation(err) {
		t.Fatalf("expected error for zero quantity")
	}
	bad = good
	bad.BeverageQuantity = AmountFromInt(-1)
	if err := bad.Validate(); !IsValidation(err) {
		t.Fatalf("expected error for negative beverage quantity")
	}
}

func TestSalaryRequestFinalPay(t *testing.T) {
	r := SalaryRequest{EmployeeName: "Ann", HoursWorked: AmountFromInt(8), TotalPay: AmountFromInt(1000), TotalDamages: AmountFromInt(150), Date: NewDate(2025, 5, 1)}
	if err := r.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	rec := r.Record()
	if !rec.FinalTotalPay.Decimal().Equal(decimal.NewFromInt(850)) {
		t.Fatalf("final pay = %s, want 850", rec.FinalTotalPay)
	}

	noDamages := r
	noDamages.TotalDamages = Amount{}
	if got := noDamages.Record().FinalTotalPay.Decimal(); !got.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("missing damages should count as zero, got %s", got)
	}

	zeroHours := r
	zeroHours.HoursWorked = AmountFromInt(0)
	if err := zeroHours.Validate(); !IsValidation(err) {
		t.Fatalf("expected error for zero hours")
	}
}
