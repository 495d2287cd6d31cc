package models

import "strings"

// BookingRequest is the create payload for a room booking.
type BookingRequest struct {
	RoomName     string `json:"roomName"`
	CustomerName string `json:"customerName"`
	Amount       Amount `json:"amount"`
	BookingDate  Date   `json:"bookingDate"`
}

// Normalize trims free-text fields.
func (r BookingRequest) Normalize() BookingRequest {
	r.RoomName = strings.TrimSpace(r.RoomName)
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	return r
}

// Validate checks required fields. The calendar rule (no past dates) depends
// on the clock and lives with the availability checker.
func (r BookingRequest) Validate() error {
	r = r.Normalize()
	switch {
	case r.RoomName == "":
		return NewValidationError("roomName", "All fields are required.")
	case r.CustomerName == "":
		return NewValidationError("customerName", "All fields are required.")
	case !r.Amount.Valid():
		return NewValidationError("amount", "All fields are required.")
	case r.BookingDate.IsZero():
		return NewValidationError("bookingDate", "All fields are required.")
	case !r.Amount.IsPositive():
		return NewValidationError("amount", "Amount must be greater than zero.")
	}
	return nil
}

// Record converts the request into the persisted shape.
func (r BookingRequest) Record() RoomBooking {
	r = r.Normalize()
	return RoomBooking{
		RoomName:     r.RoomName,
		CustomerName: r.CustomerName,
		Amount:       r.Amount,
		BookingDate:  r.BookingDate,
	}
}

// FoodOrderRequest is the create payload for a food order. PricePerUnit is
// optional and only used by the line-total income policy.
type FoodOrderRequest struct {
	FoodType         string `json:"foodType"`
	Quantity         Amount `json:"quantity"`
	Beverage         string `json:"beverage"`
	BeverageQuantity Amount `json:"beverageQuantity"`
	PricePerUnit     Amount `json:"pricePerUnit"`
	OrderDate        Date   `json:"orderDate"`
}

// Validate mirrors the order form: quantity must be positive and the beverage
// quantity may be zero but not negative.
func (r FoodOrderRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.FoodType) == "":
		return NewValidationError("foodType", "Please fill in all fields correctly.")
	case !r.Quantity.IsPositive():
		return NewValidationError("quantity", "Quantity must be greater than zero.")
	case strings.TrimSpace(r.Beverage) == "":
		return NewValidationError("beverage", "Please fill in all fields correctly.")
	case r.BeverageQuantity.IsNegative():
		return NewValidationError("beverageQuantity", "Beverage quantity cannot be negative.")
	case r.PricePerUnit.IsNegative():
		return NewValidationError("pricePerUnit", "Price per unit cannot be negative.")
	case r.OrderDate.IsZero():
		return NewValidationError("orderDate", "Please fill in all fields correctly.")
	}
	return nil
}

// Record converts the request into the persisted shape.
func (r FoodOrderRequest) Record() FoodOrder {
	bev := r.BeverageQuantity
	if !bev.Valid() {
		bev = AmountFromInt(0)
	}
	return FoodOrder{
		FoodType:         strings.TrimSpace(r.FoodType),
		Quantity:         r.Quantity,
		Beverage:         strings.TrimSpace(r.Beverage),
		BeverageQuantity: bev,
		PricePerUnit:     r.PricePerUnit,
		OrderDate:        r.OrderDate,
	}
}

// SupplyRequest is the create payload for a supply purchase.
type SupplyRequest struct {
	Name       string `json:"name"`
	Amount     Amount `json:"amount"`
	Quantity   Amount `json:"quantity"`
	Unit       string `json:"unit"`
	SupplyDate Date   `json:"supplyDate"`
}

// Validate rejects blank text fields and non-positive amount or quantity.
func (r SupplyRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return NewValidationError("name", "Please fill in all fields correctly.")
	case !r.Amount.IsPositive():
		return NewValidationError("amount", "Amount must be greater than zero.")
	case !r.Quantity.IsPositive():
		return NewValidationError("quantity", "Quantity must be greater than zero.")
	case strings.TrimSpace(r.Unit) == "":
		return NewValidationError("unit", "Please fill in all fields correctly.")
	case r.SupplyDate.IsZero():
		return NewValidationError("supplyDate", "Please fill in all fields correctly.")
	}
	return nil
}

// Record converts the request into the persisted shape.
func (r SupplyRequest) Record() Supply {
	return Supply{
		Name:       strings.TrimSpace(r.Name),
		Amount:     r.Amount,
		Quantity:   r.Quantity,
		Unit:       strings.TrimSpace(r.Unit),
		SupplyDate: r.SupplyDate,
	}
}

// SalaryRequest is the create payload for a salary entry. The wire format is
// snake_case, unlike the other create payloads.
type SalaryRequest struct {
	EmployeeName  string `json:"employee_name"`
	HoursWorked   Amount `json:"hours_worked"`
	TotalPay      Amount `json:"total_pay"`
	TotalDamages  Amount `json:"total_damages"`
	FinalTotalPay Amount `json:"final_total_pay"`
	Date          Date   `json:"date"`
}

// Validate checks the salary form rules. Missing damages count as zero.
func (r SalaryRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.EmployeeName) == "":
		return NewValidationError("employee_name", "Please fill in all fields correctly.")
	case !r.HoursWorked.IsPositive():
		return NewValidationError("hours_worked", "Hours worked must be greater than zero.")
	case !r.TotalPay.IsPositive():
		return NewValidationError("total_pay", "Total pay must be greater than zero.")
	case r.TotalDamages.IsNegative():
		return NewValidationError("total_damages", "Damages cannot be negative.")
	case r.Date.IsZero():
		return NewValidationError("date", "Please fill in all fields correctly.")
	}
	return nil
}

// WithFinalPay fills FinalTotalPay as total pay minus damages.
func (r SalaryRequest) WithFinalPay() SalaryRequest {
	if !r.TotalDamages.Valid() {
		r.TotalDamages = AmountFromInt(0)
	}
	r.FinalTotalPay = r.TotalPay.Sub(r.TotalDamages)
	return r
}

// Record converts the request into the persisted shape, recomputing final pay.
func (r SalaryRequest) Record() SalaryRecord {
	r = r.WithFinalPay()
	return SalaryRecord{
		EmployeeName:  strings.TrimSpace(r.EmployeeName),
		HoursWorked:   r.HoursWorked,
		TotalPay:      r.TotalPay,
		TotalDamages:  r.TotalDamages,
		FinalTotalPay: r.FinalTotalPay,
		Date:          r.Date,
	}
}
