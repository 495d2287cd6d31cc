package models

// RoomBooking is a persisted room reservation. (RoomName, BookingDate) is unique.
type RoomBooking struct {
	ID           int64  `json:"id"`
	RoomName     string `json:"room_name"`
	CustomerName string `json:"customer_name"`
	Amount       Amount `json:"amount"`
	BookingDate  Date   `json:"booking_date"`
}

// FoodOrder is a kitchen order. Quantity is kg for meat and grams for vegetables.
type FoodOrder struct {
	ID               int64  `json:"id"`
	FoodType         string `json:"food_type"`
	Quantity         Amount `json:"quantity"`
	Beverage         string `json:"beverage"`
	BeverageQuantity Amount `json:"beverage_quantity"`
	PricePerUnit     Amount `json:"price_per_unit"`
	OrderDate        Date   `json:"order_date"`
}

// Supply is a purchase of consumables. Amount is the total cost.
type Supply struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Amount     Amount `json:"amount"`
	Quantity   Amount `json:"quantity"`
	Unit       string `json:"unit"`
	SupplyDate Date   `json:"supply_date"`
}

// SalaryRecord is a day's pay for one employee. (EmployeeName, Date) is unique.
type SalaryRecord struct {
	ID            int64  `json:"id"`
	EmployeeName  string `json:"employee_name"`
	HoursWorked   Amount `json:"hours_worked"`
	TotalPay      Amount `json:"total_pay"`
	TotalDamages  Amount `json:"total_damages"`
	FinalTotalPay Amount `json:"final_total_pay"`
	Date          Date   `json:"date"`
}

// Snapshot holds the four collections as read together for one summary.
type Snapshot struct {
	Bookings   []RoomBooking
	FoodOrders []FoodOrder
	Supplies   []Supply
	Salaries   []SalaryRecord
}
