package reporting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
)

// FoodIncomePolicy selects which food order attribute counts as income.
type FoodIncomePolicy string

const (
	// FoodIncomeBeverageQuantity sums beverage_quantity as the food income.
	// It is a volume, not money, but it is what the front desk has always
	// reported; keep it until the kitchen prices orders.
	FoodIncomeBeverageQuantity FoodIncomePolicy = "beverage_quantity"
	// FoodIncomeLineTotal prices each order as quantity * price_per_unit.
	FoodIncomeLineTotal FoodIncomePolicy = "line_total"
)

// ParseFoodIncomePolicy validates a policy name.
func ParseFoodIncomePolicy(value string) (FoodIncomePolicy, error) {
	switch FoodIncomePolicy(value) {
	case FoodIncomeBeverageQuantity, FoodIncomeLineTotal:
		return FoodIncomePolicy(value), nil
	default:
		return "", fmt.Errorf("unknown food income policy %q", value)
	}
}

// Aggregate folds records into a rollup using amount as the category's
// amount accessor. Invalid amounts count as zero.
func Aggregate[T any](records []T, amount func(T) models.Amount) models.Rollup {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(amount(r).Decimal())
	}
	return models.Rollup{Count: len(records), TotalAmount: total}
}

func bookingAmount(b models.RoomBooking) models.Amount { return b.Amount }
func supplyAmount(s models.Supply) models.Amount       { return s.Amount }
func salaryAmount(s models.SalaryRecord) models.Amount { return s.TotalPay }

func beverageQuantity(f models.FoodOrder) models.Amount { return f.BeverageQuantity }

func lineTotal(f models.FoodOrder) models.Amount {
	if !f.PricePerUnit.Valid() || !f.Quantity.Valid() {
		return models.Amount{}
	}
	return f.Quantity.Mul(f.PricePerUnit)
}

// Summarize combines four rollups. Rooms and food are income, supplies and
// salaries are expenditure.
func Summarize(rooms, food, supplies, salaries models.Rollup) models.FinancialSummary {
	income := rooms.TotalAmount.Add(food.TotalAmount)
	expenditure := supplies.TotalAmount.Add(salaries.TotalAmount)
	return models.FinancialSummary{
		RoomsBooked:      rooms,
		FoodOrders:       food,
		Supplies:         supplies,
		Salaries:         salaries,
		TotalIncome:      income,
		TotalExpenditure: expenditure,
		ProfitOrLoss:     income.Sub(expenditure),
	}
}

// Engine turns a snapshot of the four collections into a FinancialSummary.
type Engine struct {
	foodAmount func(models.FoodOrder) models.Amount
}

// NewEngine builds an engine for the given food income policy. An empty
// policy falls back to beverage quantity.
func NewEngine(policy FoodIncomePolicy) Engine {
	if policy == FoodIncomeLineTotal {
		return Engine{foodAmount: lineTotal}
	}
	return Engine{foodAmount: beverageQuantity}
}

// Rollups aggregates each collection of the snapshot.
func (e Engine) Rollups(s models.Snapshot) (rooms, food, supplies, salaries models.Rollup) {
	foodAmount := e.foodAmount
	if foodAmount == nil {
		foodAmount = beverageQuantity
	}
	return Aggregate(s.Bookings, bookingAmount),
		Aggregate(s.FoodOrders, foodAmount),
		Aggregate(s.Supplies, supplyAmount),
		Aggregate(s.Salaries, salaryAmount)
}

// Summarize computes the summary of a snapshot.
func (e Engine) Summarize(s models.Snapshot) models.FinancialSummary {
	return Summarize(e.Rollups(s))
}
