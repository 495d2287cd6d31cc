package models

import "fmt"

// Category enumerates the ledger's record collections. Values double as the
// REST resource names of the record store.
type Category string

const (
	CategoryRoomBookings Category = "room-bookings"
	CategoryFoodOrders   Category = "food-orders"
	CategorySupplies     Category = "supplies"
	CategorySalaries     Category = "salaries"
)

// Categories returns every category in summary order.
func Categories() []Category {
	return []Category{CategoryRoomBookings, CategoryFoodOrders, CategorySupplies, CategorySalaries}
}

// ParseCategory maps a resource name to its Category.
func ParseCategory(value string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == value {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", value)
}

// IsIncome reports whether the category contributes to income. Rooms and food
// are income; supplies and salaries are expenditure.
func (c Category) IsIncome() bool {
	return c == CategoryRoomBookings || c == CategoryFoodOrders
}

// ListKey is the JSON key wrapping the collection in a list response.
func (c Category) ListKey() string {
	switch c {
	case CategoryRoomBookings:
		return "bookings"
	case CategoryFoodOrders:
		return "foodOrders"
	case CategorySupplies:
		return "supplies"
	case CategorySalaries:
		return "salaries"
	default:
		return string(c)
	}
}

// Deletable reports whether records of the category can be removed by id.
func (c Category) Deletable() bool {
	switch c {
	case CategoryRoomBookings, CategoryFoodOrders, CategorySupplies, CategorySalaries:
		return true
	default:
		return false
	}
}
