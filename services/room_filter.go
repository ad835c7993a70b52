package services

import (
	"strings"

	"hotel-frontend/models"
)

// Filter values that switch a criterion off.
const (
	FilterAll = "all"

	PriceBudget = "budget"
	PriceMid    = "mid"
	PriceLuxury = "luxury"
)

// Price band limits per night.
const (
	BudgetMaxPrice = 150.0
	MidMaxPrice    = 300.0
)

// FilterCriteria are the three independent room filters. Zero values and
// "all" are pass-through.
type FilterCriteria struct {
	Search string `form:"search" json:"search"`
	Type   string `form:"type" json:"type"`
	Price  string `form:"price" json:"price"`
}

// Active reports whether any criterion narrows the catalog.
func (c FilterCriteria) Active() bool {
	return c.Search != "" || isSet(c.Type) || isSet(c.Price)
}

func isSet(v string) bool {
	return v != "" && v != FilterAll
}

// FilterRooms returns the rooms that satisfy every active criterion, in
// catalog order. The search term is matched literally, case-insensitively,
// against name and description; it is not trimmed.
func FilterRooms(catalog []models.Room, criteria FilterCriteria) []models.Room {
	search := strings.ToLower(criteria.Search)
	out := make([]models.Room, 0, len(catalog))
	for _, room := range catalog {
		if search != "" &&
			!strings.Contains(strings.ToLower(room.Name), search) &&
			!strings.Contains(strings.ToLower(room.Description), search) {
			continue
		}
		if isSet(criteria.Type) && room.Type != criteria.Type {
			continue
		}
		if isSet(criteria.Price) && !InPriceBand(room.Price, criteria.Price) {
			continue
		}
		out = append(out, room)
	}
	return out
}

// InPriceBand reports whether a nightly price falls in the named band.
// Unknown bands match everything.
func InPriceBand(price float64, band string) bool {
	switch band {
	case PriceBudget:
		return price <= BudgetMaxPrice
	case PriceMid:
		return price > BudgetMaxPrice && price <= MidMaxPrice
	case PriceLuxury:
		return price > MidMaxPrice
	default:
		return true
	}
}
