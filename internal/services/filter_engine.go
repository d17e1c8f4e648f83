package services

import (
	"strings"
	"time"

	"diraBack/internal/models"
)

// MatchesFilter evaluates one apartment against a filter. All predicate
// groups must hold; evaluation short-circuits on the first failure. The
// function is pure and total: missing fields degrade to neutral defaults
// (zero cost/rooms, empty strings) instead of failing, since the collection
// comes from a possibly incomplete client cache.
func MatchesFilter(a models.Apartment, f models.ApartmentFilter) bool {
	if f.PetsAllowed && !a.PetsAllowed {
		return false
	}
	if f.SmokingAllowed && !a.SmokingAllowed {
		return false
	}
	if f.HasParking && !a.HasParking {
		return false
	}
	if f.HasBalcony && !a.HasBalcony {
		return false
	}
	if f.HasElevator && !a.HasElevator {
		return false
	}
	if f.RentalType != "" && a.RentalType != f.RentalType {
		return false
	}
	// "none" is a matchable value here, distinct from an unset constraint.
	if f.BombShelter != "" && a.BombShelter != f.BombShelter {
		return false
	}
	if !containsFold(a.Address.City, f.City) {
		return false
	}
	if !containsFold(a.Address.Neighborhood, f.Neighborhood) {
		return false
	}
	if !inRange(a.Cost, f.PriceRange) {
		return false
	}
	if !inRange(a.Rooms, f.RoomsRange) {
		return false
	}
	if !entryDateInRange(a.EntryDate, f.EntryDateFrom, f.EntryDateTo) {
		return false
	}
	return true
}

// ApplyFilter returns the apartments matching f, preserving input order.
func ApplyFilter(apartments []models.Apartment, f models.ApartmentFilter) []models.Apartment {
	matched := make([]models.Apartment, 0, len(apartments))
	for _, a := range apartments {
		if MatchesFilter(a, f) {
			matched = append(matched, a)
		}
	}
	return matched
}

// FilterByStatus partitions by the status dimension, which is independent of
// the attribute filter. status may be "all", "active" or "closed".
func FilterByStatus(apartments []models.Apartment, status string) []models.Apartment {
	if status == "" || status == "all" {
		return apartments
	}
	matched := make([]models.Apartment, 0, len(apartments))
	for _, a := range apartments {
		if (status == "active") == a.IsActive() {
			matched = append(matched, a)
		}
	}
	return matched
}

func containsFold(value, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(substr))
}

func inRange(value float64, r *models.Range) bool {
	if r == nil {
		return true
	}
	return value >= r.Min && value <= r.Max
}

// entryDateInRange applies the date window only when both bounds are set and
// the apartment has an entry date. An apartment without one passes any
// window: it still accepts every move-in date. This is deliberately
// asymmetric with the numeric ranges, where a missing value counts as zero.
func entryDateInRange(entry, from, to *time.Time) bool {
	if from == nil || to == nil || entry == nil {
		return true
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), to.Location())
	return !entry.Before(start) && !entry.After(end)
}
