package models

import "time"

// Range is an inclusive numeric bound used for price and room filters.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ApartmentFilter carries one optional constraint per listing attribute.
// Boolean fields mean "must be true" when set; zero values mean don't-care.
// A filter replaces the previous one atomically, the engine never sees a
// partially applied set of constraints.
type ApartmentFilter struct {
	PetsAllowed    bool        `json:"pets_allowed"`
	SmokingAllowed bool        `json:"smoking_allowed"`
	HasParking     bool        `json:"has_parking"`
	HasBalcony     bool        `json:"has_balcony"`
	HasElevator    bool        `json:"has_elevator"`
	RentalType     RentalType  `json:"rental_type,omitempty"`
	BombShelter    BombShelter `json:"bomb_shelter,omitempty"`
	City           string      `json:"city,omitempty"`
	Neighborhood   string      `json:"neighborhood,omitempty"`
	PriceRange     *Range      `json:"price_range,omitempty"`
	RoomsRange     *Range      `json:"rooms_range,omitempty"`
	EntryDateFrom  *time.Time  `json:"entry_date_from,omitempty"`
	EntryDateTo    *time.Time  `json:"entry_date_to,omitempty"`
}

// Normalize collapses enum constraints the same way listing ingestion does,
// except that unknown values become don't-care instead of defaults: a filter
// must never reject everything because a client sent garbage.
func (f ApartmentFilter) Normalize() ApartmentFilter {
	if f.RentalType != "" {
		f.RentalType = NormalizeRentalType(string(f.RentalType))
	}
	if f.BombShelter != "" {
		switch BombShelter(f.BombShelter) {
		case BombShelterApartment, BombShelterBuilding, BombShelter100Meters, BombShelterNone:
		default:
			f.BombShelter = ""
		}
	}
	return f
}
