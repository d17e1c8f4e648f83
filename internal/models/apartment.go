package models

import (
	"strings"
	"time"
)

type RentalType string

const (
	RentalTypeRoom      RentalType = "room"
	RentalTypeApartment RentalType = "apartment"
	RentalTypeSublet    RentalType = "sublet"
)

type BombShelter string

const (
	BombShelterApartment BombShelter = "apartment"
	BombShelterBuilding  BombShelter = "building"
	BombShelter100Meters BombShelter = "100meters"
	BombShelterNone      BombShelter = "none"
)

type ApartmentStatus string

const (
	StatusActive ApartmentStatus = "active"
	StatusClosed ApartmentStatus = "closed"
)

type Address struct {
	City         string `json:"city"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	Floor        int    `json:"floor"`
}

type FurnitureItem struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

type OpenHouse struct {
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Registrants []string `json:"registrants,omitempty"`
}

type Apartment struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Username       string          `json:"username"`
	UserAvatar     string          `json:"user_avatar,omitempty"`
	Images         []string        `json:"images"`
	Video          *string         `json:"video,omitempty"`
	Size           float64         `json:"size"`
	Rooms          float64         `json:"rooms"`
	Cost           float64         `json:"cost"`
	Arnona         float64         `json:"arnona,omitempty"`
	Address        Address         `json:"address"`
	PetsAllowed    bool            `json:"pets_allowed"`
	SmokingAllowed bool            `json:"smoking_allowed"`
	HasParking     bool            `json:"has_parking"`
	HasBalcony     bool            `json:"has_balcony"`
	HasElevator    bool            `json:"has_elevator"`
	BombShelter    BombShelter     `json:"bomb_shelter"`
	Furniture      []FurnitureItem `json:"furniture,omitempty"`
	RentalType     RentalType      `json:"rental_type"`
	PhoneNumber    string          `json:"phone_number"`
	EntryDate      *time.Time      `json:"entry_date,omitempty"`
	OpenHouse      *OpenHouse      `json:"open_house,omitempty"`
	Status         ApartmentStatus `json:"status"`
	CloseReason    string          `json:"close_reason,omitempty"`
	Likes          []string        `json:"likes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      *time.Time      `json:"updated_at,omitempty"`
}

// IsActive reports the status partition: an apartment with an empty or
// "active" status is active, only an explicit "closed" is not.
func (a Apartment) IsActive() bool {
	return a.Status == "" || a.Status == StatusActive
}

// LikedBy tests membership in the likes set. The set is the source of truth
// for toggle decisions; callers must not cache the result across mutations.
func (a Apartment) LikedBy(userID string) bool {
	if userID == "" {
		return false
	}
	for _, id := range a.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// NormalizeRentalType collapses unknown values to an empty RentalType.
func NormalizeRentalType(s string) RentalType {
	switch RentalType(strings.ToLower(strings.TrimSpace(s))) {
	case RentalTypeRoom:
		return RentalTypeRoom
	case RentalTypeApartment:
		return RentalTypeApartment
	case RentalTypeSublet:
		return RentalTypeSublet
	}
	return ""
}

// NormalizeBombShelter collapses unknown values to "none".
func NormalizeBombShelter(s string) BombShelter {
	switch BombShelter(strings.ToLower(strings.TrimSpace(s))) {
	case BombShelterApartment:
		return BombShelterApartment
	case BombShelterBuilding:
		return BombShelterBuilding
	case BombShelter100Meters:
		return BombShelter100Meters
	}
	return BombShelterNone
}

// NormalizeStatus defaults empty and unknown statuses to active. Older
// clients omit the field entirely, which used to leave empty strings in the
// database.
func NormalizeStatus(s string) ApartmentStatus {
	if ApartmentStatus(strings.ToLower(strings.TrimSpace(s))) == StatusClosed {
		return StatusClosed
	}
	return StatusActive
}

// Normalize applies the ingestion-boundary rules once so the filter engine
// and aggregation can assume a fully defaulted record: enums collapsed,
// status defaulted, furniture rows with non-positive quantities dropped.
func (a Apartment) Normalize() Apartment {
	a.RentalType = NormalizeRentalType(string(a.RentalType))
	a.BombShelter = NormalizeBombShelter(string(a.BombShelter))
	a.Status = NormalizeStatus(string(a.Status))
	if len(a.Furniture) > 0 {
		kept := a.Furniture[:0]
		for _, f := range a.Furniture {
			if strings.TrimSpace(f.Item) != "" && f.Quantity > 0 {
				kept = append(kept, f)
			}
		}
		a.Furniture = kept
	}
	return a
}

// CloseReasons the client offers when a listing is closed.
var CloseReasons = map[string]string{
	"app":      "Rented from the app",
	"outside":  "Rented outside the app",
	"regret":   "Regretted publishing",
	"problems": "Had problems with the app",
}
