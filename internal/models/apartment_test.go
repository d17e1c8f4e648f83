package models

import "testing"

func TestIsActive(t *testing.T) {
	cases := []struct {
		status ApartmentStatus
		want   bool
	}{
		{StatusActive, true},
		{"", true},
		{StatusClosed, false},
	}
	for _, c := range cases {
		a := Apartment{Status: c.status}
		if a.IsActive() != c.want {
			t.Errorf("status %q: expected IsActive=%v", c.status, c.want)
		}
	}
}

func TestLikedBy(t *testing.T) {
	a := Apartment{Likes: []string{"u1", "u2"}}

	if !a.LikedBy("u1") {
		t.Errorf("u1 is a member")
	}
	if a.LikedBy("u3") {
		t.Errorf("u3 is not a member")
	}
	if a.LikedBy("") {
		t.Errorf("the empty user id never matches")
	}
}

func TestNormalizeRentalType(t *testing.T) {
	if got := NormalizeRentalType(" Sublet "); got != RentalTypeSublet {
		t.Errorf("expected sublet, got %q", got)
	}
	if got := NormalizeRentalType("penthouse"); got != "" {
		t.Errorf("unknown type must collapse to empty, got %q", got)
	}
}

func TestNormalizeBombShelter(t *testing.T) {
	if got := NormalizeBombShelter("100meters"); got != BombShelter100Meters {
		t.Errorf("expected 100meters, got %q", got)
	}
	if got := NormalizeBombShelter("bunker"); got != BombShelterNone {
		t.Errorf("unknown shelter must default to none, got %q", got)
	}
}

func TestNormalizeStatus(t *testing.T) {
	if got := NormalizeStatus(""); got != StatusActive {
		t.Errorf("empty status must default to active, got %q", got)
	}
	if got := NormalizeStatus("CLOSED"); got != StatusClosed {
		t.Errorf("expected closed, got %q", got)
	}
	if got := NormalizeStatus("archived"); got != StatusActive {
		t.Errorf("unknown status must default to active, got %q", got)
	}
}

func TestNormalize_DropsEmptyFurnitureRows(t *testing.T) {
	a := Apartment{
		Furniture: []FurnitureItem{
			{Item: "sofa", Quantity: 1},
			{Item: "", Quantity: 2},
			{Item: "chair", Quantity: 0},
			{Item: "table", Quantity: -1},
		},
	}

	got := a.Normalize()
	if len(got.Furniture) != 1 || got.Furniture[0].Item != "sofa" {
		t.Fatalf("expected only the sofa row to survive, got %v", got.Furniture)
	}
}

func TestCloseReasons_FixedSet(t *testing.T) {
	for _, id := range []string{"app", "outside", "regret", "problems"} {
		if _, ok := CloseReasons[id]; !ok {
			t.Errorf("missing close reason %q", id)
		}
	}
	if len(CloseReasons) != 4 {
		t.Errorf("expected exactly 4 close reasons, got %d", len(CloseReasons))
	}
}
