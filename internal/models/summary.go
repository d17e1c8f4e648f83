package models

// CityStat is one row of the per-city breakdown. BarRatio is the group count
// relative to the largest group, in [0,1], used by the client as a
// proportional bar width.
type CityStat struct {
	City     string  `json:"city"`
	Count    int     `json:"count"`
	BarRatio float64 `json:"bar_ratio"`
}

type ApartmentSummary struct {
	TotalCount  int        `json:"total_count"`
	ActiveCount int        `json:"active_count"`
	ClosedCount int        `json:"closed_count"`
	Cities      []CityStat `json:"cities"`
}

// FeedEvent is pushed to websocket feed subscribers when the listing
// collection changes.
type FeedEvent struct {
	Type        string `json:"type"` // created | updated | closed | deleted | like_toggled
	ApartmentID string `json:"apartment_id"`
	LikeCount   int    `json:"like_count,omitempty"`
}
