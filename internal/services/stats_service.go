package services

import (
	"sort"

	"diraBack/internal/models"
)

type StatsService struct{}

// Summarize derives the city breakdown the data screen renders: listings
// grouped by city, counted, sorted by count descending. Listings without a
// city are counted in the total but form no group. Ties keep first-seen
// input order, so the output is deterministic for a given input order.
func (s *StatsService) Summarize(apartments []models.Apartment) models.ApartmentSummary {
	summary := models.ApartmentSummary{TotalCount: len(apartments)}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, a := range apartments {
		if a.IsActive() {
			summary.ActiveCount++
		} else {
			summary.ClosedCount++
		}
		city := a.Address.City
		if city == "" {
			continue
		}
		if _, seen := counts[city]; !seen {
			order = append(order, city)
		}
		counts[city]++
	}

	stats := make([]models.CityStat, 0, len(order))
	maxCount := 0
	for _, city := range order {
		if counts[city] > maxCount {
			maxCount = counts[city]
		}
		stats = append(stats, models.CityStat{City: city, Count: counts[city]})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})

	// maxCount is zero only when there are no groups, in which case the
	// loop body never runs and no ratio is computed.
	for i := range stats {
		stats[i].BarRatio = float64(stats[i].Count) / float64(maxCount)
	}
	summary.Cities = stats
	return summary
}
