package models

// StatisticsSummary is the dashboard payload: report counts per status and
// per region, and deltas against the preceding week/month/year windows,
// as percentages.
type StatisticsSummary struct {
	Total         int64            `json:"total"`
	ByStatus      map[string]int64 `json:"by_status"`
	ByRegion      map[string]int64 `json:"by_region"`
	WeekDeltaPct  float64          `json:"week_delta_pct"`
	MonthDeltaPct float64          `json:"month_delta_pct"`
	YearDeltaPct  float64          `json:"year_delta_pct"`
}
