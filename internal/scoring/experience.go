// Package scoring implements the deterministic candidate-requirement scorer
// and the experience duration calculator behind it.
package scoring

import (
	"time"

	"github.com/daniel/talent-ranker/internal/types"
)

// daysPerYear converts day counts to fractional years, averaging leap years.
const daysPerYear = 365.25

// TotalYears sums the duration of every experience entry in fractional years.
// An entry with no start date contributes nothing. An entry with no end date
// is treated as ongoing and measured up to today. Overlapping entries are
// counted independently, and an end before its start subtracts; durations are
// reported exactly as the dates imply.
func TotalYears(experiences []types.Experience, today time.Time) float64 {
	var total float64
	for _, exp := range experiences {
		if exp.StartDate.IsAbsent() {
			continue
		}
		end := today
		if !exp.EndDate.IsAbsent() {
			end = exp.EndDate.Time
		}
		days := end.Sub(exp.StartDate.Time).Hours() / 24
		total += days / daysPerYear
	}
	return total
}
