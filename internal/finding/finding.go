// Package finding holds the record type both evaluators report risks with.
package finding

import "time"

// DateLayout is the calendar-date format used for DetectedDate.
const DateLayout = "2006-01-02"

// Finding is a single reported risk. The JSON keys match the breach-search
// service's breach objects so remote results can be passed through unchanged.
type Finding struct {
	Name            string `json:"Name" yaml:"name"`
	DetectedDate    string `json:"BreachDate" yaml:"detected_date"`
	OccurrenceCount int64  `json:"PwnCount" yaml:"occurrence_count"`
	Description     string `json:"Description" yaml:"description"`
}

// Today formats now as a UTC calendar date.
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}

// Local builds a finding attributed to the evaluation date.
func Local(now time.Time, name string, count int64, description string) Finding {
	return Finding{
		Name:            name,
		DetectedDate:    Today(now),
		OccurrenceCount: count,
		Description:     description,
	}
}
