package habits

import "time"

// periodStart returns the UTC start of the completion period containing now:
// midnight for daily habits, Monday midnight for weekly, the first of the
// month for monthly. Entries on or after this instant count against the
// habit's target for the period.
func periodStart(frequency string, now time.Time) time.Time {
	now = now.UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch frequency {
	case FrequencyWeekly:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return day.AddDate(0, 0, -(weekday - 1))
	case FrequencyMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}
