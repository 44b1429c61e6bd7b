package habits

import (
	"testing"
	"time"
)

func TestPeriodStart(t *testing.T) {
	// Wednesday 2025-06-18 15:30 UTC
	now := time.Date(2025, 6, 18, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		frequency string
		want      time.Time
	}{
		{FrequencyDaily, time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)},
		{FrequencyWeekly, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)},
		{FrequencyMonthly, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got := periodStart(tt.frequency, now)
		if !got.Equal(tt.want) {
			t.Errorf("periodStart(%s) = %v, want %v", tt.frequency, got, tt.want)
		}
	}
}

func TestPeriodStart_SundayBelongsToPreviousMonday(t *testing.T) {
	// Sunday 2025-06-22 is still part of the week starting Monday 2025-06-16.
	now := time.Date(2025, 6, 22, 8, 0, 0, 0, time.UTC)

	got := periodStart(FrequencyWeekly, now)
	want := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("periodStart(weekly) = %v, want %v", got, want)
	}
}

func TestPeriodStart_MonthBoundary(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 1, 0, time.UTC)

	got := periodStart(FrequencyMonthly, now)
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("periodStart(monthly) = %v, want %v", got, want)
	}
}
