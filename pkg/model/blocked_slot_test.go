package model

import "testing"

func TestAppliesOn(t *testing.T) {
	tests := []struct {
		name       string
		anchor     string
		recurrence Recurrence
		date       string
		want       bool
	}{
		{"one-off on anchor date", "2026-09-07", RecurrenceNone, "2026-09-07", true},
		{"one-off on other date", "2026-09-07", RecurrenceNone, "2026-09-08", false},

		{"daily after anchor", "2026-09-07", RecurrenceDaily, "2026-09-20", true},
		{"daily before anchor", "2026-09-07", RecurrenceDaily, "2026-09-06", false},

		{"weekly same weekday", "2026-09-07", RecurrenceWeekly, "2026-09-14", true},
		{"weekly different weekday", "2026-09-07", RecurrenceWeekly, "2026-09-15", false},
		{"weekly before anchor", "2026-09-07", RecurrenceWeekly, "2026-08-31", false},

		{"monthly same day of month", "2026-09-07", RecurrenceMonthly, "2026-10-07", true},
		{"monthly different day", "2026-09-07", RecurrenceMonthly, "2026-10-08", false},
		{"monthly anchor itself", "2026-09-07", RecurrenceMonthly, "2026-09-07", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &BlockedTimeSlot{
				Date:       tt.anchor,
				Recurrence: tt.recurrence,
			}
			if got := b.AppliesOn(tt.date); got != tt.want {
				t.Errorf("AppliesOn(%s) with %s anchor %s = %v, want %v",
					tt.date, tt.recurrence, tt.anchor, got, tt.want)
			}
		})
	}
}
