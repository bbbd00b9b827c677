package model

import (
	"time"

	"slotwise/pkg/interval"
)

type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// BlockedTimeSlot is a business-declared blackout window. It participates in
// overlap checks exactly like an appointment but carries no customer.
type BlockedTimeSlot struct {
	ID         string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	BusinessID string     `json:"business_id" bson:"business_id" validate:"required,mongodb"`
	Date       string     `json:"date" bson:"date" validate:"required,calendar_date"`
	StartTime  string     `json:"start_time" bson:"start_time" validate:"required,wallclock"`
	EndTime    string     `json:"end_time" bson:"end_time" validate:"required,wallclock"`
	Recurrence Recurrence `json:"recurrence" bson:"recurrence" validate:"required,oneof=none daily weekly monthly"`
	Reason     string     `json:"reason,omitempty" bson:"reason,omitempty" validate:"max=200"`
	Active     bool       `json:"active" bson:"active"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
}

// AppliesOn reports whether the blackout covers the given calendar date.
// Recurring rules apply on and after their anchor date; the anchor itself
// always matches.
func (b *BlockedTimeSlot) AppliesOn(date string) bool {
	if b.Date == date {
		return true
	}

	anchor, err := interval.ParseDate(b.Date)
	if err != nil {
		return false
	}
	day, err := interval.ParseDate(date)
	if err != nil {
		return false
	}
	if day.Before(anchor) {
		return false
	}

	switch b.Recurrence {
	case RecurrenceDaily:
		return true
	case RecurrenceWeekly:
		return day.Weekday() == anchor.Weekday()
	case RecurrenceMonthly:
		return day.Day() == anchor.Day()
	default:
		return false
	}
}
