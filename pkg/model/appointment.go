package model

import "time"

type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "scheduled"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusInProgress  AppointmentStatus = "in-progress"
	StatusCompleted   AppointmentStatus = "completed"
	StatusCancelled   AppointmentStatus = "cancelled"
	StatusNoShow      AppointmentStatus = "no-show"
	StatusRescheduled AppointmentStatus = "rescheduled"
)

// legalTransitions is the single source of truth for the appointment
// lifecycle. Statuses missing from the map are terminal. Every write path
// must consult CanTransition instead of re-deriving rules.
var legalTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:   {StatusConfirmed, StatusCancelled, StatusRescheduled},
	StatusConfirmed:   {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress:  {StatusCompleted, StatusCancelled},
	StatusRescheduled: {StatusScheduled, StatusCancelled},
}

func CanTransition(from, to AppointmentStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsTerminal(s AppointmentStatus) bool {
	return len(legalTransitions[s]) == 0
}

func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCancelled, StatusNoShow, StatusRescheduled:
		return true
	}
	return false
}

// RescheduleRecord is a snapshot of the slot an appointment occupied before
// a reschedule moved it.
type RescheduleRecord struct {
	Date      string    `json:"date" bson:"date"`
	StartTime string    `json:"start_time" bson:"start_time"`
	EndTime   string    `json:"end_time" bson:"end_time"`
	Reason    string    `json:"reason,omitempty" bson:"reason,omitempty"`
	Actor     string    `json:"actor" bson:"actor"`
	At        time.Time `json:"at" bson:"at"`
}

// CancellationRecord holds the cancellation metadata and the refund quote
// that was honoured at cancellation time.
type CancellationRecord struct {
	Reason            string    `json:"reason,omitempty" bson:"reason,omitempty"`
	Actor             string    `json:"actor" bson:"actor"`
	At                time.Time `json:"at" bson:"at"`
	RefundPercent     int       `json:"refund_percent" bson:"refund_percent"`
	RefundAmountCents int64     `json:"refund_amount_cents" bson:"refund_amount_cents"`
}

// StatusTransition is one entry in the append-only lifecycle audit log.
type StatusTransition struct {
	From  AppointmentStatus `json:"from" bson:"from"`
	To    AppointmentStatus `json:"to" bson:"to"`
	Actor string            `json:"actor" bson:"actor"`
	At    time.Time         `json:"at" bson:"at"`
}

type Appointment struct {
	ID         string `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	BusinessID string `json:"business_id" bson:"business_id" validate:"required,mongodb"`
	CustomerID string `json:"customer_id" bson:"customer_id" validate:"required,mongodb"`
	VehicleID  string `json:"vehicle_id,omitempty" bson:"vehicle_id,omitempty" validate:"omitempty,mongodb"`
	StaffID    string `json:"staff_id,omitempty" bson:"staff_id,omitempty" validate:"omitempty,mongodb"`

	Date      string `json:"date" bson:"date" validate:"required,calendar_date"`
	StartTime string `json:"start_time" bson:"start_time" validate:"required,wallclock"`
	EndTime   string `json:"end_time" bson:"end_time" validate:"required,wallclock"`

	ServiceType string            `json:"service_type" bson:"service_type" validate:"required,min=2,max=100"`
	Status      AppointmentStatus `json:"status" bson:"status" validate:"required,appointment_status"`
	PriceCents  int64             `json:"price_cents" bson:"price_cents" validate:"min=0"`
	Notes       string            `json:"notes,omitempty" bson:"notes,omitempty" validate:"max=1000"`

	ReminderSent bool `json:"reminder_sent" bson:"reminder_sent"`

	RescheduleHistory []RescheduleRecord  `json:"reschedule_history,omitempty" bson:"reschedule_history,omitempty"`
	Cancellation      *CancellationRecord `json:"cancellation,omitempty" bson:"cancellation,omitempty"`
	Transitions       []StatusTransition  `json:"transitions,omitempty" bson:"transitions,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
