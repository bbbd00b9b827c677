package policy

import (
	"fmt"
	"time"

	apperrors "slotwise/pkg/errors"
	"slotwise/pkg/interval"
	"slotwise/pkg/model"
)

// Quote is the refund outcome for a cancellation at a given moment.
type Quote struct {
	RefundPercent     int   `json:"refund_percent"`
	RefundAmountCents int64 `json:"refund_amount_cents"`
}

// Engine computes time-sensitive cancellation and reschedule outcomes.
// The refund tier table and the two hard deadlines are independent
// policies: a zero-refund cancellation is still permitted between the last
// paying tier and the hard deadline.
type Engine struct {
	tiers              []model.RefundTier
	cancelDeadline     time.Duration
	rescheduleDeadline time.Duration
}

func NewEngine(policy model.CancellationPolicy, cancelDeadline, rescheduleDeadline time.Duration) *Engine {
	return &Engine{
		tiers:              policy.Normalized(),
		cancelDeadline:     cancelDeadline,
		rescheduleDeadline: rescheduleDeadline,
	}
}

// LeadTime returns how far in the future the appointment's scheduled start
// is. Negative when the start has already passed.
func (e *Engine) LeadTime(appt *model.Appointment, now time.Time) (time.Duration, error) {
	start, err := interval.At(appt.Date, appt.StartTime)
	if err != nil {
		return 0, err
	}
	return start.Sub(now.UTC()), nil
}

// Quote selects the first tier whose threshold the current lead time
// satisfies. The tier table is normalized to always end in a 0-hour tier,
// so a result is guaranteed.
func (e *Engine) Quote(appt *model.Appointment, now time.Time) (*Quote, error) {
	lead, err := e.LeadTime(appt, now)
	if err != nil {
		return nil, err
	}

	leadHours := lead.Hours()
	for _, tier := range e.tiers {
		if leadHours >= float64(tier.HoursBefore) {
			return &Quote{
				RefundPercent:     tier.RefundPercent,
				RefundAmountCents: refundAmount(appt.PriceCents, tier.RefundPercent),
			}, nil
		}
	}

	// Lead time below zero: the appointment already started, nothing back.
	return &Quote{RefundPercent: 0, RefundAmountCents: 0}, nil
}

// CanCancel enforces the hard cancellation deadline, independent of the
// refund tiers.
func (e *Engine) CanCancel(appt *model.Appointment, now time.Time) error {
	lead, err := e.LeadTime(appt, now)
	if err != nil {
		return err
	}
	if lead < e.cancelDeadline {
		return apperrors.TooLateToCancel(fmt.Sprintf(
			"appointments cannot be cancelled less than %s before their start", e.cancelDeadline,
		))
	}
	return nil
}

// CanReschedule enforces the hard reschedule deadline against the
// currently scheduled slot.
func (e *Engine) CanReschedule(appt *model.Appointment, now time.Time) error {
	lead, err := e.LeadTime(appt, now)
	if err != nil {
		return err
	}
	if lead < e.rescheduleDeadline {
		return apperrors.TooLateToReschedule(fmt.Sprintf(
			"appointments cannot be rescheduled less than %s before their start", e.rescheduleDeadline,
		))
	}
	return nil
}

// refundAmount rounds half-up to whole cents.
func refundAmount(priceCents int64, percent int) int64 {
	return (priceCents*int64(percent) + 50) / 100
}
