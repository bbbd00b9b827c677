package availability

import (
	"context"
	"fmt"
	"time"

	"slotwise/pkg/config"
	apperrors "slotwise/pkg/errors"
	"slotwise/pkg/interval"
	"slotwise/pkg/model"
)

// Request is a candidate slot to check. ExcludeAppointmentID is set during
// reschedules so an appointment does not conflict with itself.
type Request struct {
	BusinessID           string
	Date                 string
	StartTime            string
	EndTime              string
	ExcludeAppointmentID string
}

// Decision is the resolver's verdict. When the slot is unavailable, Code
// carries the error-taxonomy code of the first failed check and Reason a
// human-readable explanation.
type Decision struct {
	Available bool   `json:"available"`
	Code      string `json:"code,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Err maps an unavailable decision back onto the error taxonomy. Returns
// nil when the slot is available.
func (d *Decision) Err() error {
	if d.Available {
		return nil
	}
	switch d.Code {
	case apperrors.CodeInvalidFormat:
		return apperrors.InvalidFormat(d.Reason)
	case apperrors.CodeInvalidDuration:
		return apperrors.InvalidDuration(d.Reason)
	case apperrors.CodeOutsideBusinessHours:
		return apperrors.OutsideBusinessHours(d.Reason)
	case apperrors.CodeBlockedSlot:
		return apperrors.BlockedSlot(d.Reason)
	case apperrors.CodeSlotConflict:
		return apperrors.SlotConflict(d.Reason)
	default:
		return apperrors.InvalidInput(d.Reason)
	}
}

type HoursStore interface {
	FindByBusinessAndWeekday(ctx context.Context, businessID, weekday string) (*model.BusinessHours, error)
}

type BlockedStore interface {
	FindActiveByBusiness(ctx context.Context, businessID string) ([]*model.BlockedTimeSlot, error)
}

type AppointmentStore interface {
	FindActiveByBusinessAndDate(ctx context.Context, businessID, date string) ([]*model.Appointment, error)
}

// Resolver runs the availability checks in a fixed order and short-circuits
// on the first failure. Cheap syntactic checks run before any store reads.
type Resolver struct {
	hours        HoursStore
	blocked      BlockedStore
	appointments AppointmentStore
	cfg          *config.Config

	// Now is swappable for tests.
	Now func() time.Time
}

func NewResolver(hours HoursStore, blocked BlockedStore, appointments AppointmentStore, cfg *config.Config) *Resolver {
	return &Resolver{
		hours:        hours,
		blocked:      blocked,
		appointments: appointments,
		cfg:          cfg,
		Now:          time.Now,
	}
}

// Resolve checks a candidate slot. A non-nil error means a check could not
// be performed (store failure); an unavailable Decision means a check
// failed. Within a Mongo session context the store reads participate in the
// surrounding transaction.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Decision, error) {
	startMin, endMin, decision := r.checkWindow(req)
	if decision != nil {
		return decision, nil
	}

	if decision, err := r.checkBusinessHours(ctx, req, startMin, endMin); decision != nil || err != nil {
		return decision, err
	}

	if decision, err := r.checkBlockedSlots(ctx, req, startMin, endMin); decision != nil || err != nil {
		return decision, err
	}

	if decision, err := r.checkAppointments(ctx, req, startMin, endMin); decision != nil || err != nil {
		return decision, err
	}

	return &Decision{Available: true}, nil
}

// checkWindow validates the date and time syntax, ordering, duration bounds
// and the no-past-dates rule. Returns the parsed minute offsets on success.
func (r *Resolver) checkWindow(req Request) (int, int, *Decision) {
	day, err := interval.ParseDate(req.Date)
	if err != nil {
		return 0, 0, unavailable(apperrors.CodeInvalidFormat, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", req.Date))
	}

	today := r.Now().UTC().Truncate(24 * time.Hour)
	if day.Before(today) {
		return 0, 0, unavailable(apperrors.CodeInvalidFormat, fmt.Sprintf("date %s is in the past", req.Date))
	}

	startMin, err := interval.ToMinutes(req.StartTime)
	if err != nil {
		return 0, 0, unavailable(apperrors.CodeInvalidFormat, fmt.Sprintf("invalid start time %q, expected HH:MM", req.StartTime))
	}
	endMin, err := interval.ToMinutes(req.EndTime)
	if err != nil {
		return 0, 0, unavailable(apperrors.CodeInvalidFormat, fmt.Sprintf("invalid end time %q, expected HH:MM", req.EndTime))
	}

	if startMin >= endMin {
		return 0, 0, unavailable(apperrors.CodeInvalidDuration, "start time must be before end time")
	}

	duration := endMin - startMin
	if duration < r.cfg.MinDurationMin {
		return 0, 0, unavailable(apperrors.CodeInvalidDuration,
			fmt.Sprintf("appointment must be at least %d minutes, got %d", r.cfg.MinDurationMin, duration))
	}
	if duration > r.cfg.MaxDurationMin {
		return 0, 0, unavailable(apperrors.CodeInvalidDuration,
			fmt.Sprintf("appointment must be at most %d minutes, got %d", r.cfg.MaxDurationMin, duration))
	}

	return startMin, endMin, nil
}

func (r *Resolver) checkBusinessHours(ctx context.Context, req Request, startMin, endMin int) (*Decision, error) {
	weekday, err := interval.Weekday(req.Date)
	if err != nil {
		return nil, err
	}

	hours, err := r.hours.FindByBusinessAndWeekday(ctx, req.BusinessID, weekday)
	if err != nil {
		return nil, err
	}
	if hours == nil || !hours.IsOpen {
		return unavailable(apperrors.CodeOutsideBusinessHours,
			fmt.Sprintf("business is closed on %s", weekday)), nil
	}

	openMin, err := interval.ToMinutes(hours.OpenTime)
	if err != nil {
		return nil, err
	}
	closeMin, err := interval.ToMinutes(hours.CloseTime)
	if err != nil {
		return nil, err
	}

	if startMin < openMin || endMin > closeMin {
		return unavailable(apperrors.CodeOutsideBusinessHours,
			fmt.Sprintf("slot %s-%s falls outside business hours %s-%s",
				req.StartTime, req.EndTime, hours.OpenTime, hours.CloseTime)), nil
	}

	for _, br := range hours.Breaks {
		brStart, err := interval.ToMinutes(br.Start)
		if err != nil {
			return nil, err
		}
		brEnd, err := interval.ToMinutes(br.End)
		if err != nil {
			return nil, err
		}
		if interval.Overlaps(startMin, endMin, brStart, brEnd) {
			return unavailable(apperrors.CodeOutsideBusinessHours,
				fmt.Sprintf("slot %s-%s overlaps break %s-%s",
					req.StartTime, req.EndTime, br.Start, br.End)), nil
		}
	}

	return nil, nil
}

func (r *Resolver) checkBlockedSlots(ctx context.Context, req Request, startMin, endMin int) (*Decision, error) {
	blocked, err := r.blocked.FindActiveByBusiness(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	for _, b := range blocked {
		if !b.AppliesOn(req.Date) {
			continue
		}
		bStart, err := interval.ToMinutes(b.StartTime)
		if err != nil {
			continue
		}
		bEnd, err := interval.ToMinutes(b.EndTime)
		if err != nil {
			continue
		}
		if interval.Overlaps(startMin, endMin, bStart, bEnd) {
			reason := fmt.Sprintf("slot is blocked %s-%s", b.StartTime, b.EndTime)
			if b.Reason != "" {
				reason = fmt.Sprintf("%s: %s", reason, b.Reason)
			}
			return unavailable(apperrors.CodeBlockedSlot, reason), nil
		}
	}

	return nil, nil
}

func (r *Resolver) checkAppointments(ctx context.Context, req Request, startMin, endMin int) (*Decision, error) {
	appts, err := r.appointments.FindActiveByBusinessAndDate(ctx, req.BusinessID, req.Date)
	if err != nil {
		return nil, err
	}

	for _, a := range appts {
		if a.ID == req.ExcludeAppointmentID {
			continue
		}
		if a.Status == model.StatusCancelled {
			continue
		}
		aStart, err := interval.ToMinutes(a.StartTime)
		if err != nil {
			continue
		}
		aEnd, err := interval.ToMinutes(a.EndTime)
		if err != nil {
			continue
		}
		if interval.Overlaps(startMin, endMin, aStart, aEnd) {
			return unavailable(apperrors.CodeSlotConflict,
				fmt.Sprintf("slot conflicts with an existing appointment %s-%s", a.StartTime, a.EndTime)), nil
		}
	}

	return nil, nil
}

func unavailable(code, reason string) *Decision {
	return &Decision{Available: false, Code: code, Reason: reason}
}
