package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	apptserrors "slotwise/internal/appointments/errors"
	"slotwise/internal/appointments/repository"
	"slotwise/internal/appointments/validator"
	"slotwise/internal/availability"
	"slotwise/internal/notifications"
	"slotwise/internal/policy"
	"slotwise/pkg/config"
	apperrors "slotwise/pkg/errors"
	"slotwise/pkg/middleware"
	"slotwise/pkg/model"
	"slotwise/pkg/sanitizer"
)

// Notifier publishes lifecycle events. Satisfied by
// notifications.Dispatcher; mocked in tests.
type Notifier interface {
	Notify(ctx context.Context, eventType, key string, payload any)
}

// RescheduleRequest carries the target slot for a reschedule.
type RescheduleRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason,omitempty"`
	Actor     string `json:"actor,omitempty"`
}

type AppointmentService interface {
	Book(ctx context.Context, appt *model.Appointment) error
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	GetAll(ctx context.Context, filter repository.AppointmentFilter, limit int, offset int64) ([]*model.Appointment, int64, error)
	CheckAvailability(ctx context.Context, req availability.Request) (*availability.Decision, error)
	Transition(ctx context.Context, id string, to model.AppointmentStatus) (*model.Appointment, error)
	Cancel(ctx context.Context, id, reason string) (*model.Appointment, error)
	Reschedule(ctx context.Context, id string, req RescheduleRequest) (*model.Appointment, error)
}

type appointmentService struct {
	repo      repository.AppointmentRepository
	lockRepo  repository.SlotLockRepository
	resolver  *availability.Resolver
	policy    *policy.Engine
	validator *validator.AppointmentValidator
	notifier  Notifier
	cfg       *config.Config

	now func() time.Time
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	lockRepo repository.SlotLockRepository,
	resolver *availability.Resolver,
	policyEngine *policy.Engine,
	apptValidator *validator.AppointmentValidator,
	notifier Notifier,
	cfg *config.Config,
) AppointmentService {
	return &appointmentService{
		repo:      repo,
		lockRepo:  lockRepo,
		resolver:  resolver,
		policy:    policyEngine,
		validator: apptValidator,
		notifier:  notifier,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Book creates an appointment after re-running the full availability check
// inside a transaction, with an advisory lock serializing competing bookings
// for the same business and date.
func (s *appointmentService) Book(ctx context.Context, appt *model.Appointment) error {
	s.applyDefaults(appt)
	s.sanitize(appt)
	if err := s.validate(appt); err != nil {
		return err
	}
	if appt.Status != model.StatusScheduled {
		return apperrors.InvalidInput("New appointments must start in the scheduled status")
	}

	lockID, err := s.acquireSlotLock(ctx, appt.BusinessID, appt.Date)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		decision, err := s.resolver.Resolve(sessCtx, availability.Request{
			BusinessID: appt.BusinessID,
			Date:       appt.Date,
			StartTime:  appt.StartTime,
			EndTime:    appt.EndTime,
		})
		if err != nil {
			return apperrors.Internal("Failed to check slot availability", err)
		}
		if !decision.Available {
			return decision.Err()
		}

		if err := s.repo.Create(sessCtx, appt); err != nil {
			return apperrors.Internal("Failed to create appointment", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to book appointment",
			"business_id", appt.BusinessID,
			"date", appt.Date,
			"error", err,
		)
		return err
	}

	s.cfg.Log.Info("Appointment booked successfully",
		"id", appt.ID,
		"business_id", appt.BusinessID,
		"date", appt.Date,
		"start_time", appt.StartTime,
	)
	s.notifier.Notify(ctx, notifications.EventAppointmentBooked, appt.ID, appt)
	return nil
}

func (s *appointmentService) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty")
	}

	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Appointment", id)
		}
		if errors.Is(err, apptserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid appointment ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve appointment", err)
	}

	return appt, nil
}

func (s *appointmentService) GetAll(ctx context.Context, filter repository.AppointmentFilter, limit int, offset int64) ([]*model.Appointment, int64, error) {
	var count int64
	var appts []*model.Appointment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count appointments", "error", errCount)
			errCount = apperrors.Internal("Failed to count appointments", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		appts, errFind = s.repo.FindAll(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list appointments", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve appointments", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return appts, count, nil
}

func (s *appointmentService) CheckAvailability(ctx context.Context, req availability.Request) (*availability.Decision, error) {
	if req.BusinessID == "" {
		return nil, apperrors.InvalidInput("business_id is required")
	}

	decision, err := s.resolver.Resolve(ctx, req)
	if err != nil {
		return nil, apperrors.Internal("Failed to check slot availability", err)
	}
	return decision, nil
}

// Transition moves an appointment to a new lifecycle status. Every change
// goes through the legal-transition table and is appended to the audit log.
func (s *appointmentService) Transition(ctx context.Context, id string, to model.AppointmentStatus) (*model.Appointment, error) {
	if !model.ValidStatus(to) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Unknown appointment status %q", to))
	}
	if to == model.StatusCancelled {
		return nil, apperrors.InvalidInput("Use the cancel operation to cancel an appointment")
	}

	actor := middleware.ActorFromContext(ctx)

	var updated *model.Appointment
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		appt, err := s.GetByID(sessCtx, id)
		if err != nil {
			return err
		}

		if !model.CanTransition(appt.Status, to) {
			return apperrors.IllegalTransition(string(appt.Status), string(to))
		}

		appt.Transitions = append(appt.Transitions, model.StatusTransition{
			From:  appt.Status,
			To:    to,
			Actor: actor,
			At:    s.now().UTC(),
		})
		appt.Status = to

		if err := s.repo.Update(sessCtx, id, appt); err != nil {
			return apperrors.Internal("Failed to update appointment status", err)
		}
		updated = appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Appointment status changed",
		"id", id,
		"status", updated.Status,
		"actor", actor,
	)
	s.notifier.Notify(ctx, notifications.EventAppointmentTransition, id, updated)
	return updated, nil
}

// Cancel runs the cancellation policy, computes the refund quote and moves
// the appointment to cancelled. The quote honoured is the one in effect at
// the moment of cancellation and is persisted with the record.
func (s *appointmentService) Cancel(ctx context.Context, id, reason string) (*model.Appointment, error) {
	actor := middleware.ActorFromContext(ctx)
	now := s.now().UTC()

	var updated *model.Appointment
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		appt, err := s.GetByID(sessCtx, id)
		if err != nil {
			return err
		}

		if !model.CanTransition(appt.Status, model.StatusCancelled) {
			return apperrors.IllegalTransition(string(appt.Status), string(model.StatusCancelled))
		}

		if err := s.policy.CanCancel(appt, now); err != nil {
			return err
		}
		quote, err := s.policy.Quote(appt, now)
		if err != nil {
			return err
		}

		appt.Transitions = append(appt.Transitions, model.StatusTransition{
			From:  appt.Status,
			To:    model.StatusCancelled,
			Actor: actor,
			At:    now,
		})
		appt.Status = model.StatusCancelled
		appt.Cancellation = &model.CancellationRecord{
			Reason:            sanitizer.NormalizeNotes(reason),
			Actor:             actor,
			At:                now,
			RefundPercent:     quote.RefundPercent,
			RefundAmountCents: quote.RefundAmountCents,
		}

		if err := s.repo.Update(sessCtx, id, appt); err != nil {
			return apperrors.Internal("Failed to cancel appointment", err)
		}
		updated = appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Appointment cancelled",
		"id", id,
		"actor", actor,
		"refund_percent", updated.Cancellation.RefundPercent,
	)
	s.notifier.Notify(ctx, notifications.EventAppointmentCancelled, id, updated)
	return updated, nil
}

// Reschedule moves an appointment to a new slot. The old slot is snapshotted
// into the reschedule history and the reminder flag is reset so the new slot
// gets its own reminder. The appointment keeps its current status.
func (s *appointmentService) Reschedule(ctx context.Context, id string, req RescheduleRequest) (*model.Appointment, error) {
	actor := middleware.ActorFromContext(ctx)
	now := s.now().UTC()

	// The lock must cover the target date before the transaction starts, so
	// two reschedules aiming at the same slot serialize just like bookings.
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if model.IsTerminal(current.Status) {
		return nil, apperrors.InvalidState(fmt.Sprintf(
			"Appointments in the %s status cannot be rescheduled", current.Status,
		))
	}
	if err := s.policy.CanReschedule(current, now); err != nil {
		return nil, err
	}

	lockID, err := s.acquireSlotLock(ctx, current.BusinessID, req.Date)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	var updated *model.Appointment
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		appt, err := s.GetByID(sessCtx, id)
		if err != nil {
			return err
		}

		// Re-checked inside the transaction: the record may have changed
		// between the early read and lock acquisition.
		if model.IsTerminal(appt.Status) {
			return apperrors.InvalidState(fmt.Sprintf(
				"Appointments in the %s status cannot be rescheduled", appt.Status,
			))
		}
		if err := s.policy.CanReschedule(appt, now); err != nil {
			return err
		}

		decision, err := s.resolver.Resolve(sessCtx, availability.Request{
			BusinessID:           appt.BusinessID,
			Date:                 req.Date,
			StartTime:            req.StartTime,
			EndTime:              req.EndTime,
			ExcludeAppointmentID: appt.ID,
		})
		if err != nil {
			return apperrors.Internal("Failed to check slot availability", err)
		}
		if !decision.Available {
			return decision.Err()
		}

		appt.RescheduleHistory = append(appt.RescheduleHistory, model.RescheduleRecord{
			Date:      appt.Date,
			StartTime: appt.StartTime,
			EndTime:   appt.EndTime,
			Reason:    sanitizer.NormalizeNotes(req.Reason),
			Actor:     actor,
			At:        now,
		})
		appt.Date = req.Date
		appt.StartTime = req.StartTime
		appt.EndTime = req.EndTime
		appt.ReminderSent = false

		if err := s.repo.Update(sessCtx, id, appt); err != nil {
			return apperrors.Internal("Failed to reschedule appointment", err)
		}
		updated = appt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Appointment rescheduled",
		"id", id,
		"date", updated.Date,
		"start_time", updated.StartTime,
		"actor", actor,
	)
	s.notifier.Notify(ctx, notifications.EventAppointmentRescheduled, id, updated)
	return updated, nil
}

// --- Helpers ---

func (s *appointmentService) applyDefaults(a *model.Appointment) {
	if a.Status == "" {
		a.Status = model.StatusScheduled
	}
}

func (s *appointmentService) sanitize(a *model.Appointment) {
	a.ServiceType = sanitizer.NormalizeServiceType(a.ServiceType)
	a.Notes = sanitizer.NormalizeNotes(a.Notes)
}

func (s *appointmentService) validate(a *model.Appointment) error {
	if err := s.validator.Validate(a); err != nil {
		s.cfg.Log.Warn("Appointment validation failed", "error", err)
		return apperrors.Validation("Appointment validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// acquireSlotLock serializes all writes touching a business's calendar day.
// Returns a conflict when another request holds the lock.
func (s *appointmentService) acquireSlotLock(ctx context.Context, businessID, date string) (string, error) {
	lockID := fmt.Sprintf("slot_lock_%s_%s", businessID, date)

	_, err := s.lockRepo.Create(ctx, &model.SlotLock{ID: lockID})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This time slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

func (s *appointmentService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
