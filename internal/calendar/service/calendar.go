package service

import (
	"context"
	"errors"
	"sort"

	calendarerrors "slotwise/internal/calendar/errors"
	"slotwise/internal/calendar/repository"
	"slotwise/internal/calendar/validator"
	"slotwise/pkg/config"
	apperrors "slotwise/pkg/errors"
	"slotwise/pkg/model"
	"slotwise/pkg/sanitizer"
)

var weekdayOrder = map[string]int{
	"Sunday":    0,
	"Monday":    1,
	"Tuesday":   2,
	"Wednesday": 3,
	"Thursday":  4,
	"Friday":    5,
	"Saturday":  6,
}

type CalendarService interface {
	SetHours(ctx context.Context, hours *model.BusinessHours) error
	GetWeek(ctx context.Context, businessID string) ([]*model.BusinessHours, error)
	DeleteHours(ctx context.Context, businessID, weekday string) error

	CreateBlockedSlot(ctx context.Context, slot *model.BlockedTimeSlot) error
	ListBlockedSlots(ctx context.Context, businessID string, limit int, offset int64) ([]*model.BlockedTimeSlot, error)
	DeactivateBlockedSlot(ctx context.Context, id string) error
	DeleteBlockedSlot(ctx context.Context, id string) error
}

type calendarService struct {
	hoursRepo   repository.BusinessHoursRepository
	blockedRepo repository.BlockedSlotRepository
	validator   *validator.CalendarValidator
	cfg         *config.Config
}

func NewCalendarService(
	hoursRepo repository.BusinessHoursRepository,
	blockedRepo repository.BlockedSlotRepository,
	calendarValidator *validator.CalendarValidator,
	cfg *config.Config,
) CalendarService {
	return &calendarService{
		hoursRepo:   hoursRepo,
		blockedRepo: blockedRepo,
		validator:   calendarValidator,
		cfg:         cfg,
	}
}

// SetHours upserts one weekday of a business's operating calendar. Existing
// appointments are deliberately left alone: hours changes only affect future
// bookings, already-booked appointments stand.
func (s *calendarService) SetHours(ctx context.Context, hours *model.BusinessHours) error {
	if err := s.validator.ValidateHours(hours); err != nil {
		s.cfg.Log.Warn("Business hours validation failed", "error", err)
		return apperrors.Validation("Business hours validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.hoursRepo.Upsert(ctx, hours); err != nil {
		s.cfg.Log.Error("Failed to upsert business hours",
			"business_id", hours.BusinessID,
			"weekday", hours.Weekday,
			"error", err,
		)
		return apperrors.Internal("Failed to save business hours", err)
	}

	s.cfg.Log.Info("Business hours saved",
		"business_id", hours.BusinessID,
		"weekday", hours.Weekday,
		"is_open", hours.IsOpen,
	)
	return nil
}

func (s *calendarService) GetWeek(ctx context.Context, businessID string) ([]*model.BusinessHours, error) {
	if businessID == "" {
		return nil, apperrors.InvalidInput("Business ID cannot be empty")
	}

	week, err := s.hoursRepo.FindByBusiness(ctx, businessID)
	if err != nil {
		s.cfg.Log.Error("Failed to list business hours", "business_id", businessID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve business hours", err)
	}

	sort.Slice(week, func(i, j int) bool {
		return weekdayOrder[week[i].Weekday] < weekdayOrder[week[j].Weekday]
	})
	return week, nil
}

func (s *calendarService) DeleteHours(ctx context.Context, businessID, weekday string) error {
	if businessID == "" || weekday == "" {
		return apperrors.InvalidInput("Business ID and weekday are required")
	}

	if err := s.hoursRepo.Delete(ctx, businessID, weekday); err != nil {
		if errors.Is(err, calendarerrors.ErrNotFound) {
			return apperrors.NotFound("Business hours")
		}
		return apperrors.Internal("Failed to delete business hours", err)
	}

	s.cfg.Log.Info("Business hours deleted", "business_id", businessID, "weekday", weekday)
	return nil
}

func (s *calendarService) CreateBlockedSlot(ctx context.Context, slot *model.BlockedTimeSlot) error {
	if slot.Recurrence == "" {
		slot.Recurrence = model.RecurrenceNone
	}
	slot.Active = true
	slot.Reason = sanitizer.TrimAndNormalize(slot.Reason)

	if err := s.validator.ValidateBlockedSlot(slot); err != nil {
		s.cfg.Log.Warn("Blocked slot validation failed", "error", err)
		return apperrors.Validation("Blocked slot validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.blockedRepo.Create(ctx, slot); err != nil {
		s.cfg.Log.Error("Failed to create blocked slot", "business_id", slot.BusinessID, "error", err)
		return apperrors.Internal("Failed to create blocked slot", err)
	}

	s.cfg.Log.Info("Blocked slot created",
		"id", slot.ID,
		"business_id", slot.BusinessID,
		"date", slot.Date,
		"recurrence", slot.Recurrence,
	)
	return nil
}

func (s *calendarService) ListBlockedSlots(ctx context.Context, businessID string, limit int, offset int64) ([]*model.BlockedTimeSlot, error) {
	if businessID == "" {
		return nil, apperrors.InvalidInput("Business ID cannot be empty")
	}

	slots, err := s.blockedRepo.FindByBusiness(ctx, businessID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list blocked slots", "business_id", businessID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve blocked slots", err)
	}

	return slots, nil
}

// DeactivateBlockedSlot soft-deletes: the rule stops affecting availability
// but stays visible in listings. Preferred over Delete for recurring rules
// with history.
func (s *calendarService) DeactivateBlockedSlot(ctx context.Context, id string) error {
	if err := s.blockedRepo.Deactivate(ctx, id); err != nil {
		return s.mapBlockedSlotError(id, err, "deactivate")
	}

	s.cfg.Log.Info("Blocked slot deactivated", "id", id)
	return nil
}

func (s *calendarService) DeleteBlockedSlot(ctx context.Context, id string) error {
	if err := s.blockedRepo.Delete(ctx, id); err != nil {
		return s.mapBlockedSlotError(id, err, "delete")
	}

	s.cfg.Log.Info("Blocked slot deleted", "id", id)
	return nil
}

func (s *calendarService) mapBlockedSlotError(id string, err error, op string) error {
	if errors.Is(err, calendarerrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Blocked slot", id)
	}
	if errors.Is(err, calendarerrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid blocked slot ID format")
	}
	s.cfg.Log.Error("Blocked slot operation failed", "id", id, "operation", op, "error", err)
	return apperrors.Internal("Failed to "+op+" blocked slot", err)
}
