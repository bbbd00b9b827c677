package service

import (
	"context"
	"testing"

	calendarerrors "slotwise/internal/calendar/errors"
	"slotwise/internal/calendar/validator"
	"slotwise/pkg/config"
	apperrors "slotwise/pkg/errors"
	"slotwise/pkg/logger"
	"slotwise/pkg/model"
)

type mockHoursRepository struct {
	upsertFunc func(ctx context.Context, hours *model.BusinessHours) error
	findFunc   func(ctx context.Context, businessID string) ([]*model.BusinessHours, error)

	upserts int
}

func (m *mockHoursRepository) Upsert(ctx context.Context, hours *model.BusinessHours) error {
	m.upserts++
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, hours)
	}
	return nil
}

func (m *mockHoursRepository) FindByBusinessAndWeekday(ctx context.Context, businessID, weekday string) (*model.BusinessHours, error) {
	return nil, nil
}

func (m *mockHoursRepository) FindByBusiness(ctx context.Context, businessID string) ([]*model.BusinessHours, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, businessID)
	}
	return nil, nil
}

func (m *mockHoursRepository) Delete(ctx context.Context, businessID, weekday string) error {
	return calendarerrors.ErrNotFound
}

type mockBlockedRepository struct {
	createFunc     func(ctx context.Context, slot *model.BlockedTimeSlot) error
	deactivateFunc func(ctx context.Context, id string) error
}

func (m *mockBlockedRepository) Create(ctx context.Context, slot *model.BlockedTimeSlot) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, slot)
	}
	slot.ID = "64f1b2a3c4d5e6f7a8b9c0aa"
	return nil
}

func (m *mockBlockedRepository) FindByID(ctx context.Context, id string) (*model.BlockedTimeSlot, error) {
	return nil, calendarerrors.ErrNotFound
}

func (m *mockBlockedRepository) FindByBusiness(ctx context.Context, businessID string, limit int, offset int64) ([]*model.BlockedTimeSlot, error) {
	return nil, nil
}

func (m *mockBlockedRepository) FindActiveByBusiness(ctx context.Context, businessID string) ([]*model.BlockedTimeSlot, error) {
	return nil, nil
}

func (m *mockBlockedRepository) Deactivate(ctx context.Context, id string) error {
	if m.deactivateFunc != nil {
		return m.deactivateFunc(ctx, id)
	}
	return nil
}

func (m *mockBlockedRepository) Delete(ctx context.Context, id string) error {
	return nil
}

func newTestService(hoursRepo *mockHoursRepository, blockedRepo *mockBlockedRepository) CalendarService {
	log := logger.NewNop()
	cfg := &config.Config{Log: log}
	return NewCalendarService(hoursRepo, blockedRepo, validator.NewCalendarValidator(log), cfg)
}

func TestSetHoursValidationFailureNotPersisted(t *testing.T) {
	hoursRepo := &mockHoursRepository{}
	svc := newTestService(hoursRepo, &mockBlockedRepository{})

	hours := &model.BusinessHours{
		BusinessID: "64f1b2a3c4d5e6f7a8b9c0d1",
		Weekday:    "Monday",
		IsOpen:     true,
		OpenTime:   "17:00",
		CloseTime:  "09:00",
	}

	err := svc.SetHours(context.Background(), hours)
	if err == nil {
		t.Fatal("SetHours() expected validation error, got nil")
	}
	if hoursRepo.upserts != 0 {
		t.Error("hours persisted despite validation failure")
	}
}

func TestGetWeekSortedByWeekday(t *testing.T) {
	hoursRepo := &mockHoursRepository{
		findFunc: func(_ context.Context, _ string) ([]*model.BusinessHours, error) {
			return []*model.BusinessHours{
				{Weekday: "Friday"},
				{Weekday: "Monday"},
				{Weekday: "Wednesday"},
			}, nil
		},
	}
	svc := newTestService(hoursRepo, &mockBlockedRepository{})

	week, err := svc.GetWeek(context.Background(), "64f1b2a3c4d5e6f7a8b9c0d1")
	if err != nil {
		t.Fatalf("GetWeek() error = %v", err)
	}

	want := []string{"Monday", "Wednesday", "Friday"}
	for i, day := range want {
		if week[i].Weekday != day {
			t.Errorf("week[%d] = %s, want %s", i, week[i].Weekday, day)
		}
	}
}

func TestCreateBlockedSlotDefaults(t *testing.T) {
	svc := newTestService(&mockHoursRepository{}, &mockBlockedRepository{})

	slot := &model.BlockedTimeSlot{
		BusinessID: "64f1b2a3c4d5e6f7a8b9c0d1",
		Date:       "2026-09-07",
		StartTime:  "12:00",
		EndTime:    "13:00",
		Reason:     "  staff   meeting ",
	}

	if err := svc.CreateBlockedSlot(context.Background(), slot); err != nil {
		t.Fatalf("CreateBlockedSlot() error = %v", err)
	}

	if slot.Recurrence != model.RecurrenceNone {
		t.Errorf("Recurrence = %s, want none", slot.Recurrence)
	}
	if !slot.Active {
		t.Error("new blocked slot not active")
	}
	if slot.Reason != "staff meeting" {
		t.Errorf("Reason = %q, want %q", slot.Reason, "staff meeting")
	}
}

func TestDeactivateBlockedSlotNotFound(t *testing.T) {
	blockedRepo := &mockBlockedRepository{
		deactivateFunc: func(_ context.Context, _ string) error {
			return calendarerrors.ErrNotFound
		},
	}
	svc := newTestService(&mockHoursRepository{}, blockedRepo)

	err := svc.DeactivateBlockedSlot(context.Background(), "64f1b2a3c4d5e6f7a8b9c0aa")
	if err == nil {
		t.Fatal("DeactivateBlockedSlot() expected error, got nil")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("error code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
	}
}

func TestDeleteHoursNotFound(t *testing.T) {
	svc := newTestService(&mockHoursRepository{}, &mockBlockedRepository{})

	err := svc.DeleteHours(context.Background(), "64f1b2a3c4d5e6f7a8b9c0d1", "Sunday")
	if err == nil {
		t.Fatal("DeleteHours() expected error, got nil")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeNotFound {
		t.Errorf("error code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
	}
}
