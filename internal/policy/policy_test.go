package policy

import (
	"testing"
	"time"

	apperrors "slotwise/pkg/errors"
	"slotwise/pkg/model"
)

func testPolicy() model.CancellationPolicy {
	return model.CancellationPolicy{
		Tiers: []model.RefundTier{
			{HoursBefore: 72, RefundPercent: 100},
			{HoursBefore: 48, RefundPercent: 75},
			{HoursBefore: 24, RefundPercent: 50},
			{HoursBefore: 0, RefundPercent: 0},
		},
	}
}

func testAppointment(priceCents int64) *model.Appointment {
	return &model.Appointment{
		ID:         "appt-1",
		Date:       "2026-09-10",
		StartTime:  "10:00",
		EndTime:    "11:00",
		PriceCents: priceCents,
	}
}

// nowAt returns a clock "hoursBefore" hours ahead of the appointment start
// at 2026-09-10T10:00Z.
func nowAt(t *testing.T, hoursBefore float64) time.Time {
	t.Helper()
	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	return start.Add(-time.Duration(hoursBefore * float64(time.Hour)))
}

func TestQuoteTierSelection(t *testing.T) {
	engine := NewEngine(testPolicy(), 24*time.Hour, 24*time.Hour)
	appt := testAppointment(10000)

	tests := []struct {
		name        string
		hoursBefore float64
		wantPercent int
		wantAmount  int64
	}{
		{"well before first tier", 80, 100, 10000},
		{"exactly at first tier boundary", 72, 100, 10000},
		{"between first and second tier", 50, 75, 7500},
		{"between second and third tier", 30, 50, 5000},
		{"inside deadline window still quotes zero tier", 10, 0, 0},
		{"just before start", 0.5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := engine.Quote(appt, nowAt(t, tt.hoursBefore))
			if err != nil {
				t.Fatalf("Quote() error = %v", err)
			}
			if quote.RefundPercent != tt.wantPercent {
				t.Errorf("RefundPercent = %d, want %d", quote.RefundPercent, tt.wantPercent)
			}
			if quote.RefundAmountCents != tt.wantAmount {
				t.Errorf("RefundAmountCents = %d, want %d", quote.RefundAmountCents, tt.wantAmount)
			}
		})
	}
}

func TestQuoteRoundsHalfUp(t *testing.T) {
	engine := NewEngine(testPolicy(), 24*time.Hour, 24*time.Hour)

	// 75% of 3333 cents is 2499.75, rounds to 2500.
	appt := testAppointment(3333)
	quote, err := engine.Quote(appt, nowAt(t, 50))
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	if quote.RefundAmountCents != 2500 {
		t.Errorf("RefundAmountCents = %d, want 2500", quote.RefundAmountCents)
	}

	// 50% of 101 cents is 50.5, rounds to 51.
	appt = testAppointment(101)
	quote, err = engine.Quote(appt, nowAt(t, 30))
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	if quote.RefundAmountCents != 51 {
		t.Errorf("RefundAmountCents = %d, want 51", quote.RefundAmountCents)
	}
}

func TestQuoteAfterStart(t *testing.T) {
	engine := NewEngine(testPolicy(), 24*time.Hour, 24*time.Hour)
	appt := testAppointment(10000)

	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	quote, err := engine.Quote(appt, now)
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	if quote.RefundPercent != 0 || quote.RefundAmountCents != 0 {
		t.Errorf("Quote() after start = %+v, want zero refund", quote)
	}
}

func TestQuoteBadDate(t *testing.T) {
	engine := NewEngine(testPolicy(), 24*time.Hour, 24*time.Hour)
	appt := testAppointment(10000)
	appt.Date = "10/09/2026"

	if _, err := engine.Quote(appt, time.Now()); err == nil {
		t.Fatal("Quote() with malformed date: expected error, got nil")
	}
}

func TestCanCancelDeadline(t *testing.T) {
	engine := NewEngine(testPolicy(), 24*time.Hour, 24*time.Hour)
	appt := testAppointment(10000)

	if err := engine.CanCancel(appt, nowAt(t, 25)); err != nil {
		t.Errorf("CanCancel() 25h before = %v, want nil", err)
	}
	if err := engine.CanCancel(appt, nowAt(t, 24)); err != nil {
		t.Errorf("CanCancel() exactly 24h before = %v, want nil", err)
	}

	err := engine.CanCancel(appt, nowAt(t, 23))
	if err == nil {
		t.Fatal("CanCancel() 23h before: expected error, got nil")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeTooLateToCancel {
		t.Errorf("CanCancel() error = %v, want code %s", err, apperrors.CodeTooLateToCancel)
	}
}

func TestCanRescheduleDeadlineIndependent(t *testing.T) {
	// Reschedule deadline tighter than cancel deadline.
	engine := NewEngine(testPolicy(), 12*time.Hour, 48*time.Hour)
	appt := testAppointment(10000)

	if err := engine.CanCancel(appt, nowAt(t, 20)); err != nil {
		t.Errorf("CanCancel() 20h before with 12h deadline = %v, want nil", err)
	}

	err := engine.CanReschedule(appt, nowAt(t, 20))
	if err == nil {
		t.Fatal("CanReschedule() 20h before with 48h deadline: expected error, got nil")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeTooLateToReschedule {
		t.Errorf("CanReschedule() error = %v, want code %s", err, apperrors.CodeTooLateToReschedule)
	}

	if err := engine.CanReschedule(appt, nowAt(t, 49)); err != nil {
		t.Errorf("CanReschedule() 49h before = %v, want nil", err)
	}
}

func TestUnsortedTiersAreNormalized(t *testing.T) {
	shuffled := model.CancellationPolicy{
		Tiers: []model.RefundTier{
			{HoursBefore: 24, RefundPercent: 50},
			{HoursBefore: 72, RefundPercent: 100},
			{HoursBefore: 48, RefundPercent: 75},
		},
	}
	engine := NewEngine(shuffled, 24*time.Hour, 24*time.Hour)
	appt := testAppointment(10000)

	quote, err := engine.Quote(appt, nowAt(t, 80))
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	if quote.RefundPercent != 100 {
		t.Errorf("RefundPercent = %d, want 100", quote.RefundPercent)
	}

	// The missing 0-hour tier is appended during normalization.
	quote, err = engine.Quote(appt, nowAt(t, 5))
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	if quote.RefundPercent != 0 {
		t.Errorf("RefundPercent = %d, want 0", quote.RefundPercent)
	}
}
