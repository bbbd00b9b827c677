package validator

import (
	"testing"

	"slotwise/pkg/logger"
	"slotwise/pkg/model"
)

func validHours() *model.BusinessHours {
	return &model.BusinessHours{
		BusinessID: "64f1b2a3c4d5e6f7a8b9c0d1",
		Weekday:    "Monday",
		IsOpen:     true,
		OpenTime:   "09:00",
		CloseTime:  "17:00",
	}
}

func TestValidateHours(t *testing.T) {
	v := NewCalendarValidator(logger.NewNop())

	tests := []struct {
		name    string
		mutate  func(*model.BusinessHours)
		wantErr bool
	}{
		{
			name:    "valid open day",
			mutate:  func(h *model.BusinessHours) {},
			wantErr: false,
		},
		{
			name: "closed day needs no times",
			mutate: func(h *model.BusinessHours) {
				h.IsOpen = false
				h.OpenTime = ""
				h.CloseTime = ""
			},
			wantErr: false,
		},
		{
			name:    "unknown weekday",
			mutate:  func(h *model.BusinessHours) { h.Weekday = "Funday" },
			wantErr: true,
		},
		{
			name:    "open day without open time",
			mutate:  func(h *model.BusinessHours) { h.OpenTime = "" },
			wantErr: true,
		},
		{
			name:    "malformed close time",
			mutate:  func(h *model.BusinessHours) { h.CloseTime = "5pm" },
			wantErr: true,
		},
		{
			name: "open after close",
			mutate: func(h *model.BusinessHours) {
				h.OpenTime = "17:00"
				h.CloseTime = "09:00"
			},
			wantErr: true,
		},
		{
			name: "valid breaks",
			mutate: func(h *model.BusinessHours) {
				h.Breaks = []model.BreakWindow{
					{Start: "12:00", End: "13:00"},
					{Start: "15:00", End: "15:30"},
				}
			},
			wantErr: false,
		},
		{
			name: "break outside hours",
			mutate: func(h *model.BusinessHours) {
				h.Breaks = []model.BreakWindow{{Start: "08:00", End: "09:30"}}
			},
			wantErr: true,
		},
		{
			name: "inverted break",
			mutate: func(h *model.BusinessHours) {
				h.Breaks = []model.BreakWindow{{Start: "13:00", End: "12:00"}}
			},
			wantErr: true,
		},
		{
			name: "overlapping breaks",
			mutate: func(h *model.BusinessHours) {
				h.Breaks = []model.BreakWindow{
					{Start: "12:00", End: "13:00"},
					{Start: "12:30", End: "14:00"},
				}
			},
			wantErr: true,
		},
		{
			name: "touching breaks are fine",
			mutate: func(h *model.BusinessHours) {
				h.Breaks = []model.BreakWindow{
					{Start: "12:00", End: "13:00"},
					{Start: "13:00", End: "13:30"},
				}
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours := validHours()
			tt.mutate(hours)

			err := v.ValidateHours(hours)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHours() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateBlockedSlot(t *testing.T) {
	v := NewCalendarValidator(logger.NewNop())

	valid := func() *model.BlockedTimeSlot {
		return &model.BlockedTimeSlot{
			BusinessID: "64f1b2a3c4d5e6f7a8b9c0d1",
			Date:       "2026-09-07",
			StartTime:  "12:00",
			EndTime:    "13:00",
			Recurrence: model.RecurrenceNone,
			Active:     true,
		}
	}

	if err := v.ValidateBlockedSlot(valid()); err != nil {
		t.Errorf("ValidateBlockedSlot() on valid slot = %v", err)
	}

	slot := valid()
	slot.Recurrence = "yearly"
	if err := v.ValidateBlockedSlot(slot); err == nil {
		t.Error("ValidateBlockedSlot() accepted unknown recurrence")
	}

	slot = valid()
	slot.Date = "next tuesday"
	if err := v.ValidateBlockedSlot(slot); err == nil {
		t.Error("ValidateBlockedSlot() accepted malformed date")
	}

	slot = valid()
	slot.StartTime = "13:00"
	slot.EndTime = "12:00"
	if err := v.ValidateBlockedSlot(slot); err == nil {
		t.Error("ValidateBlockedSlot() accepted inverted window")
	}
}
