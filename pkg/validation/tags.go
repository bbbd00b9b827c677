package validation

import (
	"github.com/go-playground/validator/v10"

	"slotwise/pkg/interval"
	"slotwise/pkg/model"
)

// RegisterSchedulingTags installs the custom struct-tag validators shared by
// the scheduling domain: calendar_date (YYYY-MM-DD), wallclock (HH:MM) and
// appointment_status.
func RegisterSchedulingTags(v *validator.Validate) error {
	if err := v.RegisterValidation("calendar_date", validateCalendarDate); err != nil {
		return err
	}
	if err := v.RegisterValidation("wallclock", validateWallclock); err != nil {
		return err
	}
	if err := v.RegisterValidation("appointment_status", validateAppointmentStatus); err != nil {
		return err
	}
	return nil
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := interval.ParseDate(fl.Field().String())
	return err == nil
}

func validateWallclock(fl validator.FieldLevel) bool {
	_, err := interval.ToMinutes(fl.Field().String())
	return err == nil
}

func validateAppointmentStatus(fl validator.FieldLevel) bool {
	return model.ValidStatus(model.AppointmentStatus(fl.Field().String()))
}
