package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"slotwise/pkg/interval"
	"slotwise/pkg/logger"
	"slotwise/pkg/model"
	"slotwise/pkg/validation"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type CalendarValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewCalendarValidator(log *logger.Logger) *CalendarValidator {
	v := validator.New()

	if err := validation.RegisterSchedulingTags(v); err != nil {
		log.Fatal("Failed to register scheduling validators", "error", err)
	}

	log.Info("Calendar validator initialized successfully")

	return &CalendarValidator{
		validate: v,
		logger:   log,
	}
}

// ValidateHours checks field shape plus the semantic rules the struct tags
// cannot express: open before close, breaks inside the open window, breaks
// pairwise disjoint.
func (v *CalendarValidator) ValidateHours(hours *model.BusinessHours) error {
	if err := v.validate.Struct(hours); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if !hours.IsOpen {
		return nil
	}

	openMin, err := interval.ToMinutes(hours.OpenTime)
	if err != nil {
		return err
	}
	closeMin, err := interval.ToMinutes(hours.CloseTime)
	if err != nil {
		return err
	}
	if openMin >= closeMin {
		return ValidationErrors{
			ValidationError{Field: "CloseTime", Message: "close_time must be after open_time"},
		}
	}

	type window struct {
		start, end int
		label      string
	}
	var breaks []window
	for i, br := range hours.Breaks {
		startMin, err := interval.ToMinutes(br.Start)
		if err != nil {
			return err
		}
		endMin, err := interval.ToMinutes(br.End)
		if err != nil {
			return err
		}
		label := fmt.Sprintf("%s-%s", br.Start, br.End)

		if startMin >= endMin {
			return ValidationErrors{
				ValidationError{Field: fmt.Sprintf("Breaks[%d]", i), Message: "break end must be after break start"},
			}
		}
		if startMin < openMin || endMin > closeMin {
			return ValidationErrors{
				ValidationError{
					Field:   fmt.Sprintf("Breaks[%d]", i),
					Message: fmt.Sprintf("break %s falls outside business hours %s-%s", label, hours.OpenTime, hours.CloseTime),
				},
			}
		}
		for _, prev := range breaks {
			if interval.Overlaps(startMin, endMin, prev.start, prev.end) {
				return ValidationErrors{
					ValidationError{
						Field:   fmt.Sprintf("Breaks[%d]", i),
						Message: fmt.Sprintf("break %s overlaps break %s", label, prev.label),
					},
				}
			}
		}
		breaks = append(breaks, window{start: startMin, end: endMin, label: label})
	}

	return nil
}

func (v *CalendarValidator) ValidateBlockedSlot(slot *model.BlockedTimeSlot) error {
	if err := v.validate.Struct(slot); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	startMin, err := interval.ToMinutes(slot.StartTime)
	if err != nil {
		return err
	}
	endMin, err := interval.ToMinutes(slot.EndTime)
	if err != nil {
		return err
	}
	if startMin >= endMin {
		return ValidationErrors{
			ValidationError{Field: "EndTime", Message: "end_time must be after start_time"},
		}
	}

	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "required_if":
			message = fmt.Sprintf("%s is required when the business is open", err.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "calendar_date":
			message = fmt.Sprintf("%s must be a valid YYYY-MM-DD date", err.Field())
		case "wallclock":
			message = fmt.Sprintf("%s must be a valid HH:MM time", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
