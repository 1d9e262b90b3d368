package http

import (
	"github.com/go-playground/validator/v10"

	"github.com/bevisngo/booksan-sub000/internal/booking"
	"github.com/bevisngo/booksan-sub000/internal/calendar"
)

// RegisterValidators adds the booking binding tags to v.
func RegisterValidators(v *validator.Validate) error {
	tags := map[string]validator.Func{
		"viewtype":      validViewType,
		"facilityview":  validFacilityView,
		"bookingstatus": validStatus,
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func validViewType(fl validator.FieldLevel) bool {
	_, ok := calendar.ParseViewType(fl.Field().String())
	return ok
}

// validFacilityView accepts only day and week; month listings are served per court.
func validFacilityView(fl validator.FieldLevel) bool {
	v, ok := calendar.ParseViewType(fl.Field().String())
	return ok && v != calendar.ViewMonth
}

func validStatus(fl validator.FieldLevel) bool {
	_, ok := booking.ParseStatus(fl.Field().String())
	return ok
}
