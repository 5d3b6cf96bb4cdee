package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var weekdayNames = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

func init() {
	validate = validator.New()
	validate.RegisterValidation("weekday", validateWeekday)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateWeekday(fl validator.FieldLevel) bool {
	return weekdayNames[fl.Field().String()]
}
