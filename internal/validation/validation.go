// Package validation builds the validator shared by forms and the console.
package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// New returns a validator with the objectid tag registered. objectid accepts
// a 24 character hex MongoDB identifier.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return primitive.IsValidObjectID(fl.Field().String())
	})
	return v
}

// BlankRequired lists the fields of err that failed only because they were
// empty. It returns nil when err is not a validation error.
func BlankRequired(err error) []string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}
	var fields []string
	for _, fe := range errs {
		if fe.Tag() == "required" {
			fields = append(fields, fe.Field())
		}
	}
	return fields
}
