// Package validation holds the field rules for Regula writes and the
// storage-level integrity audit.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yungbote/regula-backend/internal/domain/regula"
	apperr "github.com/yungbote/regula-backend/internal/pkg/errors"
)

const (
	ruleRequired = "required"
	ruleScale    = "scale"
	ruleRange    = "range"
	ruleOneOf    = "oneof"
	ruleWeekday  = "weekday"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON names so callers can highlight the offending inputs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(reflectionStructValidation, regula.ReflectionInput{})
	v.RegisterStructValidation(subPlanStructValidation, regula.SubPlanFields{})
	v.RegisterStructValidation(generalPlanStructValidation, regula.GeneralPlanFields{})
	return v
}

// toValidationError converts validator output into the shared error taxonomy.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return apperr.NewValidationError(fields...)
}
