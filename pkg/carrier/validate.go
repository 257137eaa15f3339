package carrier

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Service level, when present, must be one of the known values.
	_ = v.RegisterValidation("service_level", func(fl validator.FieldLevel) bool {
		return KnownServiceLevels[ServiceLevel(fl.Field().String())]
	})

	return v
}

// ValidateRateRequest checks a rate request against the domain invariants.
// Invalid requests fail with a VALIDATION_ERROR carrying one issue string
// per offending field; they never reach a carrier.
func ValidateRateRequest(req *RateRequest) error {
	if req == nil {
		return NewCarrierError(ErrCodeValidation, "rate request is required")
	}

	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return NewCarrierError(ErrCodeValidation, "invalid rate request").WithCause(err)
	}

	issues := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, fmt.Sprintf("%s: failed %q constraint", fe.Namespace(), fe.Tag()))
	}

	return NewCarrierError(ErrCodeValidation, "invalid rate request").
		WithDetails(map[string]any{"issues": issues})
}
