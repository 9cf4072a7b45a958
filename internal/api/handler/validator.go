package handler

import (
	"github.com/go-playground/validator/v10"

	"github.com/servicehub/portal/internal/core/service"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface. Failures come back as a
// single domain.ValidationError.
func (ev *echoValidator) Validate(i any) error {
	return service.Validate(ev.v, i)
}
