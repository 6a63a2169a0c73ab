package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/hisaab-kitaab/internal/domain"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate aplica las reglas `validate` del struct. Los fallos se devuelven envueltos en
// domain.ErrInvalidInput con la lista de campos afectados.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(fields, ", "))
}
