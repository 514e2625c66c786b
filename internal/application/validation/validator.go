package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/AgriConnect-api/internal/domain"
)

// phonePattern acepta dígitos con separadores habituales y prefijo internacional opcional.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{5,17}[0-9]$`)

// Validator valida DTOs con etiquetas `validate` y traduce los fallos a domain.FieldErrors,
// usando como clave el nombre JSON del campo.
type Validator struct {
	v *validator.Validate
}

// New construye el validador con las reglas propias registradas.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	if err := RegisterCustomValidators(v); err != nil {
		panic(err)
	}
	return &Validator{v: v}
}

// RegisterCustomValidators registra las reglas que no trae el paquete validator.
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("phone", validatePhone)
}

func validatePhone(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	return phonePattern.MatchString(s)
}

// Struct valida s. Devuelve nil si es válido.
func (v *Validator) Struct(s any) domain.FieldErrors {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	fe := domain.FieldErrors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.Add(domain.FormLevel, err.Error())
		return fe
	}
	for _, e := range verrs {
		fe.Add(e.Field(), message(e))
	}
	return fe
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("El campo %s es obligatorio.", e.Field())
	case "email":
		return fmt.Sprintf("El campo %s no es un email válido.", e.Field())
	case "min":
		return fmt.Sprintf("El campo %s debe tener al menos %s caracteres.", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("El campo %s admite como máximo %s caracteres.", e.Field(), e.Param())
	case "eqfield":
		return "La contraseña y su confirmación no coinciden."
	case "oneof":
		return fmt.Sprintf("Seleccione un valor válido para %s.", e.Field())
	case "phone":
		return fmt.Sprintf("El campo %s no es un número de teléfono válido.", e.Field())
	case "gt", "gte":
		return fmt.Sprintf("El campo %s no es válido.", e.Field())
	}
	return fmt.Sprintf("El campo %s no es válido (%s).", e.Field(), e.Tag())
}
