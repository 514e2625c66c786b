package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrUnknownRole           = errors.New("rol desconocido")
	ErrFarmerProfileNotFound = errors.New("perfil de agricultor no encontrado para la cuenta")
)

// FormLevel clave usada en FieldErrors para errores que no pertenecen a un campo concreto.
const FormLevel = ""

// FieldErrors errores de validación por campo (campo -> mensaje).
type FieldErrors map[string]string

// Add registra el error del campo si aún no tiene uno (se conserva el primero).
func (fe FieldErrors) Add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

// Empty indica si no hay errores registrados.
func (fe FieldErrors) Empty() bool { return len(fe) == 0 }

// Error implementa error con los campos en orden estable.
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == FormLevel {
			parts = append(parts, fe[k])
			continue
		}
		parts = append(parts, k+": "+fe[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

// IdentityError fallo del almacén de cuentas (política de contraseña, email duplicado...).
// Reasons contiene cada motivo reportado, en el orden en que se detectó.
type IdentityError struct {
	Reasons []string
}

func (e *IdentityError) Error() string {
	return "identidad: " + strings.Join(e.Reasons, "; ")
}
