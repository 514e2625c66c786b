package dto

import (
	"fmt"
	"strings"
	"time"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse cuerpo 422: errores por campo ("" = error del formulario) y,
// cuando aplica, los datos necesarios para volver a mostrar el formulario.
type ValidationErrorResponse struct {
	Code     string            `json:"code"`
	Errors   map[string]string `json:"errors"`
	Messages []string          `json:"messages,omitempty"`
	Form     any               `json:"form,omitempty"`
}

// PageResponse datos de una página y el flash pendiente de la redirección anterior.
type PageResponse struct {
	Data  any    `json:"data"`
	Flash *Flash `json:"flash,omitempty"`
}

// FormResponse datos para mostrar un formulario con su token anti-falsificación.
type FormResponse struct {
	CSRFToken string `json:"csrf_token"`
	Input     any    `json:"input,omitempty"`
}

// MessageResponse respuesta simple con mensaje (y flash pendiente si lo hay).
type MessageResponse struct {
	Message string `json:"message"`
	Flash   *Flash `json:"flash,omitempty"`
}

// Flash mensaje de un solo uso guardado en sesión entre una redirección y la siguiente página.
type Flash struct {
	Kind    string `json:"kind"` // success, info, error
	Message string `json:"message"`
}

// DateLayout formato de fecha sin hora de los formularios.
const DateLayout = "2006-01-02"

var dateLayouts = []string{DateLayout, "2006-01-02T15:04", "2006-01-02T15:04:05", time.RFC3339}

// ParseDate interpreta una fecha de formulario. Sin zona se asume UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida %q", s)
}

// ParseOptionalDate como ParseDate pero una cadena vacía significa "sin fecha".
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
