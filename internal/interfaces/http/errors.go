package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
	"github.com/jhoicas/AgriConnect-api/internal/domain"
)

// errorResponder traduce errores de dominio a respuestas HTTP.
type errorResponder struct {
	log zerolog.Logger
}

// respond mapea err: validación 422, no encontrado 404, no autorizado 401, prohibido 403 y el resto 500.
// form, si no es nil, acompaña los 422 para volver a mostrar el formulario.
func (r errorResponder) respond(c *fiber.Ctx, err error, form any) error {
	var fe domain.FieldErrors
	if errors.As(err, &fe) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
			Code: "VALIDATION", Errors: fe, Form: form,
		})
	}
	var idErr *domain.IdentityError
	if errors.As(err, &idErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
			Code:     "IDENTITY",
			Errors:   map[string]string{domain.FormLevel: strings.Join(idErr.Reasons, " ")},
			Messages: idErr.Reasons,
			Form:     form,
		})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownRole):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	r.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

// badBody respuesta para cuerpos que no se pueden decodificar.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// seeOther redirección 303 con el cuerpo JSON indicado para clientes que no la sigan.
func seeOther(c *fiber.Ctx, location string, body any) error {
	c.Location(location)
	return c.Status(fiber.StatusSeeOther).JSON(body)
}
