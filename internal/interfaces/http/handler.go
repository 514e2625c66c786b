package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
)

// base utilidades comunes a los handlers de páginas.
type base struct {
	errs  errorResponder
	flash flasher
}

// page responde 200 con los datos y el flash pendiente (que se consume).
func (b base) page(c *fiber.Ctx, data any) error {
	return c.JSON(dto.PageResponse{Data: data, Flash: b.flash.pop(c)})
}

// form responde los datos de un formulario vacío con su token CSRF.
func (b base) form(c *fiber.Ctx, input any) error {
	return b.page(c, dto.FormResponse{CSRFToken: csrfToken(c), Input: input})
}

// redirectWithFlash guarda el flash y redirige con 303.
func (b base) redirectWithFlash(c *fiber.Ctx, location, kind, message string) error {
	if err := b.flash.set(c, kind, message); err != nil {
		b.errs.log.Warn().Err(err).Msg("no se pudo guardar el mensaje flash")
	}
	return seeOther(c, location, dto.MessageResponse{Message: message, Flash: &dto.Flash{Kind: kind, Message: message}})
}

// paramID id numérico de la ruta; 0 si no es un número (los casos de uso lo tratan como no encontrado).
func paramID(c *fiber.Ctx, name string) int64 {
	id, err := c.ParamsInt(name)
	if err != nil {
		return 0
	}
	return int64(id)
}
