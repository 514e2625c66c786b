package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
	"github.com/jhoicas/AgriConnect-api/internal/application/usecase"
)

// LandingResponse página de inicio para visitantes, administradores y cuentas sin rol.
type LandingResponse struct {
	Message       string `json:"message"`
	Authenticated bool   `json:"authenticated"`
}

// HomeHandler envía a cada usuario a su panel según su rol.
type HomeHandler struct {
	base
	nav *usecase.NavigationUseCase
}

// NewHomeHandler construye el handler.
func NewHomeHandler(b base, nav *usecase.NavigationUseCase) *HomeHandler {
	return &HomeHandler{base: b, nav: nav}
}

// Index godoc
// @Summary      Página de inicio
// @Description  Redirige (303) al panel del agricultor o del empleado; el resto ve la página de inicio.
// @Tags         home
// @Produce      json
// @Success      200  {object}  dto.PageResponse
// @Success      303  {object}  dto.MessageResponse
// @Router       / [get]
func (h *HomeHandler) Index(c *fiber.Ctx) error {
	userID := GetUserID(c)
	dest, err := h.nav.Destination(c.UserContext(), userID)
	if err != nil {
		return h.errs.respond(c, err, nil)
	}
	if dest != usecase.PathLanding {
		return seeOther(c, dest, dto.MessageResponse{Message: "redirigiendo al panel"})
	}
	return h.page(c, LandingResponse{Message: "Bienvenido a AgriConnect", Authenticated: userID != ""})
}
