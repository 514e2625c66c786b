package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgriConnect-api/internal/application/auth"
	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
)

// AccountHandler registro, inicio y cierre de sesión.
type AccountHandler struct {
	base
	register *auth.RegisterUseCase
	login    *auth.LoginUseCase
	authCfg  AuthConfig
}

// NewAccountHandler construye el handler.
func NewAccountHandler(b base, register *auth.RegisterUseCase, login *auth.LoginUseCase, authCfg AuthConfig) *AccountHandler {
	return &AccountHandler{base: b, register: register, login: login, authCfg: authCfg}
}

func (h *AccountHandler) registerForm(c *fiber.Ctx, returnURL string) dto.RegisterForm {
	form := h.register.Form()
	form.CSRFToken = csrfToken(c)
	form.ReturnURL = auth.SafeReturnURL(returnURL)
	return form
}

// RegisterForm godoc
// @Summary      Formulario de registro
// @Tags         account
// @Produce      json
// @Param        returnUrl  query  string  false  "Ruta local a la que volver tras registrarse"
// @Success      200  {object}  dto.PageResponse
// @Router       /Account/Register [get]
func (h *AccountHandler) RegisterForm(c *fiber.Ctx) error {
	return h.page(c, h.registerForm(c, c.Query("returnUrl")))
}

// Register godoc
// @Summary      Registrar cuenta de agricultor o empleado
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token  header  string               true  "Token anti-falsificación"
// @Param        body          body    dto.RegisterRequest  true  "Datos de registro"
// @Success      303  {object}  dto.RegisterResult
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /Account/Register [post]
func (h *AccountHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ReturnURL == "" {
		in.ReturnURL = c.Query("returnUrl")
	}
	res, err := h.register.Register(c.UserContext(), in)
	if err != nil {
		form := h.registerForm(c, in.ReturnURL)
		redacted := in.Redacted()
		form.Input = &redacted
		return h.errs.respond(c, err, form)
	}
	setAuthCookie(c, h.authCfg, res.Token)
	if err := h.flash.set(c, FlashSuccess, res.Message); err != nil {
		h.errs.log.Warn().Err(err).Msg("no se pudo guardar el mensaje flash")
	}
	return seeOther(c, res.RedirectTo, res)
}

// LoginForm godoc
// @Summary      Formulario de inicio de sesión
// @Tags         account
// @Produce      json
// @Success      200  {object}  dto.PageResponse
// @Router       /Account/Login [get]
func (h *AccountHandler) LoginForm(c *fiber.Ctx) error {
	return h.form(c, nil)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token  header  string            true  "Token anti-falsificación"
// @Param        body          body    dto.LoginRequest  true  "Credenciales"
// @Success      303  {object}  dto.LoginResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /Account/Login [post]
func (h *AccountHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ReturnURL == "" {
		in.ReturnURL = c.Query("returnUrl")
	}
	res, err := h.login.Login(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err, nil)
	}
	setAuthCookie(c, h.authCfg, res.Token)
	return seeOther(c, res.RedirectTo, res)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         account
// @Produce      json
// @Param        X-CSRF-Token  header  string  true  "Token anti-falsificación"
// @Success      303  {object}  dto.MessageResponse
// @Router       /Account/Logout [post]
func (h *AccountHandler) Logout(c *fiber.Ctx) error {
	clearAuthCookie(c, h.authCfg)
	return h.redirectWithFlash(c, "/", FlashInfo, "Sesión cerrada.")
}
