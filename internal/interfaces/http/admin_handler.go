package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
	"github.com/jhoicas/AgriConnect-api/internal/application/usecase"
	"github.com/jhoicas/AgriConnect-api/internal/domain"
)

// PathManageUsers listado de cuentas del administrador.
const PathManageUsers = "/Admin/ManageUsers"

// UserFormResponse formulario sobre una cuenta existente.
type UserFormResponse struct {
	CSRFToken string              `json:"csrf_token"`
	User      dto.AccountResponse `json:"user"`
}

// UserRolesFormResponse formulario de gestión de roles.
type UserRolesFormResponse struct {
	CSRFToken string `json:"csrf_token"`
	dto.UserRolesResponse
}

// AdminHandler gestión de cuentas y roles.
type AdminHandler struct {
	base
	uc *usecase.AdminUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(b base, uc *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{base: b, uc: uc}
}

// Dashboard godoc
// @Summary      Panel del administrador
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.PageResponse
// @Router       /Admin/Dashboard [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err, nil)
	}
	return h.page(c, out)
}

// ManageUsers godoc
// @Summary      Listar cuentas
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.PageResponse
// @Router       /Admin/ManageUsers [get]
func (h *AdminHandler) ManageUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err, nil)
	}
	return h.page(c, out)
}

func (h *AdminHandler) userForm(c *fiber.Ctx) error {
	out, err := h.uc.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err, nil)
	}
	return h.page(c, UserFormResponse{CSRFToken: csrfToken(c), User: *out})
}

// EditUserForm godoc
// @Summary      Cuenta a editar
// @Tags         admin
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.PageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /Admin/EditUser/{id} [get]
func (h *AdminHandler) EditUserForm(c *fiber.Ctx) error {
	return h.userForm(c)
}

// EditUser godoc
// @Summary      Editar email y nombre de usuario
// @Description  El nuevo email se copia a los perfiles de agricultor y empleado de la cuenta.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id            path    string                 true  "ID de la cuenta"
// @Param        X-CSRF-Token  header  string                 true  "Token anti-falsificación"
// @Param        body          body    dto.UpdateUserRequest  true  "Datos"
// @Success      303  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /Admin/EditUser/{id} [post]
func (h *AdminHandler) EditUser(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if _, err := h.uc.UpdateUser(c.UserContext(), c.Params("id"), in); err != nil {
		return h.errs.respond(c, err, dto.FormResponse{CSRFToken: csrfToken(c), Input: in})
	}
	return h.redirectWithFlash(c, PathManageUsers, FlashSuccess, "¡Usuario actualizado correctamente!")
}

// DeleteUserForm godoc
// @Summary      Confirmación de borrado de cuenta
// @Tags         admin
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.PageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /Admin/DeleteUser/{id} [get]
func (h *AdminHandler) DeleteUserForm(c *fiber.Ctx) error {
	return h.userForm(c)
}

// DeleteUser godoc
// @Summary      Eliminar cuenta
// @Tags         admin
// @Produce      json
// @Param        id            path    string  true  "ID de la cuenta"
// @Param        X-CSRF-Token  header  string  true  "Token anti-falsificación"
// @Success      303  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /Admin/DeleteUser/{id} [post]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	err := h.uc.DeleteUser(c.UserContext(), c.Params("id"))
	switch {
	case err == nil:
		return h.redirectWithFlash(c, PathManageUsers, FlashSuccess, "¡Usuario eliminado correctamente!")
	case errors.Is(err, domain.ErrNotFound):
		return h.errs.respond(c, err, nil)
	default:
		h.errs.log.Error().Err(err).Str("account_id", c.Params("id")).Msg("error al eliminar usuario")
		return h.redirectWithFlash(c, PathManageUsers, FlashError, "Error al eliminar el usuario.")
	}
}

// ManageUserRolesForm godoc
// @Summary      Roles de una cuenta
// @Tags         admin
// @Produce      json
// @Param        userId  path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.PageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /Admin/ManageUserRoles/{userId} [get]
func (h *AdminHandler) ManageUserRolesForm(c *fiber.Ctx) error {
	out, err := h.uc.UserRoles(c.UserContext(), c.Params("userId"))
	if err != nil {
		return h.errs.respond(c, err, nil)
	}
	return h.page(c, UserRolesFormResponse{CSRFToken: csrfToken(c), UserRolesResponse: *out})
}

// ManageUserRoles godoc
// @Summary      Actualizar roles de una cuenta
// @Description  La cuenta queda exactamente con los roles enviados.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        userId        path    string                      true  "ID de la cuenta"
// @Param        X-CSRF-Token  header  string                      true  "Token anti-falsificación"
// @Param        body          body    dto.UpdateUserRolesRequest  true  "Roles seleccionados"
// @Success      303  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /Admin/ManageUserRoles/{userId} [post]
func (h *AdminHandler) ManageUserRoles(c *fiber.Ctx) error {
	var in dto.UpdateUserRolesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if _, err := h.uc.UpdateUserRoles(c.UserContext(), c.Params("userId"), in); err != nil {
		return h.errs.respond(c, err, in)
	}
	return h.redirectWithFlash(c, PathManageUsers, FlashSuccess, "¡Roles del usuario actualizados correctamente!")
}
