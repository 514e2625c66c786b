package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
	"github.com/jhoicas/AgriConnect-api/internal/application/usecase"
	"github.com/jhoicas/AgriConnect-api/internal/domain"
)

// Rutas y mensajes del panel del agricultor.
const (
	PathFarmerProducts = "/Farmer/ViewProducts"

	msgProductAdded     = "¡Producto agregado correctamente!"
	msgProductUpdated   = "¡Producto actualizado correctamente!"
	msgProductDeleted   = "¡Producto eliminado correctamente!"
	msgCannotEditProd   = "No está autorizado para editar este producto."
	msgCannotDeleteProd = "No está autorizado para eliminar este producto."
)

// ProductFormResponse formulario de edición o borrado de un producto existente.
type ProductFormResponse struct {
	CSRFToken string              `json:"csrf_token"`
	Product   dto.ProductResponse `json:"product"`
}

// FarmerHandler panel del agricultor: todas las operaciones se limitan a sus propios productos.
type FarmerHandler struct {
	base
	uc *usecase.FarmerUseCase
}

// NewFarmerHandler construye el handler.
func NewFarmerHandler(b base, uc *usecase.FarmerUseCase) *FarmerHandler {
	return &FarmerHandler{base: b, uc: uc}
}

// ownerError un producto ajeno redirige al listado propio con un flash de error.
func (h *FarmerHandler) ownerError(c *fiber.Ctx, err error, deniedMsg string, form any) error {
	if errors.Is(err, domain.ErrForbidden) {
		return h.redirectWithFlash(c, PathFarmerProducts, FlashError, deniedMsg)
	}
	return h.errs.respond(c, err, form)
}

// Dashboard godoc
// @Summary      Panel del agricultor
// @Tags         farmer
// @Produce      json
// @Success      200  {object}  dto.PageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /Farmer/Dashboard [get]
func (h *FarmerHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext(), GetUserID(c))
	if err != nil {
		return h.errs.respond(c, err, nil)
	}
	return h.page(c, out)
}

// ViewProducts godoc
// @Summary      Productos del agricultor autenticado
// @Tags         farmer
// @Produce      json
// @Success      200  {object}  dto.PageResponse
// @Router       /Farmer/ViewProducts [get]
func (h *FarmerHandler) ViewProducts(c *fiber.Ctx) error {
	out, err := h.uc.ListOwnProducts(c.UserContext(), GetUserID(c))
	if err != nil {
		return h.errs.respond(c, err, nil)
	}
	return h.page(c, out)
}

func (h *FarmerHandler) AddProductForm(c *fiber.Ctx) error {
	return h.form(c, nil)
}

// AddProduct godoc
// @Summary      Agregar producto
// @Tags         farmer
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token  header  string              true  "Token anti-falsificación"
// @Param        body          body    dto.ProductRequest  true  "Producto"
// @Success      303  {object}  dto.MessageResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /Farmer/AddProduct [post]
func (h *FarmerHandler) AddProduct(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if _, err := h.uc.CreateProduct(c.UserContext(), GetUserID(c), in); err != nil {
		return h.errs.respond(c, err, dto.FormResponse{CSRFToken: csrfToken(c), Input: in})
	}
	return h.redirectWithFlash(c, PathFarmerProducts, FlashSuccess, msgProductAdded)
}

// EditProductForm godoc
// @Summary      Producto a editar
// @Tags         farmer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.PageResponse
// @Success      303  {object}  dto.MessageResponse  "producto de otro agricultor"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /Farmer/EditProduct/{id} [get]
func (h *FarmerHandler) EditProductForm(c *fiber.Ctx) error {
	out, err := h.uc.GetProductForEdit(c.UserContext(), GetUserID(c), paramID(c, "id"))
	if err != nil {
		return h.ownerError(c, err, msgCannotEditProd, nil)
	}
	return h.page(c, ProductFormResponse{CSRFToken: csrfToken(c), Product: *out})
}

// EditProduct godoc
// @Summary      Editar producto
// @Description  Solo se aplican nombre, categoría, fecha de producción y descripción.
// @Tags         farmer
// @Accept       json
// @Produce      json
// @Param        id            path    int                 true  "ID del producto"
// @Param        X-CSRF-Token  header  string              true  "Token anti-falsificación"
// @Param        body          body    dto.ProductRequest  true  "Producto"
// @Success      303  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /Farmer/EditProduct/{id} [post]
func (h *FarmerHandler) EditProduct(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if _, err := h.uc.UpdateProduct(c.UserContext(), GetUserID(c), paramID(c, "id"), in); err != nil {
		return h.ownerError(c, err, msgCannotEditProd, dto.FormResponse{CSRFToken: csrfToken(c), Input: in})
	}
	return h.redirectWithFlash(c, PathFarmerProducts, FlashSuccess, msgProductUpdated)
}

// DeleteProductForm godoc
// @Summary      Confirmación de borrado
// @Tags         farmer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.PageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /Farmer/DeleteProduct/{id} [get]
func (h *FarmerHandler) DeleteProductForm(c *fiber.Ctx) error {
	out, err := h.uc.GetProductForDelete(c.UserContext(), GetUserID(c), paramID(c, "id"))
	if err != nil {
		return h.ownerError(c, err, msgCannotDeleteProd, nil)
	}
	return h.page(c, ProductFormResponse{CSRFToken: csrfToken(c), Product: *out})
}

// DeleteProduct godoc
// @Summary      Eliminar producto
// @Tags         farmer
// @Produce      json
// @Param        id            path    int     true  "ID del producto"
// @Param        X-CSRF-Token  header  string  true  "Token anti-falsificación"
// @Success      303  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /Farmer/DeleteProduct/{id} [post]
func (h *FarmerHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.uc.DeleteProduct(c.UserContext(), GetUserID(c), paramID(c, "id")); err != nil {
		return h.ownerError(c, err, msgCannotDeleteProd, nil)
	}
	return h.redirectWithFlash(c, PathFarmerProducts, FlashSuccess, msgProductDeleted)
}
