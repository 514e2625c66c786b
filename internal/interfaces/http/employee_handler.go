package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
	"github.com/jhoicas/AgriConnect-api/internal/application/usecase"
)

// PathEmployeeFarmers listado de agricultores del panel del empleado.
const PathEmployeeFarmers = "/Employee/ViewFarmers"

// EmployeeHandler panel del empleado.
type EmployeeHandler struct {
	base
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(b base, uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{base: b, uc: uc}
}

// Dashboard godoc
// @Summary      Panel del empleado
// @Tags         employee
// @Produce      json
// @Success      200  {object}  dto.PageResponse
// @Router       /Employee/Dashboard [get]
func (h *EmployeeHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err, nil)
	}
	return h.page(c, out)
}

// ViewFarmers godoc
// @Summary      Listar agricultores
// @Tags         employee
// @Produce      json
// @Success      200  {object}  dto.PageResponse
// @Router       /Employee/ViewFarmers [get]
func (h *EmployeeHandler) ViewFarmers(c *fiber.Ctx) error {
	out, err := h.uc.ListFarmers(c.UserContext())
	if err != nil {
		return h.errs.respond(c, err, nil)
	}
	return h.page(c, out)
}

// ViewFarmerProducts godoc
// @Summary      Productos de un agricultor
// @Tags         employee
// @Produce      json
// @Param        farmerId  path  int  true  "ID del agricultor"
// @Success      200  {object}  dto.PageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /Employee/ViewFarmerProducts/{farmerId} [get]
func (h *EmployeeHandler) ViewFarmerProducts(c *fiber.Ctx) error {
	out, err := h.uc.FarmerProducts(c.UserContext(), paramID(c, "farmerId"))
	if err != nil {
		return h.errs.respond(c, err, nil)
	}
	return h.page(c, out)
}

func (h *EmployeeHandler) AddFarmerForm(c *fiber.Ctx) error {
	return h.form(c, nil)
}

// AddFarmer godoc
// @Summary      Dar de alta un agricultor
// @Tags         employee
// @Accept       json
// @Produce      json
// @Param        X-CSRF-Token  header  string             true  "Token anti-falsificación"
// @Param        body          body    dto.FarmerRequest  true  "Agricultor"
// @Success      303  {object}  dto.MessageResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /Employee/AddFarmer [post]
func (h *EmployeeHandler) AddFarmer(c *fiber.Ctx) error {
	var in dto.FarmerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddFarmer(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err, dto.FormResponse{CSRFToken: csrfToken(c), Input: in})
	}
	msg := fmt.Sprintf("¡Agricultor '%s' agregado correctamente!", out.FullName)
	return h.redirectWithFlash(c, PathEmployeeFarmers, FlashSuccess, msg)
}

// FilterProducts godoc
// @Summary      Filtrar productos
// @Description  Categoría exacta y rango inclusivo de fecha de producción (fechas 2006-01-02).
// @Tags         employee
// @Produce      json
// @Param        category  query  string  false  "Categoría"
// @Param        fromDate  query  string  false  "Desde"
// @Param        toDate    query  string  false  "Hasta (incluye todo el día)"
// @Success      200  {object}  dto.PageResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /Employee/FilterProducts [get]
func (h *EmployeeHandler) FilterProducts(c *fiber.Ctx) error {
	var in dto.ProductFilterRequest
	var err error
	if c.Method() == fiber.MethodPost {
		err = c.BodyParser(&in)
	} else {
		err = c.QueryParser(&in)
	}
	if err != nil {
		return badBody(c)
	}
	out, err := h.uc.FilterProducts(c.UserContext(), in)
	if err != nil {
		return h.errs.respond(c, err, in)
	}
	return h.page(c, out)
}

// ExportProducts godoc
// @Summary      Exportar productos filtrados a PDF
// @Tags         employee
// @Produce      application/pdf
// @Param        category  query  string  false  "Categoría"
// @Param        fromDate  query  string  false  "Desde"
// @Param        toDate    query  string  false  "Hasta"
// @Success      200  {file}  binary
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /Employee/ExportProducts [get]
func (h *EmployeeHandler) ExportProducts(c *fiber.Ctx) error {
	var in dto.ProductFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	pdf, err := h.uc.ExportProducts(c.UserContext(), GetEmail(c), in)
	if err != nil {
		return h.errs.respond(c, err, in)
	}
	filename := fmt.Sprintf("productos-%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
