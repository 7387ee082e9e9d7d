package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MarcoDimanghene/backcocinagus/internal/application/dto"
	"github.com/MarcoDimanghene/backcocinagus/internal/application/tareas"
	"github.com/MarcoDimanghene/backcocinagus/internal/application/usecase"
)

// MenuHandler maneja las peticiones HTTP para los menús plantilla.
type MenuHandler struct {
	uc     *usecase.MenuUseCase
	tareas *tareas.TareaUseCase
}

// NewMenuHandler construye el handler. Recibe también el motor de tareas
// porque la carga de un menú a una fecha es una expansión plantilla -> tareas.
func NewMenuHandler(uc *usecase.MenuUseCase, tareasUC *tareas.TareaUseCase) *MenuHandler {
	return &MenuHandler{uc: uc, tareas: tareasUC}
}

// Create godoc
// @Summary      Crear menú plantilla
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMenuRequest  true  "Datos del menú"
// @Success      201   {object}  dto.MenuResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/menu [post]
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMenuRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validarRequest(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar menús con sus tareas base
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MenuResponse
// @Router       /api/menu [get]
func (h *MenuHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener menú por ID
// @Tags         menus
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del menú"
// @Success      200  {object}  dto.MenuResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu/{id} [get]
func (h *MenuHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar menú (parcial)
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del menú"
// @Param        body  body  dto.UpdateMenuRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.MenuResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menu/{id} [patch]
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMenuRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validarRequest(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar menú
// @Tags         menus
// @Security     Bearer
// @Param        id  path  string  true  "ID del menú"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/menu/{id} [delete]
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CargarMenu godoc
// @Summary      Instanciar las tareas base de un menú para una fecha
// @Tags         menus
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del menú"
// @Param        body  body  dto.CargarMenuRequest  true  "Fecha destino"
// @Success      201   {object}  dto.ClonarResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/menu/{id}/cargar [post]
func (h *MenuHandler) CargarMenu(c *fiber.Ctx) error {
	var in dto.CargarMenuRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validarRequest(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.tareas.CargarMenu(c.Context(), c.Params("id"), in.Fecha)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
