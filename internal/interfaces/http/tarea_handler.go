package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/MarcoDimanghene/backcocinagus/internal/application/dto"
	"github.com/MarcoDimanghene/backcocinagus/internal/application/tareas"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain/entity"
)

// TareaHandler maneja las peticiones HTTP del ciclo de vida de tareas.
type TareaHandler struct {
	uc *tareas.TareaUseCase
}

func NewTareaHandler(uc *tareas.TareaUseCase) *TareaHandler {
	return &TareaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tarea
// @Tags         tareas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTareaRequest  true  "Datos de la tarea"
// @Success      201   {object}  dto.TareaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tarea [post]
func (h *TareaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTareaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validarRequest(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Crear(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar tareas con filtros opcionales
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        estado        query  string  false  "Estado"
// @Param        responsable   query  string  false  "ID del responsable"
// @Param        fecha_inicio  query  string  false  "YYYY-MM-DD"
// @Param        fecha_fin     query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {array}  dto.TareaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tarea [get]
func (h *TareaHandler) List(c *fiber.Ctx) error {
	var in dto.ListarTareasRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.Listar(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TareasDelDia godoc
// @Summary      Tareas del día, tras refrescar vencimientos y purga
// @Description  Ejecuta el barrido de mantenimiento y devuelve las tareas
// @Description  cuya fecha de ejecución cae en el día indicado (hoy si se omite),
// @Description  ordenadas por prioridad descendente.
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        fecha  query  string  false  "YYYY-MM-DD, por defecto hoy"
// @Success      200  {array}  dto.TareaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tarea/dia [get]
func (h *TareaHandler) TareasDelDia(c *fiber.Ctx) error {
	fecha := time.Now()
	if q := c.Query("fecha"); q != "" {
		parsed, err := time.ParseInLocation("2006-01-02", q, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, se espera YYYY-MM-DD"})
		}
		fecha = parsed
	}
	out, _, err := h.uc.RefrescarYListarDia(c.Context(), GetUID(c), fecha)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener tarea por ID con responsable y menú denormalizados
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.TareaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tarea/{id} [get]
func (h *TareaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.ObtenerPorID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PorResponsable godoc
// @Summary      Tareas asignadas a un usuario
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del responsable"
// @Success      200  {array}  dto.TareaResponse
// @Router       /api/tarea/responsable/{id} [get]
func (h *TareaHandler) PorResponsable(c *fiber.Ctx) error {
	out, err := h.uc.ListarPorResponsable(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Tomar godoc
// @Summary      Tomar una tarea pendiente
// @Description  El usuario autenticado se autoasigna la tarea. Solo prospera
// @Description  si la tarea sigue PENDIENTE: ante una carrera gana uno solo.
// @Tags         tareas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.TareaResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/tarea/{id}/tomar [post]
func (h *TareaHandler) Tomar(c *fiber.Ctx) error {
	out, err := h.uc.Tomar(c.Context(), c.Params("id"), GetUID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Asignar godoc
// @Summary      Asignar un responsable a una tarea
// @Tags         tareas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la tarea"
// @Param        body  body  dto.AsignarRequest  true  "Responsable"
// @Success      200   {object}  dto.TareaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tarea/{id}/asignar [post]
func (h *TareaHandler) Asignar(c *fiber.Ctx) error {
	var in dto.AsignarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validarRequest(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Asignar(c.Context(), c.Params("id"), in.Responsable)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CambiarEstado godoc
// @Summary      Transicionar el estado de una tarea
// @Description  Aplica la tabla de transiciones permitidas. Al entrar por
// @Description  primera vez a EN_PROCESO estampa hora_inicio; al llegar a
// @Description  TERMINADO estampa hora_fin.
// @Tags         tareas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la tarea"
// @Param        body  body  dto.CambiarEstadoRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.TareaResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tarea/{id}/estado [post]
func (h *TareaHandler) CambiarEstado(c *fiber.Ctx) error {
	return h.cambiarEstado(c, false)
}

// ForzarEstado godoc
// @Summary      Forzar un estado saltando la tabla de transiciones
// @Tags         tareas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la tarea"
// @Param        body  body  dto.CambiarEstadoRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.TareaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tarea/{id}/forzar-estado [post]
func (h *TareaHandler) ForzarEstado(c *fiber.Ctx) error {
	return h.cambiarEstado(c, true)
}

func (h *TareaHandler) cambiarEstado(c *fiber.Ctx, forzar bool) error {
	var in dto.CambiarEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validarRequest(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	var (
		out *dto.TareaResponse
		err error
	)
	if forzar {
		out, err = h.uc.ForzarEstado(c.Context(), c.Params("id"), entity.Estado(in.Estado))
	} else {
		out, err = h.uc.CambiarEstado(c.Context(), c.Params("id"), entity.Estado(in.Estado))
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar tarea (parcial)
// @Tags         tareas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la tarea"
// @Param        body  body  dto.UpdateTareaRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.TareaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tarea/{id} [patch]
func (h *TareaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTareaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validarRequest(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Actualizar(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Clonar godoc
// @Summary      Clonar una tarea a una o más fechas
// @Description  Cada clon nace PENDIENTE salvo que el override traiga un
// @Description  responsable, en cuyo caso nace ASIGNADA. Los campos ausentes
// @Description  se heredan de la tarea origen.
// @Tags         tareas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la tarea origen"
// @Param        body  body  dto.ClonarRequest  true  "Fechas destino y overrides"
// @Success      201   {object}  dto.ClonarResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/tarea/{id}/clonar [post]
func (h *TareaHandler) Clonar(c *fiber.Ctx) error {
	var in dto.ClonarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validarRequest(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Clonar(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar tarea
// @Description  Si la tarea referencia un menú, también se quita de sus
// @Description  tareas base en la misma transacción.
// @Tags         tareas
// @Security     Bearer
// @Param        id  path  string  true  "ID de la tarea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tarea/{id} [delete]
func (h *TareaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Eliminar(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
