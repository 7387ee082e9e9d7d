package tareas

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MarcoDimanghene/backcocinagus/internal/application/dto"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain/entity"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain/repository"
)

// formatoFecha es el formato aceptado en los filtros de rango.
const formatoFecha = "2006-01-02"

// Listar consulta la colección con cualquier combinación de estado,
// responsable y rango de fecha de ejecución (inclusivo; el día final se
// extiende a su último instante). Un estado fuera del enum o un responsable
// que no es un identificador válido cortan con ErrBadRequest sin tocar el
// store. Orden general: fecha de ejecución desc, prioridad desc, nombre asc.
func (uc *TareaUseCase) Listar(ctx context.Context, in dto.ListarTareasRequest) ([]*dto.TareaResponse, error) {
	f := repository.TareaFilter{Orden: repository.OrdenGeneral}

	if in.Estado != "" {
		estado := entity.Estado(in.Estado)
		if !entity.EstadoValido(estado) {
			return nil, domain.ErrBadRequest
		}
		f.Estado = &estado
	}
	if in.Responsable != "" {
		if _, err := uuid.Parse(in.Responsable); err != nil {
			return nil, domain.ErrBadRequest
		}
		f.Responsable = &in.Responsable
	}
	if in.FechaInicio != "" {
		t, err := time.ParseInLocation(formatoFecha, in.FechaInicio, time.Local)
		if err != nil {
			return nil, domain.ErrBadRequest
		}
		inicio := inicioDelDia(t)
		f.FechaInicio = &inicio
	}
	if in.FechaFin != "" {
		t, err := time.ParseInLocation(formatoFecha, in.FechaFin, time.Local)
		if err != nil {
			return nil, domain.ErrBadRequest
		}
		fin := finDelDia(t)
		f.FechaFin = &fin
	}

	detalles, err := uc.tareaRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TareaResponse, 0, len(detalles))
	for _, d := range detalles {
		out = append(out, toTareaDetalleResponse(d))
	}
	return out, nil
}

// ListarPorResponsable lista las tareas asignadas a un usuario.
func (uc *TareaUseCase) ListarPorResponsable(ctx context.Context, responsableID string) ([]*dto.TareaResponse, error) {
	return uc.Listar(ctx, dto.ListarTareasRequest{Responsable: responsableID})
}
