package tareas

import (
	"context"
	"time"

	"github.com/MarcoDimanghene/backcocinagus/internal/application/dto"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain/repository"
)

// DiasRetencion es la antigüedad máxima de una tarea antes de que la purga
// la elimine, sin importar su estado.
const DiasRetencion = 60

// Barrer ejecuta el barrido de mantenimiento: purga las tareas creadas hace
// más de DiasRetencion días y pasa a VENCIDA toda tarea no terminal cuya
// fecha de ejecución es anterior al inicio del día actual (medianoche local),
// registrando al actor que disparó el barrido como responsable. Con actorID
// vacío (barrido por cron) el responsable existente se conserva.
func (uc *TareaUseCase) Barrer(ctx context.Context, actorID string) (purgadas, vencidas int64, err error) {
	now := time.Now()
	purgadas, err = uc.tareaRepo.PurgarCreadasAntes(ctx, now.AddDate(0, 0, -DiasRetencion))
	if err != nil {
		return 0, 0, err
	}
	vencidas, err = uc.tareaRepo.ExpirarProgramadasAntes(ctx, inicioDelDia(now), actorID, now)
	if err != nil {
		return purgadas, 0, err
	}
	return purgadas, vencidas, nil
}

// RefrescarYListarDia es una lectura con efectos: primero ejecuta Barrer (la
// consulta muta el store como precondición documentada del contrato) y luego
// lista las tareas del día pedido, ordenadas por prioridad descendente y
// nombre ascendente.
func (uc *TareaUseCase) RefrescarYListarDia(ctx context.Context, actorID string, fecha time.Time) ([]*dto.TareaResponse, *dto.SweepResponse, error) {
	purgadas, vencidas, err := uc.Barrer(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}

	inicio := inicioDelDia(fecha)
	fin := finDelDia(fecha)
	detalles, err := uc.tareaRepo.List(ctx, repository.TareaFilter{
		FechaInicio: &inicio,
		FechaFin:    &fin,
		Orden:       repository.OrdenDia,
	})
	if err != nil {
		return nil, nil, err
	}

	out := make([]*dto.TareaResponse, 0, len(detalles))
	for _, d := range detalles {
		out = append(out, toTareaDetalleResponse(d))
	}
	return out, &dto.SweepResponse{Purgadas: purgadas, Vencidas: vencidas}, nil
}

// inicioDelDia devuelve la medianoche local del día de t.
func inicioDelDia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// finDelDia devuelve el último instante del día de t (rango inclusivo).
func finDelDia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
