package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcoDimanghene/backcocinagus/internal/domain/entity"
)

func TestPuedeTransicionar_TablaPermitida(t *testing.T) {
	casos := []struct {
		nombre string
		desde  entity.Estado
		hacia  entity.Estado
		ok     bool
	}{
		{"pendiente a asignada", entity.EstadoPendiente, entity.EstadoAsignada, true},
		{"reasignar asignada", entity.EstadoAsignada, entity.EstadoAsignada, true},
		{"pendiente a en_proceso", entity.EstadoPendiente, entity.EstadoEnProceso, true},
		{"asignada a en_proceso", entity.EstadoAsignada, entity.EstadoEnProceso, true},
		{"en_proceso a terminado", entity.EstadoEnProceso, entity.EstadoTerminado, true},
		{"pendiente a cancelada", entity.EstadoPendiente, entity.EstadoCancelada, true},
		{"en_proceso a vencida", entity.EstadoEnProceso, entity.EstadoVencida, true},

		{"pendiente a terminado salta pasos", entity.EstadoPendiente, entity.EstadoTerminado, false},
		{"asignada a terminado salta pasos", entity.EstadoAsignada, entity.EstadoTerminado, false},
		{"terminado es terminal", entity.EstadoTerminado, entity.EstadoEnProceso, false},
		{"cancelada es terminal", entity.EstadoCancelada, entity.EstadoAsignada, false},
		{"vencida no revive por la vía normal", entity.EstadoVencida, entity.EstadoPendiente, false},
		{"repetir pendiente no es transición", entity.EstadoPendiente, entity.EstadoPendiente, false},
		{"repetir en_proceso no es transición", entity.EstadoEnProceso, entity.EstadoEnProceso, false},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.ok, entity.PuedeTransicionar(c.desde, c.hacia))
		})
	}
}

func TestEsTerminal(t *testing.T) {
	assert.True(t, entity.EsTerminal(entity.EstadoTerminado))
	assert.True(t, entity.EsTerminal(entity.EstadoCancelada))
	assert.True(t, entity.EsTerminal(entity.EstadoVencida))
	assert.False(t, entity.EsTerminal(entity.EstadoPendiente))
	assert.False(t, entity.EsTerminal(entity.EstadoAsignada))
	assert.False(t, entity.EsTerminal(entity.EstadoEnProceso))
}

func TestEstadoValido_PrioridadValida(t *testing.T) {
	assert.True(t, entity.EstadoValido(entity.EstadoVencida))
	assert.False(t, entity.EstadoValido(entity.Estado("EN_PAUSA")))

	assert.True(t, entity.PrioridadValida(entity.PrioridadAlta))
	assert.False(t, entity.PrioridadValida(entity.Prioridad("URGENTE")))
	assert.False(t, entity.PrioridadValida(entity.Prioridad("")))
}

// HoraInicio se estampa una sola vez: volver a EN_PROCESO tras una pausa
// administrativa no la sobrescribe. HoraFin se estampa al TERMINADO.
func TestMarcarEstado_EstampaTiempos(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	tarea := entity.Tarea{Estado: entity.EstadoAsignada}

	tarea.MarcarEstado(entity.EstadoEnProceso, base)
	require.NotNil(t, tarea.HoraInicio)
	primeraHora := *tarea.HoraInicio
	assert.Equal(t, base, primeraHora)
	assert.Nil(t, tarea.HoraFin, "hora_fin solo se estampa al terminar")

	// Regresión administrativa y segundo arranque: hora_inicio no cambia.
	tarea.MarcarEstado(entity.EstadoAsignada, base.Add(10*time.Minute))
	tarea.MarcarEstado(entity.EstadoEnProceso, base.Add(20*time.Minute))
	assert.Equal(t, primeraHora, *tarea.HoraInicio)

	fin := base.Add(time.Hour)
	tarea.MarcarEstado(entity.EstadoTerminado, fin)
	require.NotNil(t, tarea.HoraFin)
	assert.Equal(t, fin, *tarea.HoraFin)
	assert.Equal(t, fin, tarea.UpdatedAt)
}

func TestMarcarEstado_SinTiemposParaOtrosEstados(t *testing.T) {
	ahora := time.Now()
	tarea := entity.Tarea{Estado: entity.EstadoPendiente}

	tarea.MarcarEstado(entity.EstadoCancelada, ahora)
	assert.Nil(t, tarea.HoraInicio)
	assert.Nil(t, tarea.HoraFin)
	assert.Equal(t, entity.EstadoCancelada, tarea.Estado)
}
