package entity

import "time"

// Estado es el estado del ciclo de vida de una tarea.
type Estado string

// Estados válidos de una Tarea. PENDIENTE es el inicial; TERMINADO y
// CANCELADA son terminales. VENCIDA la aplica el barrido de mantenimiento
// a las tareas cuya fecha de ejecución ya pasó.
const (
	EstadoPendiente Estado = "PENDIENTE"
	EstadoAsignada  Estado = "ASIGNADA"
	EstadoEnProceso Estado = "EN_PROCESO"
	EstadoTerminado Estado = "TERMINADO"
	EstadoCancelada Estado = "CANCELADA"
	EstadoVencida   Estado = "VENCIDA"
)

// Prioridad de una tarea. Por defecto MEDIA.
type Prioridad string

const (
	PrioridadBaja  Prioridad = "BAJA"
	PrioridadMedia Prioridad = "MEDIA"
	PrioridadAlta  Prioridad = "ALTA"
)

// EstadoValido indica si el valor pertenece al enum de estados.
func EstadoValido(e Estado) bool {
	switch e {
	case EstadoPendiente, EstadoAsignada, EstadoEnProceso, EstadoTerminado, EstadoCancelada, EstadoVencida:
		return true
	}
	return false
}

// PrioridadValida indica si el valor pertenece al enum de prioridades.
func PrioridadValida(p Prioridad) bool {
	switch p {
	case PrioridadBaja, PrioridadMedia, PrioridadAlta:
		return true
	}
	return false
}

// transiciones define desde qué estados se puede llegar a cada estado destino.
// La vía genérica de cambio de estado respeta esta tabla; la corrección
// administrativa (ForzarEstado) la omite deliberadamente.
var transiciones = map[Estado][]Estado{
	EstadoAsignada:  {EstadoPendiente, EstadoAsignada},
	EstadoEnProceso: {EstadoAsignada, EstadoPendiente},
	EstadoTerminado: {EstadoEnProceso},
	EstadoCancelada: {EstadoPendiente, EstadoAsignada, EstadoEnProceso},
	EstadoVencida:   {EstadoPendiente, EstadoAsignada, EstadoEnProceso},
}

// PuedeTransicionar indica si el paso desde -> hacia está permitido por la
// tabla de transiciones. Repetir el estado actual no es una transición válida
// salvo ASIGNADA -> ASIGNADA (re-asignación).
func PuedeTransicionar(desde, hacia Estado) bool {
	for _, e := range transiciones[hacia] {
		if e == desde {
			return true
		}
	}
	return false
}

// EsTerminal indica si el estado no admite más progreso de planificación.
// VENCIDA es terminal para el scheduler pero sigue siendo corregible por la
// vía administrativa.
func EsTerminal(e Estado) bool {
	return e == EstadoTerminado || e == EstadoCancelada || e == EstadoVencida
}

// Tarea es la ocurrencia de trabajo de cocina: puede nacer suelta o clonada
// desde un menú plantilla, y avanza por el ciclo de vida de Estado.
type Tarea struct {
	ID          string
	Nombre      string
	Descripcion string
	MenuID      *string // nil para tareas independientes
	Responsable *string // nil hasta que alguien la toma o se asigna
	Estado      Estado
	Prioridad   Prioridad
	// FechaEjecucion es el día programado de la ocurrencia, distinto de CreatedAt.
	FechaEjecucion time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	// HoraInicio se estampa al entrar por primera vez a EN_PROCESO;
	// HoraFin al llegar a TERMINADO.
	HoraInicio *time.Time
	HoraFin    *time.Time
}

// MarcarEstado aplica el nuevo estado y estampa los tiempos derivados:
// HoraInicio al entrar a EN_PROCESO (solo la primera vez), HoraFin al llegar
// a TERMINADO. No valida la legalidad de la transición; eso es del caso de uso.
func (t *Tarea) MarcarEstado(nuevo Estado, ahora time.Time) {
	t.Estado = nuevo
	switch nuevo {
	case EstadoEnProceso:
		if t.HoraInicio == nil {
			hi := ahora
			t.HoraInicio = &hi
		}
	case EstadoTerminado:
		hf := ahora
		t.HoraFin = &hf
	}
	t.UpdatedAt = ahora
}

// UsuarioResumen es la proyección de solo lectura del responsable que se
// adjunta a los listados (nunca se persiste sobre la tarea).
type UsuarioResumen struct {
	ID       string
	Username string
	Rol      string
}

// MenuResumen es la proyección de solo lectura del menú asociado.
type MenuResumen struct {
	ID     string
	Nombre string
}

// TareaDetalle es una tarea enriquecida con las proyecciones denormalizadas
// de responsable y menú para los listados.
type TareaDetalle struct {
	Tarea
	ResponsableInfo *UsuarioResumen
	MenuInfo        *MenuResumen
}
