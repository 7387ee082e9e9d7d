package entity

import "time"

// Menu es la plantilla nombrada de un servicio de cocina: agrupa referencias
// débiles a tareas base que CargarMenu expande en ocurrencias fechadas.
type Menu struct {
	ID          string
	Nombre      string
	Descripcion string
	Disponible  bool
	// TareasBase son los IDs de las tareas plantilla asociadas. El menú no es
	// dueño de las tareas; borrar una tarea solo quita la referencia.
	TareasBase []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
