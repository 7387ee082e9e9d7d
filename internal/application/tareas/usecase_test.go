package tareas_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcoDimanghene/backcocinagus/internal/application/dto"
	"github.com/MarcoDimanghene/backcocinagus/internal/application/tareas"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain/entity"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria: implementa los tres puertos de persistencia y TxRunner.
// El mutex hace atómico TomarPendiente, igual que el UPDATE condicional en
// PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu       sync.Mutex
	tareas   map[string]*entity.Tarea
	menus    map[string]*entity.Menu
	usuarios map[string]*entity.Usuario

	listCalls int
}

func newMemStore() *memStore {
	return &memStore{
		tareas:   make(map[string]*entity.Tarea),
		menus:    make(map[string]*entity.Menu),
		usuarios: make(map[string]*entity.Usuario),
	}
}

func copiaTarea(t *entity.Tarea) *entity.Tarea {
	c := *t
	if t.MenuID != nil {
		v := *t.MenuID
		c.MenuID = &v
	}
	if t.Responsable != nil {
		v := *t.Responsable
		c.Responsable = &v
	}
	if t.HoraInicio != nil {
		v := *t.HoraInicio
		c.HoraInicio = &v
	}
	if t.HoraFin != nil {
		v := *t.HoraFin
		c.HoraFin = &v
	}
	return &c
}

// --- repository.TareaRepository ---

func (s *memStore) Create(ctx context.Context, t *entity.Tarea) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tareas[t.ID] = copiaTarea(t)
	return nil
}

func (s *memStore) CreateBatch(ctx context.Context, ts []*entity.Tarea) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range ts {
		s.tareas[t.ID] = copiaTarea(t)
	}
	return nil
}

func (s *memStore) GetByID(ctx context.Context, id string) (*entity.Tarea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tareas[id]
	if !ok {
		return nil, nil
	}
	return copiaTarea(t), nil
}

func (s *memStore) GetDetalleByID(ctx context.Context, id string) (*entity.TareaDetalle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tareas[id]
	if !ok {
		return nil, nil
	}
	return s.detalleLocked(t), nil
}

func (s *memStore) detalleLocked(t *entity.Tarea) *entity.TareaDetalle {
	d := &entity.TareaDetalle{Tarea: *copiaTarea(t)}
	if t.Responsable != nil {
		if u, ok := s.usuarios[*t.Responsable]; ok {
			d.ResponsableInfo = &entity.UsuarioResumen{ID: u.ID, Username: u.Username, Rol: u.Rol}
		}
	}
	if t.MenuID != nil {
		if m, ok := s.menus[*t.MenuID]; ok {
			d.MenuInfo = &entity.MenuResumen{ID: m.ID, Nombre: m.Nombre}
		}
	}
	return d
}

func (s *memStore) GetByIDs(ctx context.Context, ids []string) ([]*entity.Tarea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Tarea, 0, len(ids))
	for _, id := range ids {
		if t, ok := s.tareas[id]; ok {
			out = append(out, copiaTarea(t))
		}
	}
	return out, nil
}

func (s *memStore) Update(ctx context.Context, t *entity.Tarea) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tareas[t.ID]; !ok {
		return domain.ErrNotFound
	}
	s.tareas[t.ID] = copiaTarea(t)
	return nil
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tareas[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.tareas, id)
	return nil
}

func prioridadPeso(p entity.Prioridad) int {
	switch p {
	case entity.PrioridadAlta:
		return 3
	case entity.PrioridadMedia:
		return 2
	default:
		return 1
	}
}

func (s *memStore) List(ctx context.Context, f repository.TareaFilter) ([]*entity.TareaDetalle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++

	out := make([]*entity.TareaDetalle, 0)
	for _, t := range s.tareas {
		if f.Estado != nil && t.Estado != *f.Estado {
			continue
		}
		if f.Responsable != nil && (t.Responsable == nil || *t.Responsable != *f.Responsable) {
			continue
		}
		if f.FechaInicio != nil && t.FechaEjecucion.Before(*f.FechaInicio) {
			continue
		}
		if f.FechaFin != nil && t.FechaEjecucion.After(*f.FechaFin) {
			continue
		}
		out = append(out, s.detalleLocked(t))
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if f.Orden == repository.OrdenGeneral && !a.FechaEjecucion.Equal(b.FechaEjecucion) {
			return a.FechaEjecucion.After(b.FechaEjecucion)
		}
		if pa, pb := prioridadPeso(a.Prioridad), prioridadPeso(b.Prioridad); pa != pb {
			return pa > pb
		}
		return a.Nombre < b.Nombre
	})
	return out, nil
}

func (s *memStore) TomarPendiente(ctx context.Context, id, actorID string, ahora time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tareas[id]
	if !ok || t.Estado != entity.EstadoPendiente {
		return false, nil
	}
	actor := actorID
	t.Estado = entity.EstadoAsignada
	t.Responsable = &actor
	t.UpdatedAt = ahora
	return true, nil
}

func (s *memStore) PurgarCreadasAntes(ctx context.Context, corte time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, t := range s.tareas {
		if t.CreatedAt.Before(corte) {
			delete(s.tareas, id)
			n++
		}
	}
	return n, nil
}

func (s *memStore) ExpirarProgramadasAntes(ctx context.Context, corte time.Time, actorID string, ahora time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, t := range s.tareas {
		if entity.EsTerminal(t.Estado) || !t.FechaEjecucion.Before(corte) {
			continue
		}
		t.Estado = entity.EstadoVencida
		if actorID != "" {
			actor := actorID
			t.Responsable = &actor
		}
		t.UpdatedAt = ahora
		n++
	}
	return n, nil
}

// --- repository.MenuRepository ---

func (s *memStore) CreateMenu(ctx context.Context, m *entity.Menu) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menus[m.ID] = m
	return nil
}

func (s *memStore) GetMenuByID(ctx context.Context, id string) (*entity.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.menus[id]
	if !ok {
		return nil, nil
	}
	c := *m
	c.TareasBase = append([]string(nil), m.TareasBase...)
	return &c, nil
}

func (s *memStore) ListMenus(ctx context.Context) ([]*entity.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Menu, 0, len(s.menus))
	for _, m := range s.menus {
		out = append(out, m)
	}
	return out, nil
}

func (s *memStore) UpdateMenu(ctx context.Context, m *entity.Menu) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menus[m.ID] = m
	return nil
}

func (s *memStore) DeleteMenu(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.menus, id)
	return nil
}

func (s *memStore) AgregarTareaBase(ctx context.Context, menuID, tareaID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.menus[menuID]
	if !ok {
		return domain.ErrNotFound
	}
	for _, id := range m.TareasBase {
		if id == tareaID {
			return nil
		}
	}
	m.TareasBase = append(m.TareasBase, tareaID)
	return nil
}

func (s *memStore) QuitarTareaBase(ctx context.Context, menuID, tareaID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.menus[menuID]
	if !ok {
		return nil
	}
	for i, id := range m.TareasBase {
		if id == tareaID {
			m.TareasBase = append(m.TareasBase[:i], m.TareasBase[i+1:]...)
			return nil
		}
	}
	return nil
}

// menuPort adapta memStore a repository.MenuRepository sin colisionar con los
// nombres de método del puerto de tareas.
type menuPort struct{ s *memStore }

func (p menuPort) Create(ctx context.Context, m *entity.Menu) error  { return p.s.CreateMenu(ctx, m) }
func (p menuPort) GetByID(ctx context.Context, id string) (*entity.Menu, error) {
	return p.s.GetMenuByID(ctx, id)
}
func (p menuPort) List(ctx context.Context) ([]*entity.Menu, error) { return p.s.ListMenus(ctx) }
func (p menuPort) Update(ctx context.Context, m *entity.Menu) error { return p.s.UpdateMenu(ctx, m) }
func (p menuPort) Delete(ctx context.Context, id string) error      { return p.s.DeleteMenu(ctx, id) }
func (p menuPort) AgregarTareaBase(ctx context.Context, menuID, tareaID string) error {
	return p.s.AgregarTareaBase(ctx, menuID, tareaID)
}
func (p menuPort) QuitarTareaBase(ctx context.Context, menuID, tareaID string) error {
	return p.s.QuitarTareaBase(ctx, menuID, tareaID)
}

// usuarioPort adapta memStore a repository.UsuarioRepository.
type usuarioPort struct{ s *memStore }

func (p usuarioPort) Create(ctx context.Context, u *entity.Usuario) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	p.s.usuarios[u.ID] = u
	return nil
}
func (p usuarioPort) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	u, ok := p.s.usuarios[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}
func (p usuarioPort) GetByUsername(ctx context.Context, username string) (*entity.Usuario, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	for _, u := range p.s.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (p usuarioPort) Update(ctx context.Context, u *entity.Usuario) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	p.s.usuarios[u.ID] = u
	return nil
}
func (p usuarioPort) List(ctx context.Context) ([]*entity.Usuario, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	out := make([]*entity.Usuario, 0, len(p.s.usuarios))
	for _, u := range p.s.usuarios {
		out = append(out, u)
	}
	return out, nil
}
func (p usuarioPort) Delete(ctx context.Context, id string) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	delete(p.s.usuarios, id)
	return nil
}

// txPort ejecuta el callback contra el mismo store; todo es atómico bajo el
// mutex de cada operación.
type txPort struct{ s *memStore }

func (p txPort) Run(ctx context.Context, fn func(repository.TareaRepository, repository.MenuRepository) error) error {
	return fn(p.s, menuPort{p.s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de fixture
// ──────────────────────────────────────────────────────────────────────────────

func nuevoUseCase(t *testing.T) (*tareas.TareaUseCase, *memStore) {
	t.Helper()
	s := newMemStore()
	uc := tareas.NewTareaUseCase(s, menuPort{s}, usuarioPort{s}, txPort{s})
	return uc, s
}

func usuarioDePrueba(s *memStore, username string) *entity.Usuario {
	u := &entity.Usuario{ID: uuid.New().String(), Username: username, Rol: entity.RolCocinero, Activo: true}
	s.usuarios[u.ID] = u
	return u
}

func menuDePrueba(s *memStore, nombre string, tareasBase ...string) *entity.Menu {
	m := &entity.Menu{ID: uuid.New().String(), Nombre: nombre, Descripcion: "menú de prueba", Disponible: true, TareasBase: tareasBase}
	s.menus[m.ID] = m
	return m
}

func tareaDePrueba(s *memStore, nombre string, estado entity.Estado, fecha time.Time) *entity.Tarea {
	now := time.Now()
	t := &entity.Tarea{
		ID:             uuid.New().String(),
		Nombre:         nombre,
		Descripcion:    "tarea de prueba",
		Estado:         estado,
		Prioridad:      entity.PrioridadMedia,
		FechaEjecucion: fecha,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.tareas[t.ID] = t
	return t
}

func hoy() time.Time { return time.Now() }

func ayer() time.Time { return time.Now().AddDate(0, 0, -1) }

// ──────────────────────────────────────────────────────────────────────────────
// Crear
// ──────────────────────────────────────────────────────────────────────────────

func TestCrear_SinResponsableNacePendiente(t *testing.T) {
	uc, _ := nuevoUseCase(t)

	out, err := uc.Crear(context.Background(), dto.CreateTareaRequest{
		Nombre:         "picar cebolla",
		FechaEjecucion: hoy(),
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.EstadoPendiente), out.Estado)
	assert.Equal(t, string(entity.PrioridadMedia), out.Prioridad, "prioridad por defecto MEDIA")
	assert.Nil(t, out.Responsable)
	assert.Nil(t, out.HoraInicio)
	assert.Nil(t, out.HoraFin)
}

func TestCrear_ConResponsableNaceAsignada(t *testing.T) {
	uc, s := nuevoUseCase(t)
	u := usuarioDePrueba(s, "marco")

	out, err := uc.Crear(context.Background(), dto.CreateTareaRequest{
		Nombre:         "preparar salsa",
		Responsable:    &u.ID,
		Prioridad:      "ALTA",
		FechaEjecucion: hoy(),
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.EstadoAsignada), out.Estado)
	require.NotNil(t, out.Responsable)
	assert.Equal(t, u.ID, *out.Responsable)
	assert.Equal(t, "ALTA", out.Prioridad)
}

func TestCrear_ResponsableInexistente(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	fantasma := uuid.New().String()

	_, err := uc.Crear(context.Background(), dto.CreateTareaRequest{
		Nombre:         "x",
		Responsable:    &fantasma,
		FechaEjecucion: hoy(),
	})
	assert.ErrorIs(t, err, domain.ErrUsuarioNoEncontrado)
}

func TestCrear_PrioridadInvalida(t *testing.T) {
	uc, s := nuevoUseCase(t)

	_, err := uc.Crear(context.Background(), dto.CreateTareaRequest{
		Nombre:         "x",
		Prioridad:      "URGENTE",
		FechaEjecucion: hoy(),
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.Empty(t, s.tareas, "no debe persistirse nada")
}

func TestCrear_ConMenuRegistraTareaBase(t *testing.T) {
	uc, s := nuevoUseCase(t)
	m := menuDePrueba(s, "almuerzo")

	out, err := uc.Crear(context.Background(), dto.CreateTareaRequest{
		Nombre:         "hornear pan",
		MenuID:         &m.ID,
		FechaEjecucion: hoy(),
	})
	require.NoError(t, err)

	assert.Contains(t, s.menus[m.ID].TareasBase, out.ID,
		"la tarea debe quedar registrada como tarea base del menú")
}

func TestCrear_MenuInexistente(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	fantasma := uuid.New().String()

	_, err := uc.Crear(context.Background(), dto.CreateTareaRequest{
		Nombre:         "x",
		MenuID:         &fantasma,
		FechaEjecucion: hoy(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tomar (take)
// ──────────────────────────────────────────────────────────────────────────────

func TestTomar_PendienteQuedaAsignadaAlActor(t *testing.T) {
	uc, s := nuevoUseCase(t)
	actor := usuarioDePrueba(s, "cocinero1")
	tarea := tareaDePrueba(s, "lavar verduras", entity.EstadoPendiente, hoy())

	out, err := uc.Tomar(context.Background(), tarea.ID, actor.ID)
	require.NoError(t, err)

	assert.Equal(t, string(entity.EstadoAsignada), out.Estado)
	require.NotNil(t, out.Responsable)
	assert.Equal(t, actor.ID, *out.Responsable)
}

func TestTomar_YaTomada_ConflictSinModificar(t *testing.T) {
	uc, s := nuevoUseCase(t)
	primero := usuarioDePrueba(s, "cocinero1")
	segundo := usuarioDePrueba(s, "cocinero2")
	tarea := tareaDePrueba(s, "lavar verduras", entity.EstadoPendiente, hoy())

	_, err := uc.Tomar(context.Background(), tarea.ID, primero.ID)
	require.NoError(t, err)

	_, err = uc.Tomar(context.Background(), tarea.ID, segundo.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	guardada := s.tareas[tarea.ID]
	require.NotNil(t, guardada.Responsable)
	assert.Equal(t, primero.ID, *guardada.Responsable,
		"el intento perdedor no debe modificar la tarea")
	assert.Equal(t, entity.EstadoAsignada, guardada.Estado)
}

func TestTomar_CarreraGanaUnoSolo(t *testing.T) {
	uc, s := nuevoUseCase(t)
	a := usuarioDePrueba(s, "a")
	b := usuarioDePrueba(s, "b")
	tarea := tareaDePrueba(s, "emplatar", entity.EstadoPendiente, hoy())

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, actor := range []string{a.ID, b.ID} {
		wg.Add(1)
		go func(actorID string) {
			defer wg.Done()
			_, err := uc.Tomar(context.Background(), tarea.ID, actorID)
			errs <- err
		}(actor)
	}
	wg.Wait()
	close(errs)

	var exitos, conflictos int
	for err := range errs {
		switch {
		case err == nil:
			exitos++
		case assert.ErrorIs(t, err, domain.ErrConflict):
			conflictos++
		}
	}
	assert.Equal(t, 1, exitos, "exactamente un actor debe ganar la carrera")
	assert.Equal(t, 1, conflictos)
}

func TestTomar_NoExiste(t *testing.T) {
	uc, _ := nuevoUseCase(t)

	_, err := uc.Tomar(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTomar_IDInvalido(t *testing.T) {
	uc, _ := nuevoUseCase(t)

	_, err := uc.Tomar(context.Background(), "no-es-un-id", uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

// ──────────────────────────────────────────────────────────────────────────────
// CambiarEstado / ForzarEstado
// ──────────────────────────────────────────────────────────────────────────────

func TestCambiarEstado_EnProcesoEstampaHoraInicio(t *testing.T) {
	uc, s := nuevoUseCase(t)
	tarea := tareaDePrueba(s, "guiso", entity.EstadoAsignada, hoy())

	out, err := uc.CambiarEstado(context.Background(), tarea.ID, entity.EstadoEnProceso)
	require.NoError(t, err)
	require.NotNil(t, out.HoraInicio)
	assert.Nil(t, out.HoraFin)
}

func TestCambiarEstado_TerminadoEstampaHoraFin(t *testing.T) {
	uc, s := nuevoUseCase(t)
	tarea := tareaDePrueba(s, "guiso", entity.EstadoEnProceso, hoy())

	out, err := uc.CambiarEstado(context.Background(), tarea.ID, entity.EstadoTerminado)
	require.NoError(t, err)
	require.NotNil(t, out.HoraFin)
}

func TestCambiarEstado_SaltoNoPermitido(t *testing.T) {
	uc, s := nuevoUseCase(t)
	tarea := tareaDePrueba(s, "guiso", entity.EstadoPendiente, hoy())

	_, err := uc.CambiarEstado(context.Background(), tarea.ID, entity.EstadoTerminado)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.EstadoPendiente, s.tareas[tarea.ID].Estado, "no debe modificarse")
}

func TestCambiarEstado_ValorFueraDelEnum(t *testing.T) {
	uc, s := nuevoUseCase(t)
	tarea := tareaDePrueba(s, "guiso", entity.EstadoPendiente, hoy())

	_, err := uc.CambiarEstado(context.Background(), tarea.ID, entity.Estado("EN_PAUSA"))
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestForzarEstado_SaltaLaTabla(t *testing.T) {
	uc, s := nuevoUseCase(t)
	tarea := tareaDePrueba(s, "guiso", entity.EstadoTerminado, hoy())

	out, err := uc.ForzarEstado(context.Background(), tarea.ID, entity.EstadoEnProceso)
	require.NoError(t, err)
	assert.Equal(t, string(entity.EstadoEnProceso), out.Estado,
		"la corrección administrativa revive estados terminales")
}

func TestForzarEstado_SigueValidandoElEnum(t *testing.T) {
	uc, s := nuevoUseCase(t)
	tarea := tareaDePrueba(s, "guiso", entity.EstadoPendiente, hoy())

	_, err := uc.ForzarEstado(context.Background(), tarea.ID, entity.Estado("LIMBO"))
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestCambiarEstado_HoraInicioNoSeSobrescribe(t *testing.T) {
	uc, s := nuevoUseCase(t)
	tarea := tareaDePrueba(s, "guiso", entity.EstadoAsignada, hoy())

	out1, err := uc.CambiarEstado(context.Background(), tarea.ID, entity.EstadoEnProceso)
	require.NoError(t, err)
	primera := *out1.HoraInicio

	// Regresión administrativa y segundo arranque.
	_, err = uc.ForzarEstado(context.Background(), tarea.ID, entity.EstadoAsignada)
	require.NoError(t, err)
	out2, err := uc.CambiarEstado(context.Background(), tarea.ID, entity.EstadoEnProceso)
	require.NoError(t, err)

	require.NotNil(t, out2.HoraInicio)
	assert.True(t, primera.Equal(*out2.HoraInicio),
		"hora_inicio se estampa solo la primera vez")
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignar
// ──────────────────────────────────────────────────────────────────────────────

func TestAsignar_PendientePasaAAsignada(t *testing.T) {
	uc, s := nuevoUseCase(t)
	u := usuarioDePrueba(s, "marco")
	tarea := tareaDePrueba(s, "sopa", entity.EstadoPendiente, hoy())

	out, err := uc.Asignar(context.Background(), tarea.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.EstadoAsignada), out.Estado)
	assert.Equal(t, u.ID, *out.Responsable)
}

func TestAsignar_EnProcesoNoRegresaElEstado(t *testing.T) {
	uc, s := nuevoUseCase(t)
	u := usuarioDePrueba(s, "marco")
	tarea := tareaDePrueba(s, "sopa", entity.EstadoEnProceso, hoy())

	out, err := uc.Asignar(context.Background(), tarea.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.EstadoEnProceso), out.Estado,
		"reasignar no debe regresar una tarea en curso")
	assert.Equal(t, u.ID, *out.Responsable)
}

func TestAsignar_CanceladaOVencida_Conflict(t *testing.T) {
	uc, s := nuevoUseCase(t)
	u := usuarioDePrueba(s, "marco")

	cancelada := tareaDePrueba(s, "a", entity.EstadoCancelada, hoy())
	_, err := uc.Asignar(context.Background(), cancelada.ID, u.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	vencida := tareaDePrueba(s, "b", entity.EstadoVencida, hoy())
	_, err = uc.Asignar(context.Background(), vencida.ID, u.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAsignar_UsuarioInexistente(t *testing.T) {
	uc, s := nuevoUseCase(t)
	tarea := tareaDePrueba(s, "sopa", entity.EstadoPendiente, hoy())

	_, err := uc.Asignar(context.Background(), tarea.ID, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUsuarioNoEncontrado)
}

// ──────────────────────────────────────────────────────────────────────────────
// Actualizar / Eliminar
// ──────────────────────────────────────────────────────────────────────────────

func TestActualizar_ParcheParcial(t *testing.T) {
	uc, s := nuevoUseCase(t)
	tarea := tareaDePrueba(s, "sopa", entity.EstadoPendiente, hoy())

	nuevoNombre := "sopa de calabaza"
	out, err := uc.Actualizar(context.Background(), tarea.ID, dto.UpdateTareaRequest{Nombre: &nuevoNombre})
	require.NoError(t, err)

	assert.Equal(t, nuevoNombre, out.Nombre)
	assert.Equal(t, tarea.Descripcion, out.Descripcion, "campo ausente no sobrescribe")
}

func TestEliminar_QuitaLaReferenciaDelMenu(t *testing.T) {
	uc, s := nuevoUseCase(t)
	tarea := tareaDePrueba(s, "sopa", entity.EstadoPendiente, hoy())
	m := menuDePrueba(s, "almuerzo", tarea.ID)
	menuID := m.ID
	s.tareas[tarea.ID].MenuID = &menuID

	require.NoError(t, uc.Eliminar(context.Background(), tarea.ID))

	assert.NotContains(t, s.menus[m.ID].TareasBase, tarea.ID)
	assert.NotContains(t, s.tareas, tarea.ID)
}

func TestEliminar_NoExiste(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	assert.ErrorIs(t, uc.Eliminar(context.Background(), uuid.New().String()), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clonar / CargarMenu
// ──────────────────────────────────────────────────────────────────────────────

func TestClonar_HeredaDelOrigenYNacePendiente(t *testing.T) {
	uc, s := nuevoUseCase(t)
	responsable := usuarioDePrueba(s, "marco")
	orig := tareaDePrueba(s, "pan casero", entity.EstadoTerminado, ayer())
	orig.Responsable = &responsable.ID
	hi := time.Now().Add(-2 * time.Hour)
	orig.HoraInicio = &hi

	destino := hoy().AddDate(0, 0, 1)
	out, err := uc.Clonar(context.Background(), orig.ID, dto.ClonarRequest{Fechas: []time.Time{destino}})
	require.NoError(t, err)
	require.Len(t, out.IDs, 1)

	clon := s.tareas[out.IDs[0]]
	require.NotNil(t, clon)
	assert.Equal(t, orig.Nombre, clon.Nombre)
	assert.Equal(t, orig.Prioridad, clon.Prioridad)
	assert.Equal(t, entity.EstadoPendiente, clon.Estado, "el clon nunca hereda el estado")
	assert.Nil(t, clon.Responsable, "sin override no se hereda el responsable")
	assert.Nil(t, clon.HoraInicio, "las horas nunca se copian")
	assert.Nil(t, clon.HoraFin)
	assert.NotEqual(t, orig.ID, clon.ID)
}

func TestClonar_VariasFechas(t *testing.T) {
	uc, s := nuevoUseCase(t)
	orig := tareaDePrueba(s, "pan casero", entity.EstadoPendiente, hoy())

	fechas := []time.Time{hoy().AddDate(0, 0, 1), hoy().AddDate(0, 0, 2), hoy().AddDate(0, 0, 3)}
	out, err := uc.Clonar(context.Background(), orig.ID, dto.ClonarRequest{Fechas: fechas})
	require.NoError(t, err)
	require.Len(t, out.IDs, 3)
	assert.Len(t, s.tareas, 4, "origen + 3 clones")
}

func TestClonar_OverrideResponsableNaceAsignada(t *testing.T) {
	uc, s := nuevoUseCase(t)
	u := usuarioDePrueba(s, "marco")
	orig := tareaDePrueba(s, "pan casero", entity.EstadoPendiente, hoy())

	out, err := uc.Clonar(context.Background(), orig.ID, dto.ClonarRequest{
		Fechas:      []time.Time{hoy().AddDate(0, 0, 1)},
		Responsable: &u.ID,
	})
	require.NoError(t, err)

	clon := s.tareas[out.IDs[0]]
	assert.Equal(t, entity.EstadoAsignada, clon.Estado)
	assert.Equal(t, u.ID, *clon.Responsable)
}

func TestClonar_OverridePrioridadDefinidaSiempreAplica(t *testing.T) {
	uc, s := nuevoUseCase(t)
	orig := tareaDePrueba(s, "pan casero", entity.EstadoPendiente, hoy())
	orig.Prioridad = entity.PrioridadAlta

	baja := "BAJA"
	out, err := uc.Clonar(context.Background(), orig.ID, dto.ClonarRequest{
		Fechas:    []time.Time{hoy().AddDate(0, 0, 1)},
		Prioridad: &baja,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PrioridadBaja, s.tareas[out.IDs[0]].Prioridad)
}

func TestClonar_PrioridadInvalidaNoCreaNada(t *testing.T) {
	uc, s := nuevoUseCase(t)
	orig := tareaDePrueba(s, "pan casero", entity.EstadoPendiente, hoy())

	mala := "URGENTE"
	_, err := uc.Clonar(context.Background(), orig.ID, dto.ClonarRequest{
		Fechas:    []time.Time{hoy().AddDate(0, 0, 1)},
		Prioridad: &mala,
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.Len(t, s.tareas, 1, "solo el origen")
}

func TestClonar_SinFechasNoCreaNada(t *testing.T) {
	uc, s := nuevoUseCase(t)
	orig := tareaDePrueba(s, "pan casero", entity.EstadoPendiente, hoy())

	_, err := uc.Clonar(context.Background(), orig.ID, dto.ClonarRequest{})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.Len(t, s.tareas, 1)
}

func TestCargarMenu_InstanciaLasTareasBase(t *testing.T) {
	uc, s := nuevoUseCase(t)
	t1 := tareaDePrueba(s, "entrada", entity.EstadoTerminado, ayer())
	t2 := tareaDePrueba(s, "principal", entity.EstadoPendiente, ayer())
	t3 := tareaDePrueba(s, "postre", entity.EstadoCancelada, ayer())
	t2.Prioridad = entity.PrioridadAlta
	m := menuDePrueba(s, "almuerzo", t1.ID, t2.ID, t3.ID)

	fecha := hoy().AddDate(0, 0, 2)
	out, err := uc.CargarMenu(context.Background(), m.ID, fecha)
	require.NoError(t, err)
	require.Len(t, out.IDs, 3)

	for _, id := range out.IDs {
		clon := s.tareas[id]
		require.NotNil(t, clon)
		assert.Equal(t, entity.EstadoPendiente, clon.Estado)
		assert.Nil(t, clon.Responsable)
		require.NotNil(t, clon.MenuID)
		assert.Equal(t, m.ID, *clon.MenuID)
		assert.True(t, clon.FechaEjecucion.Equal(fecha))
	}
}

func TestCargarMenu_MenuInexistente(t *testing.T) {
	uc, _ := nuevoUseCase(t)
	_, err := uc.CargarMenu(context.Background(), uuid.New().String(), hoy())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Barrer / RefrescarYListarDia
// ──────────────────────────────────────────────────────────────────────────────

func TestBarrer_PurgaYVence(t *testing.T) {
	uc, s := nuevoUseCase(t)
	actor := usuarioDePrueba(s, "regente")

	vieja := tareaDePrueba(s, "muy vieja", entity.EstadoTerminado, hoy())
	vieja.CreatedAt = time.Now().AddDate(0, 0, -(tareas.DiasRetencion + 1))

	atrasada := tareaDePrueba(s, "de ayer", entity.EstadoPendiente, ayer())
	terminadaAyer := tareaDePrueba(s, "terminada ayer", entity.EstadoTerminado, ayer())
	deHoy := tareaDePrueba(s, "de hoy", entity.EstadoPendiente, hoy())

	purgadas, vencidas, err := uc.Barrer(context.Background(), actor.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), purgadas)
	assert.Equal(t, int64(1), vencidas)
	assert.NotContains(t, s.tareas, vieja.ID, "la purga ignora el estado")

	assert.Equal(t, entity.EstadoVencida, s.tareas[atrasada.ID].Estado)
	require.NotNil(t, s.tareas[atrasada.ID].Responsable)
	assert.Equal(t, actor.ID, *s.tareas[atrasada.ID].Responsable,
		"el actor del barrido queda como responsable")

	assert.Equal(t, entity.EstadoTerminado, s.tareas[terminadaAyer.ID].Estado,
		"los estados terminales no vencen")
	assert.Equal(t, entity.EstadoPendiente, s.tareas[deHoy.ID].Estado,
		"las tareas del día no vencen")
}

func TestBarrer_EsIdempotente(t *testing.T) {
	uc, s := nuevoUseCase(t)
	tareaDePrueba(s, "de ayer", entity.EstadoPendiente, ayer())

	_, vencidas, err := uc.Barrer(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), vencidas)

	purgadas, vencidas, err := uc.Barrer(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, purgadas, "segunda pasada sin cambios")
	assert.Zero(t, vencidas)
}

func TestBarrer_ActorVacioConservaResponsable(t *testing.T) {
	uc, s := nuevoUseCase(t)
	u := usuarioDePrueba(s, "marco")
	atrasada := tareaDePrueba(s, "de ayer", entity.EstadoAsignada, ayer())
	atrasada.Responsable = &u.ID

	_, vencidas, err := uc.Barrer(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), vencidas)

	require.NotNil(t, s.tareas[atrasada.ID].Responsable)
	assert.Equal(t, u.ID, *s.tareas[atrasada.ID].Responsable,
		"el barrido por cron conserva el responsable existente")
}

func TestRefrescarYListarDia_BarreYOrdenaPorPrioridad(t *testing.T) {
	uc, s := nuevoUseCase(t)
	actor := usuarioDePrueba(s, "regente")

	atrasada := tareaDePrueba(s, "de ayer", entity.EstadoPendiente, ayer())
	media := tareaDePrueba(s, "media", entity.EstadoPendiente, hoy())
	alta := tareaDePrueba(s, "alta", entity.EstadoPendiente, hoy())
	alta.Prioridad = entity.PrioridadAlta
	baja := tareaDePrueba(s, "baja", entity.EstadoPendiente, hoy())
	baja.Prioridad = entity.PrioridadBaja

	out, sweep, err := uc.RefrescarYListarDia(context.Background(), actor.ID, hoy())
	require.NoError(t, err)
	require.NotNil(t, sweep)

	assert.Equal(t, int64(1), sweep.Vencidas)
	assert.Equal(t, entity.EstadoVencida, s.tareas[atrasada.ID].Estado,
		"la consulta del día refresca vencimientos antes de listar")

	require.Len(t, out, 3, "solo las tareas del día pedido")
	assert.Equal(t, alta.ID, out[0].ID)
	assert.Equal(t, media.ID, out[1].ID)
	assert.Equal(t, baja.ID, out[2].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listar
// ──────────────────────────────────────────────────────────────────────────────

func TestListar_EstadoInvalidoNoTocaElStore(t *testing.T) {
	uc, s := nuevoUseCase(t)
	tareaDePrueba(s, "x", entity.EstadoPendiente, hoy())

	_, err := uc.Listar(context.Background(), dto.ListarTareasRequest{Estado: "EN_PAUSA"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.Zero(t, s.listCalls, "la validación corta antes de consultar")
}

func TestListar_ResponsableInvalidoNoTocaElStore(t *testing.T) {
	uc, s := nuevoUseCase(t)

	_, err := uc.Listar(context.Background(), dto.ListarTareasRequest{Responsable: "no-es-uuid"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.Zero(t, s.listCalls)
}

func TestListar_FiltroPorEstado(t *testing.T) {
	uc, s := nuevoUseCase(t)
	tareaDePrueba(s, "a", entity.EstadoPendiente, hoy())
	tareaDePrueba(s, "b", entity.EstadoTerminado, hoy())

	out, err := uc.Listar(context.Background(), dto.ListarTareasRequest{Estado: "PENDIENTE"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].Nombre)
}

func TestListar_RangoDeFechasInclusivo(t *testing.T) {
	uc, s := nuevoUseCase(t)
	base := time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)
	tareaDePrueba(s, "dentro-inicio", entity.EstadoPendiente, base)
	tareaDePrueba(s, "dentro-fin", entity.EstadoPendiente, base.AddDate(0, 0, 2).Add(5*time.Hour))
	tareaDePrueba(s, "fuera", entity.EstadoPendiente, base.AddDate(0, 0, 5))

	out, err := uc.Listar(context.Background(), dto.ListarTareasRequest{
		FechaInicio: "2026-03-10",
		FechaFin:    "2026-03-12",
	})
	require.NoError(t, err)
	require.Len(t, out, 2, "el día final es inclusivo")
}

func TestListar_FechaMalFormada(t *testing.T) {
	uc, _ := nuevoUseCase(t)

	_, err := uc.Listar(context.Background(), dto.ListarTareasRequest{FechaInicio: "10/03/2026"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

func TestListarPorResponsable(t *testing.T) {
	uc, s := nuevoUseCase(t)
	u := usuarioDePrueba(s, "marco")
	mia := tareaDePrueba(s, "mía", entity.EstadoAsignada, hoy())
	mia.Responsable = &u.ID
	tareaDePrueba(s, "de otro", entity.EstadoPendiente, hoy())

	out, err := uc.ListarPorResponsable(context.Background(), u.ID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, mia.ID, out[0].ID)
	require.NotNil(t, out[0].ResponsableInfo, "el listado adjunta la proyección del responsable")
	assert.Equal(t, "marco", out[0].ResponsableInfo.Username)
}
