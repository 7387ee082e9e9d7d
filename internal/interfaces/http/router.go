package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MarcoDimanghene/backcocinagus/internal/application/auth"
	"github.com/MarcoDimanghene/backcocinagus/internal/application/tareas"
	"github.com/MarcoDimanghene/backcocinagus/internal/application/usecase"
	"github.com/MarcoDimanghene/backcocinagus/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	MenuUC    *usecase.MenuUseCase
	TareaUC   *tareas.TareaUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	gestores := RequireRole(entity.RolAdmin, entity.RolRegente)
	soloAdmin := RequireRole(entity.RolAdmin)

	// Auth: solo el login es público; el alta de usuarios la hacen los
	// gestores, que eligen el rol del usuario nuevo.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	authProtegido := authGroup.Group("/", AuthMiddleware(deps.JWTSecret))
	authProtegido.Post("/register", gestores, authHandler.Register)
	authProtegido.Get("/renew", authHandler.Renew)
	authProtegido.Get("/users", gestores, authHandler.ListUsers)
	authProtegido.Patch("/change-password/:id", gestores, authHandler.ChangePassword)
	authProtegido.Patch("/edit-user/:id", gestores, authHandler.EditUser)
	authProtegido.Patch("/change-state/:id", gestores, authHandler.ChangeState)
	authProtegido.Delete("/delete-user/:id", soloAdmin, authHandler.DeleteUser)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Menús: lectura para cualquier autenticado, escritura para gestores
	menus := protected.Group("/menu")
	menuHandler := NewMenuHandler(deps.MenuUC, deps.TareaUC)
	menus.Get("/", menuHandler.List)
	menus.Get("/:id", menuHandler.GetByID)
	menus.Post("/", gestores, menuHandler.Create)
	menus.Patch("/:id", gestores, menuHandler.Update)
	menus.Delete("/:id", gestores, menuHandler.Delete)
	menus.Post("/:id/cargar", gestores, menuHandler.CargarMenu)

	// Tareas
	tareasGroup := protected.Group("/tarea")
	tareaHandler := NewTareaHandler(deps.TareaUC)
	tareasGroup.Get("/", tareaHandler.List)
	tareasGroup.Get("/dia", tareaHandler.TareasDelDia)
	tareasGroup.Get("/responsable/:id", tareaHandler.PorResponsable)
	tareasGroup.Get("/:id", tareaHandler.GetByID)
	tareasGroup.Post("/:id/tomar", tareaHandler.Tomar)
	tareasGroup.Post("/:id/estado", tareaHandler.CambiarEstado)
	tareasGroup.Post("/", gestores, tareaHandler.Create)
	tareasGroup.Patch("/:id", gestores, tareaHandler.Update)
	tareasGroup.Post("/:id/asignar", gestores, tareaHandler.Asignar)
	tareasGroup.Post("/:id/clonar", gestores, tareaHandler.Clonar)
	tareasGroup.Delete("/:id", gestores, tareaHandler.Delete)
	tareasGroup.Post("/:id/forzar-estado", soloAdmin, tareaHandler.ForzarEstado)
}
