package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/MarcoDimanghene/backcocinagus/internal/application/auth"
	"github.com/MarcoDimanghene/backcocinagus/internal/application/tareas"
	"github.com/MarcoDimanghene/backcocinagus/internal/application/usecase"
	"github.com/MarcoDimanghene/backcocinagus/internal/infrastructure/postgres"
	"github.com/MarcoDimanghene/backcocinagus/internal/infrastructure/scheduler"
	httpRouter "github.com/MarcoDimanghene/backcocinagus/internal/interfaces/http"
	"github.com/MarcoDimanghene/backcocinagus/pkg/config"
	"github.com/MarcoDimanghene/backcocinagus/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if err := postgres.RunMigrations(ctx, cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	usuarioRepo := postgres.NewUsuarioRepository(pool)
	menuRepo := postgres.NewMenuRepository(pool)
	tareaRepo := postgres.NewTareaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	menuUC := usecase.NewMenuUseCase(menuRepo)
	tareaUC := tareas.NewTareaUseCase(tareaRepo, menuRepo, usuarioRepo, txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cocina Gus API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		MenuUC:    menuUC,
		TareaUC:   tareaUC,
		JWTSecret: cfg.JWT.Secret,
	})

	// Barrido nocturno opcional: purga tareas viejas y vence las atrasadas.
	// El listado por día ya ejecuta el mismo barrido de forma síncrona.
	var sched *scheduler.Scheduler
	if cfg.Sweep.Enabled {
		sched = scheduler.New(time.Local)
		_, err := sched.ScheduleDaily(cfg.Sweep.Time, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			purgadas, vencidas, err := tareaUC.Barrer(jobCtx, "")
			if err != nil {
				log.Error().Err(err).Msg("barrido nocturno")
				return
			}
			log.Info().
				Int64("purgadas", purgadas).
				Int64("vencidas", vencidas).
				Msg("barrido nocturno completado")
		})
		if err != nil {
			log.Fatal().Err(err).Str("hora", cfg.Sweep.Time).Msg("programar barrido")
		}
		sched.Start()
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
