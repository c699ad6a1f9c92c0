package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/gasable-portal/internal/application/billing"
	"github.com/jhoicas/gasable-portal/internal/application/portal"
	"github.com/jhoicas/gasable-portal/internal/application/session"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
	"github.com/jhoicas/gasable-portal/internal/infrastructure/einvoice"
	"github.com/jhoicas/gasable-portal/internal/infrastructure/flagstore"
	"github.com/jhoicas/gasable-portal/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/gasable-portal/internal/infrastructure/pdf"
	"github.com/jhoicas/gasable-portal/internal/infrastructure/postgres"
	"github.com/jhoicas/gasable-portal/internal/infrastructure/supabase"
	httpRouter "github.com/jhoicas/gasable-portal/internal/interfaces/http"
	"github.com/jhoicas/gasable-portal/pkg/config"
	"github.com/jhoicas/gasable-portal/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.Driver).
		Str("session_store", cfg.Session.Store).
		Msg("iniciando aplicación")
	for _, p := range cfg.Validate() {
		log.Error().Str("problema", p).Msg("configuración incompleta")
	}

	ctx := context.Background()
	collector := metrics.NewCollector("gasable")

	// Backend remoto: PostgREST (con el token de cada usuario) o Postgres directo.
	var (
		backend    repository.Backend
		backendFor func(string) repository.Backend
	)
	switch cfg.Backend.Driver {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptions{})
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		backend = collector.Instrument(postgres.NewBackend(pool))
	default:
		client := supabase.NewClient(cfg.Backend, &http.Client{Timeout: cfg.Backend.Timeout})
		backend = collector.Instrument(client)
		backendFor = func(token string) repository.Backend {
			return collector.Instrument(client.WithAccessToken(token))
		}
	}

	store, err := newFlagStore(ctx, cfg.Session, cfg.JWT.DemoTTL())
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de sesión")
	}

	resolver := session.NewResolver(store, backend, session.Options{
		JWTSecret: cfg.JWT.Secret,
		Issuer:    cfg.JWT.Issuer,
		DemoTTL:   cfg.JWT.DemoTTL(),
	}, log.Component("session"))

	documents := billing.NewDocumentsUseCase(einvoice.NewBuilder(), infrapdf.NewMarotoPDFGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Gasable Supplier Portal API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger no disponible")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session: httpRouter.SessionDeps{
			Resolver: resolver,
			Portal: portal.Deps{
				Backend: backend,
				Tenants: portal.NewTenantCache(),
			},
			JWTSecret:  cfg.JWT.Secret,
			CookieName: cfg.Session.CookieName,
			BackendFor: backendFor,
			Log:        log.Component("portal"),
		},
		Documents: documents,
		Metrics:   collector.Handler(),
		Service:   cfg.App.Name,
		Backend:   cfg.Backend.Driver,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// newFlagStore elige el almacenamiento de banderas de sesión.
func newFlagStore(ctx context.Context, cfg config.SessionConfig, ttl time.Duration) (repository.FlagStore, error) {
	switch cfg.Store {
	case config.SessionStoreRedis:
		client, err := flagstore.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return flagstore.NewRedisStore(client, ttl), nil
	case config.SessionStoreMemory:
		return flagstore.NewMemoryStore(), nil
	default:
		return flagstore.NewFileStore(cfg.FilePath)
	}
}
