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
	"github.com/jhoicas/Facturas-api/internal/bootstrap"
	httpRouter "github.com/jhoicas/Facturas-api/internal/interfaces/http"
	"github.com/jhoicas/Facturas-api/pkg/config"
	"github.com/jhoicas/Facturas-api/pkg/logger"
)

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
		Str("storage", cfg.Storage.Driver).
		Str("events", cfg.Events.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	svc, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicialización de servicios")
	}
	defer func() {
		if err := svc.Close(); err != nil {
			log.Error().Err(err).Msg("cierre de recursos")
		}
	}()

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
		Title:    "Facturas API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:     cfg.App.Name,
		AuthUC:      svc.Auth,
		ClientUC:    svc.Clients,
		InvoiceUC:   svc.Invoices,
		DocumentUC:  svc.Documents,
		CatalogUC:   svc.Catalog,
		DashboardUC: svc.Dashboard,
		Audit:       svc.Audit,
		JWTSecret:   cfg.JWT.Secret,
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
