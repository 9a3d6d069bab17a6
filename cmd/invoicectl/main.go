package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/jhoicas/Facturas-api/internal/bootstrap"
	"github.com/jhoicas/Facturas-api/internal/cli"
	"github.com/jhoicas/Facturas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Facturas-api/pkg/config"
	"github.com/jhoicas/Facturas-api/pkg/logger"
)

func main() {
	// .env es opcional: en producción las variables vienen del entorno.
	_ = godotenv.Load()

	log := logger.New(logger.Config{
		Env:   os.Getenv("APP_ENV"),
		Level: os.Getenv("LOG_LEVEL"),
	}).WithComponent("invoicectl")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cli.Runtime{
		Config:   config.Load,
		Services: bootstrap.Build,
		Migrate:  postgres.Migrate,
		Logger:   log,
	})
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("comando fallido")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
