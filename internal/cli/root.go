// Package cli define los comandos de invoicectl (tareas de operación fuera del servidor HTTP).
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Facturas-api/internal/bootstrap"
	"github.com/jhoicas/Facturas-api/pkg/config"
	"github.com/jhoicas/Facturas-api/pkg/logger"
)

const dateLayout = "2006-01-02"

// Runtime dependencias de los comandos. Se reemplazan en tests.
type Runtime struct {
	Config   func() (*config.Config, error)
	Services func(ctx context.Context, cfg *config.Config, log *logger.Logger) (*bootstrap.Services, error)
	Migrate  func(databaseURL string) (uint, error)
	Logger   *logger.Logger
	Now      func() time.Time
}

// NewRootCommand construye el árbol de comandos.
func NewRootCommand(rt Runtime) *cobra.Command {
	if rt.Logger == nil {
		rt.Logger = logger.Nop()
	}
	if rt.Now == nil {
		rt.Now = time.Now
	}
	root := &cobra.Command{
		Use:           "invoicectl",
		Short:         "Herramientas de operación del motor de facturación",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newMigrateCommand(rt),
		newSweepCommand(rt),
		newNextNumberCommand(rt),
		newStatsCommand(rt),
	)
	return root
}

func newMigrateCommand(rt Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL de PostgreSQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := rt.Config()
			if err != nil {
				return err
			}
			version, err := rt.Migrate(cfg.DB.ConnectionString())
			if err != nil {
				return err
			}
			rt.Logger.Info().Uint("version", version).Msg("migraciones aplicadas")
			fmt.Fprintf(cmd.OutOrStdout(), "versión del esquema: %d\n", version)
			return nil
		},
	}
}

func newSweepCommand(rt Runtime) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "sweep-overdue",
		Short: "Marca como vencidas las facturas abiertas con fecha de vencimiento pasada",
		Example: `  invoicectl sweep-overdue
  invoicectl sweep-overdue --at 2025-06-30`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := rt.Now()
			if at != "" {
				t, err := time.Parse(dateLayout, at)
				if err != nil {
					return fmt.Errorf("--at: usar YYYY-MM-DD: %w", err)
				}
				now = t
			}
			return withServices(cmd.Context(), rt, func(svc *bootstrap.Services) error {
				n, err := svc.Invoices.SweepOverdue(cmd.Context(), now)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "facturas marcadas como vencidas: %d\n", n)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "fecha de corte (YYYY-MM-DD); por defecto ahora")
	return cmd
}

func newNextNumberCommand(rt Runtime) *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "next-number",
		Short: "Muestra el siguiente número de factura de un usuario",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd.Context(), rt, func(svc *bootstrap.Services) error {
				n, err := svc.Invoices.NextNumber(cmd.Context(), userID)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "ID del usuario")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newStatsCommand(rt Runtime) *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Imprime las estadísticas del tablero de un usuario en JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd.Context(), rt, func(svc *bootstrap.Services) error {
				stats, err := svc.Dashboard.GetStats(cmd.Context(), userID)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), stats)
			})
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "ID del usuario")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

// withServices abre los servicios, ejecuta fn y los cierra.
func withServices(ctx context.Context, rt Runtime, fn func(*bootstrap.Services) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := rt.Config()
	if err != nil {
		return err
	}
	svc, err := rt.Services(ctx, cfg, rt.Logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			rt.Logger.Warn().Err(err).Msg("cierre de recursos")
		}
	}()
	return fn(svc)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
