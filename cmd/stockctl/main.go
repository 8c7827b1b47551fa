// Command stockctl runs inventory maintenance tasks against the database:
// schema migrations, CSV export, restock forecasts and stock history pruning.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ghuser/stocktracker/migrations/inventory"
	"github.com/ghuser/stocktracker/pkg/config"
	"github.com/ghuser/stocktracker/pkg/database"
	"github.com/ghuser/stocktracker/pkg/logger"
	"github.com/ghuser/stocktracker/pkg/migrator"
	appsvcs "github.com/ghuser/stocktracker/services/inventory/application/services"
	domainsvcs "github.com/ghuser/stocktracker/services/inventory/domain/services"
	"github.com/ghuser/stocktracker/services/inventory/infrastructure/persistence/postgres"
)

// stockService is what the data commands need from the inventory service.
type stockService interface {
	ExportCSV(ctx context.Context) (string, error)
	Analytics(ctx context.Context) (domainsvcs.Report, error)
	PruneHistory(ctx context.Context, cutoff time.Time) (int64, error)
}

// migrations is the schema runner used by the migrate command.
type migrations interface {
	Up() error
	Down() error
	Version() (int64, error)
}

// env resolves dependencies lazily so that flag errors never touch the database.
type env struct {
	openService    func(ctx context.Context) (stockService, func(), error)
	openMigrations func() (migrations, error)
	now            func() time.Time
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logger.NewWithWriter(cfg, os.Stderr)

	if err := rootCmd(productionEnv(cfg, log), os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1) //nolint:gocritic
	}
}

func productionEnv(cfg *config.Config, log logger.Logger) *env {
	return &env{
		openService: func(ctx context.Context) (stockService, func(), error) {
			opts, err := appsvcs.OptionsFromConfig(cfg)
			if err != nil {
				return nil, nil, err
			}
			db, err := database.NewPool(ctx, cfg.DatabaseURL, log)
			if err != nil {
				return nil, nil, err
			}
			// Writes made here publish no events; the CLI only reads and prunes history.
			svc := appsvcs.NewInventoryService(
				postgres.NewItemRepository(db, nil),
				postgres.NewStockHistoryRepository(db),
				nil, opts, log,
			)
			return svc, db.Close, nil
		},
		openMigrations: func() (migrations, error) {
			return gooseMigrations{url: cfg.DatabaseURL}, nil
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

type gooseMigrations struct {
	url string
}

func (g gooseMigrations) Up() error               { return migrator.RunMigrations(g.url, inventory.FS) }
func (g gooseMigrations) Down() error             { return migrator.Rollback(g.url, inventory.FS) }
func (g gooseMigrations) Version() (int64, error) { return migrator.Version(g.url, inventory.FS) }

func rootCmd(e *env, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stockctl",
		Short:         "Stock tracker maintenance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.AddCommand(migrateCmd(e), exportCSVCmd(e), forecastCmd(e), pruneHistoryCmd(e))
	return cmd
}
