package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"callcenter/internal/adapters/out/postgres"
	"callcenter/internal/pkg/telemetry"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
}

// NewRootCommand creates the root command of the call center service.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "callcenter",
		Short:        "Call center order intake",
		Long:         "Guides an agent through member identification and records exactly one order per call session.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedMembersCommand(opts))

	return cmd
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the session audit job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, rootOpts, migrate)
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "migrate the schema before serving")

	return cmd
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, logger, err := setup(rootOpts)
			if err != nil {
				return err
			}

			db, err := postgres.Open(config.ConnectionSettings().DSN())
			if err != nil {
				return err
			}
			defer closeDB(db)

			if err = postgres.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			logger.InfoContext(cmd.Context(), "Schema migrated")
			return nil
		},
	}
}

// NewSeedMembersCommand creates the seed-members command.
func NewSeedMembersCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-members",
		Short: "Upsert the default members as active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, logger, err := setup(rootOpts)
			if err != nil {
				return err
			}

			members, err := DefaultMembers()
			if err != nil {
				return err
			}

			db, err := postgres.Open(config.ConnectionSettings().DSN())
			if err != nil {
				return err
			}

			app := NewCompositionRoot(config, db, logger)
			defer func() { _ = app.Close() }()

			if err = app.SeedMembers(cmd.Context(), members...); err != nil {
				return fmt.Errorf("seed members: %w", err)
			}

			logger.InfoContext(cmd.Context(), "Seeded members", "count", len(members))
			return nil
		},
	}
}

func setup(opts *RootOptions) (Config, *slog.Logger, error) {
	config, err := LoadConfig(opts.EnvFile)
	if err != nil {
		return Config{}, nil, err
	}
	return config, telemetry.NewLogger(os.Stderr, config.LogLevel), nil
}

func runServe(ctx context.Context, opts *RootOptions, migrate bool) error {
	config, logger, err := setup(opts)
	if err != nil {
		return err
	}

	shutdownTracing, err := telemetry.Setup(ctx, config.OTLPEndpoint, config.ServiceName)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	db, err := postgres.Open(config.ConnectionSettings().DSN())
	if err != nil {
		return err
	}

	if migrate {
		if err = postgres.Migrate(db); err != nil {
			closeDB(db)
			return fmt.Errorf("migrate: %w", err)
		}
	}

	app := NewCompositionRoot(config, db, logger)
	defer func() { _ = app.Close() }()

	if err = app.CheckCache(ctx); err != nil {
		logger.WarnContext(ctx, "Member cache unreachable, lookups fall through to the database", "error", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := app.CreateRouter()
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()
	logger.InfoContext(ctx, "HTTP server started", "port", config.HTTPPort)

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.InfoContext(shutdownCtx, "Shutting down HTTP server")
	return e.Shutdown(shutdownCtx)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
