// Package pgtest starts disposable PostgreSQL containers for integration
// tests and prepares the intake schema in them.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"callcenter/internal/adapters/out/postgres"

	"github.com/docker/go-connections/nat"
	_ "github.com/lib/pq" // database/sql driver used by the readiness probe
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

const (
	image    = "postgres:15-alpine"
	database = "testdb"
	username = "testuser"
	password = "testpass"
)

// Start runs a PostgreSQL container, waits until it accepts SQL, migrates
// the schema and returns a GORM connection configured like production.
func Start(ctx context.Context) (*tcpostgres.PostgresContainer, *gorm.DB, error) {
	container, err := tcpostgres.Run(ctx,
		image,
		tcpostgres.WithDatabase(database),
		tcpostgres.WithUsername(username),
		tcpostgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2),
				wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
					return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
						username, password, host, port.Port(), database)
				}),
			).WithDeadline(60*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	db, err := postgres.Open(dsn)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	if err = postgres.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	return container, db, nil
}

// Truncate empties every intake table.
func Truncate(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE orders, call_sessions, members CASCADE").Error
}
