package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	pgpkg "github.com/finbooks/backoffice/pkg/postgres"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	Container *postgres.PostgresContainer
	DSN       string
	Pool      *pgxpool.Pool
}

// NewPostgresContainer starts a PostgreSQL container for testing.
// The caller should defer container.Cleanup(t).
func NewPostgresContainer(ctx context.Context, t *testing.T) *PostgresContainer {
	t.Helper()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to create pgxpool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping postgres: %v", err)
	}

	return &PostgresContainer{
		Container: pgContainer,
		DSN:       dsn,
		Pool:      pool,
	}
}

// RunMigrations applies all migrations from the given directory.
func (c *PostgresContainer) RunMigrations(t *testing.T, migrationsDir string) {
	t.Helper()

	if err := pgpkg.RunMigrations(c.DSN, migrationsDir); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
}

// ApplySchema executes the given DDL statements against the container.
func (c *PostgresContainer) ApplySchema(ctx context.Context, t *testing.T, statements ...string) {
	t.Helper()

	for i, stmt := range statements {
		if _, err := c.Pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("failed to apply schema statement %d: %v", i, err)
		}
	}
}

// Cleanup closes the pool and terminates the container.
func (c *PostgresContainer) Cleanup(t *testing.T) {
	t.Helper()

	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.Container != nil {
		if err := c.Container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	}
}

// TruncateTables removes all rows from the given tables between test cases.
func (c *PostgresContainer) TruncateTables(ctx context.Context, t *testing.T, tables ...string) {
	t.Helper()

	for _, table := range tables {
		if _, err := c.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}
