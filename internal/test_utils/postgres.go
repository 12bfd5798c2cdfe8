package test_utils

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/eddieyong/financetracker/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// PostgresDSNEnv names the variable holding the URL of an existing Postgres server. When it is set
// no container is started.
const PostgresDSNEnv = "MONEYTRACKER_TEST_POSTGRES_DSN"

var (
	postgresOnce sync.Once
	postgresDSN  string
	postgresErr  error
)

func preparePostgresContainer(ctx context.Context) (*postgres.PostgresContainer, error) {
	pgContainer, err := postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithDatabase("moneytracker"),
		postgres.WithUsername("test_moneytracker"),
		postgres.WithPassword("test_moneytracker"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return nil, err
	}
	return pgContainer, nil
}

// sharedPostgres starts one container per test binary and applies all migrations to it.
// The container is removed by the testcontainers reaper once the binary exits.
func sharedPostgres() (string, error) {
	postgresOnce.Do(func() {
		ctx := context.Background()
		postgresDSN = os.Getenv(PostgresDSNEnv)
		if postgresDSN == "" {
			container, err := preparePostgresContainer(ctx)
			if err != nil {
				postgresErr = err
				return
			}
			postgresDSN, err = container.ConnectionString(ctx, "sslmode=disable")
			if err != nil {
				postgresErr = err
				return
			}
			host, _ := container.Host(ctx)
			port, _ := container.MappedPort(ctx, "5432/tcp")
			log.Infof("Postgres container started at %s:%d", host, port.Int())
		}
		postgresErr = database.MigratePostgres(postgresDSN)
	})
	return postgresDSN, postgresErr
}

// SetupPostgres returns a pool on the migrated test database with an empty kv table.
func SetupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn, err := sharedPostgres()
	if err != nil {
		t.Fatalf("Failed to prepare postgres: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, "TRUNCATE kv"); err != nil {
		t.Fatalf("Failed to truncate kv: %v", err)
	}
	return pool
}
