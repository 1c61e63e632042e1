package helper

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DatabaseConfiguration holds the connection parameters for a postgres database
type DatabaseConfiguration struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
	SSLMode  string
}

// NewDatabaseConfiguration creates a DatabaseConfiguration from environment variables.
// A .env file is loaded first if present.
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	godotenv.Load()

	config := &DatabaseConfiguration{
		Host:     os.Getenv("BLENDER_DB_HOST"),
		Port:     os.Getenv("BLENDER_DB_PORT"),
		Database: os.Getenv("BLENDER_DB_DATABASE"),
		Username: os.Getenv("BLENDER_DB_USERNAME"),
		Password: os.Getenv("BLENDER_DB_PASSWORD"),
		Schema:   os.Getenv("BLENDER_DB_SCHEMA"),
		SSLMode:  os.Getenv("BLENDER_DB_SSLMODE"),
	}
	if config.Host == "" || config.Port == "" || config.Database == "" || config.Username == "" {
		return nil, fmt.Errorf("incomplete database configuration, check BLENDER_DB_* environment variables")
	}
	if config.Schema == "" {
		config.Schema = "public"
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config, nil
}

// Database wraps a sql.DB instance together with its logger
type Database struct {
	Name     string
	Instance *sql.DB
	Logger   *slog.Logger
}

// NewDatabase opens a postgres connection from the given configuration.
// It panics if the database is not reachable.
func NewDatabase(name string, config *DatabaseConfiguration, logger *slog.Logger) *Database {
	psqlInfo := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s search_path=%s sslmode=%s",
		config.Host,
		config.Port,
		config.Username,
		config.Password,
		config.Database,
		config.Schema,
		config.SSLMode,
	)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Panicf("error opening database connection: %v", err)
	}

	err = db.Ping()
	if err != nil {
		log.Panicf("error connecting to database: %v", err)
	}

	logger.Info("Connected to database", slog.String("name", name), slog.String("host", config.Host), slog.String("port", config.Port))

	return &Database{
		Name:     name,
		Instance: db,
		Logger:   logger,
	}
}

// NewTestDatabase creates a Database for tests with a quiet logger
func NewTestDatabase(config *DatabaseConfiguration) *Database {
	logger := slog.New(NewPrettyHandler(os.Stdout, PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: slog.LevelError},
	}))
	return NewDatabase("test", config, logger)
}

// Close closes the underlying database connection
func (d *Database) Close() error {
	if d.Instance != nil {
		return d.Instance.Close()
	}
	return nil
}

// MustStartPostgresContainer starts a postgres container with the pgvector image.
// It returns a teardown function and the mapped database port.
func MustStartPostgresContainer() (func(ctx context.Context, opts ...testcontainers.TerminateOption) error, string, error) {
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"pgvector/pgvector:pg16",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, "", err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), "5432/tcp")
	if err != nil {
		return dbContainer.Terminate, "", err
	}

	return dbContainer.Terminate, dbPort.Port(), nil
}

// SetTestDatabaseConfigEnvs sets the database environment variables matching
// the container started by MustStartPostgresContainer
func SetTestDatabaseConfigEnvs(t *testing.T, dbPort string) {
	t.Setenv("BLENDER_DB_HOST", "localhost")
	t.Setenv("BLENDER_DB_PORT", dbPort)
	t.Setenv("BLENDER_DB_DATABASE", "database")
	t.Setenv("BLENDER_DB_USERNAME", "user")
	t.Setenv("BLENDER_DB_PASSWORD", "password")
	t.Setenv("BLENDER_DB_SCHEMA", "public")
	t.Setenv("BLENDER_DB_SSLMODE", "disable")
}
