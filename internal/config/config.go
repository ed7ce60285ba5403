// Package config loads runtime configuration for the generator and API
// binaries from environment variables, optionally seeded from a dotenv
// file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/freightforge/supplychain-simdata-go/simdata"
)

// Storage backends.
const (
	BackendFiles    = "files"
	BackendPostgres = "postgres"
)

// PostgreSQL client drivers.
const (
	DriverPGX  = "pgx"
	DriverSQL  = "sql"
	DriverSQLX = "sqlx"
)

const (
	defaultDataDir    = "output/transactional_data"
	defaultListenAddr = ":8000"
	defaultRangeDays  = 365
)

// GenerationConfig configures a simulation run.
type GenerationConfig struct {
	StartDate     time.Time
	EndDate       time.Time
	NumProducts   int
	NumWarehouses int
	NumSuppliers  int
	Seed          int64
	DailyCron     string
}

// StorageConfig selects and configures the document storage backend,
// shared by the generator and the API server.
type StorageConfig struct {
	Backend            string
	DataDir            string
	PostgresDSN        string
	PostgresReplicaDSN string
	PostgresDriver     string
	TableName          string
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	ListenAddr string
}

// Config is the complete runtime configuration.
type Config struct {
	Generation GenerationConfig
	Storage    StorageConfig
	Server     ServerConfig
	LogLevel   string
}

// Load reads configuration from the environment. When envFile is not
// empty it is loaded first, a missing file is not an error so deployments
// without dotenv files work unchanged.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	endDate, err := getenvDateWithDefault("SIM_END_DATE", simdata.ToDateOnly(time.Now()))
	if err != nil {
		return nil, err
	}

	startDate, err := getenvDateWithDefault("SIM_START_DATE", endDate.AddDate(0, 0, -defaultRangeDays))
	if err != nil {
		return nil, err
	}

	numProducts, err := getenvIntWithDefault("SIM_NUM_PRODUCTS", simdata.DefaultNumProducts)
	if err != nil {
		return nil, err
	}

	numWarehouses, err := getenvIntWithDefault("SIM_NUM_WAREHOUSES", simdata.DefaultNumWarehouses)
	if err != nil {
		return nil, err
	}

	numSuppliers, err := getenvIntWithDefault("SIM_NUM_SUPPLIERS", simdata.DefaultNumSuppliers)
	if err != nil {
		return nil, err
	}

	seed, err := getenvInt64WithDefault("SIM_SEED", simdata.DefaultSeed)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Generation: GenerationConfig{
			StartDate:     startDate,
			EndDate:       endDate,
			NumProducts:   numProducts,
			NumWarehouses: numWarehouses,
			NumSuppliers:  numSuppliers,
			Seed:          seed,
			DailyCron:     os.Getenv("SIM_DAILY_CRON"),
		},
		Storage: StorageConfig{
			Backend:            getenvWithDefault("STORAGE_BACKEND", BackendFiles),
			DataDir:            getenvWithDefault("STORAGE_DATA_DIR", defaultDataDir),
			PostgresDSN:        os.Getenv("STORAGE_POSTGRES_DSN"),
			PostgresReplicaDSN: os.Getenv("STORAGE_POSTGRES_REPLICA_DSN"),
			PostgresDriver:     getenvWithDefault("STORAGE_POSTGRES_DRIVER", DriverPGX),
			TableName:          os.Getenv("STORAGE_TABLE_NAME"),
		},
		Server: ServerConfig{
			ListenAddr: getenvWithDefault("API_LISTEN_ADDR", defaultListenAddr),
		},
		LogLevel: os.Getenv("LOG_LEVEL"),
	}

	return cfg, nil
}

// Validate checks the semantic rules the loaders cannot.
func (c *Config) Validate() error {
	if err := c.Generation.RunConfig().Validate(); err != nil {
		return err
	}

	return c.Storage.Validate()
}

// Validate checks backend selection and its required settings.
func (s StorageConfig) Validate() error {
	switch s.Backend {
	case BackendFiles:
		if s.DataDir == "" {
			return fmt.Errorf("%w: STORAGE_DATA_DIR must be set for the %s backend",
				simdata.ErrInvalidConfiguration, BackendFiles)
		}
	case BackendPostgres:
		if s.PostgresDSN == "" {
			return fmt.Errorf("%w: STORAGE_POSTGRES_DSN must be set for the %s backend",
				simdata.ErrInvalidConfiguration, BackendPostgres)
		}

		switch s.PostgresDriver {
		case DriverPGX, DriverSQL, DriverSQLX:
		default:
			return fmt.Errorf("%w: unknown STORAGE_POSTGRES_DRIVER %q, expected one of: %s, %s, %s",
				simdata.ErrInvalidConfiguration, s.PostgresDriver, DriverPGX, DriverSQL, DriverSQLX)
		}

		if s.PostgresReplicaDSN != "" && s.PostgresDriver != DriverPGX {
			return fmt.Errorf("%w: STORAGE_POSTGRES_REPLICA_DSN requires the %s driver",
				simdata.ErrInvalidConfiguration, DriverPGX)
		}
	default:
		return fmt.Errorf("%w: unknown STORAGE_BACKEND %q, expected %s or %s",
			simdata.ErrInvalidConfiguration, s.Backend, BackendFiles, BackendPostgres)
	}

	return nil
}

// RunConfig converts the generation settings into the simulation's run
// configuration.
func (g GenerationConfig) RunConfig() simdata.RunConfig {
	return simdata.RunConfig{
		StartDate:     g.StartDate,
		EndDate:       g.EndDate,
		NumProducts:   g.NumProducts,
		NumWarehouses: g.NumWarehouses,
		NumSuppliers:  g.NumSuppliers,
		Seed:          g.Seed,
	}
}

func getenvWithDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func getenvIntWithDefault(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q",
			simdata.ErrInvalidConfiguration, key, value)
	}

	return parsed, nil
}

func getenvInt64WithDefault(key string, fallback int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q",
			simdata.ErrInvalidConfiguration, key, value)
	}

	return parsed, nil
}

func getenvDateWithDefault(key string, fallback time.Time) (time.Time, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := time.Parse(simdata.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must use YYYY-MM-DD format, got %q",
			simdata.ErrInvalidConfiguration, key, value)
	}

	return parsed, nil
}
