package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const defaultConnectionString = "host=localhost port=5432 dbname=banking_records_db user=postgres password=postgres"
const defaultListenAddr = ":8080"
const defaultMigrationsDir = "migrations"

const defaultDepositLimit = "10000.0"
const defaultMinimumBalance = "100.0"
const defaultMaxWithdrawalPercent = "90"

// Limits are the business-rule constants, injected into the service rather
// than read as process-wide globals.
type Limits struct {
	DepositLimit         decimal.Decimal
	MinimumBalance       decimal.Decimal
	MaxWithdrawalPercent decimal.Decimal
}

type Config struct {
	DatabaseDSN   string
	ListenAddr    string
	MigrationsDir string
	Limits        Limits
}

func Load() (Config, error) {
	// A missing .env is fine, environment variables win either way.
	_ = godotenv.Load()

	conn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if conn == "" {
		conn = defaultConnectionString
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	migrationsDir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))
	if migrationsDir == "" {
		migrationsDir = defaultMigrationsDir
	}

	depositLimit, err := decimalEnv("DEPOSIT_LIMIT", defaultDepositLimit)
	if err != nil {
		return Config{}, err
	}

	minimumBalance, err := decimalEnv("MINIMUM_BALANCE", defaultMinimumBalance)
	if err != nil {
		return Config{}, err
	}

	maxWithdrawalPercent, err := decimalEnv("MAX_WITHDRAWAL_PERCENT", defaultMaxWithdrawalPercent)
	if err != nil {
		return Config{}, err
	}

	return Config{
		DatabaseDSN:   normalizeConnectionString(conn),
		ListenAddr:    listenAddr,
		MigrationsDir: migrationsDir,
		Limits: Limits{
			DepositLimit:         depositLimit,
			MinimumBalance:       minimumBalance,
			MaxWithdrawalPercent: maxWithdrawalPercent,
		},
	}, nil
}

func decimalEnv(key, fallback string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		raw = fallback
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %s %q: %w", key, raw, err)
	}

	return value, nil
}

func normalizeConnectionString(raw string) string {
	if strings.Contains(raw, "sslmode=") {
		return raw
	}

	return raw + " sslmode=disable"
}
