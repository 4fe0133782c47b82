package config

import (
	"os"
	"strconv"
	"time"
)

// LedgerConfig tunes the payment write path and its caches.
type LedgerConfig struct {
	// MaxWriteRetries bounds the read-compute-write retries when the
	// tenant version check fails under concurrent payments.
	MaxWriteRetries int
	BalanceCacheTTL time.Duration
	ReceiptCacheTTL time.Duration
	ReceiptPrefix   string
	DefaultCurrency string
}

func LoadLedgerConfig() *LedgerConfig {
	return &LedgerConfig{
		MaxWriteRetries: getEnvAsInt("LEDGER_MAX_WRITE_RETRIES", 3),
		BalanceCacheTTL: getEnvAsDuration("LEDGER_BALANCE_CACHE_TTL", 30*time.Second),
		ReceiptCacheTTL: getEnvAsDuration("LEDGER_RECEIPT_CACHE_TTL", 10*time.Minute),
		ReceiptPrefix:   getEnv("LEDGER_RECEIPT_PREFIX", ""),
		DefaultCurrency: getEnv("LEDGER_DEFAULT_CURRENCY", "UGX"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}
