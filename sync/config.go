// Package sync implements the HTTP polling engine that reconstructs
// wallet state by synchronising encrypted memos and spent-note markers
// from a remote indexing service.
package sync

import (
	"os"
	"strconv"
	"time"
)

// Config tunes the polling engine: page size per request and the
// interval between poll cycles.
type Config struct {
	PageSize       int
	PollInterval   time.Duration
	RequestTimeout time.Duration
}

// DefaultConfig is a conservative starting point for a single chain.
func DefaultConfig() Config {
	return Config{
		PageSize:       512,
		PollInterval:   15 * time.Second,
		RequestTimeout: 20 * time.Second,
	}
}

// NewConfigFromEnv loads overrides from OCASH_SYNC_PAGE_SIZE,
// OCASH_SYNC_POLL_MS, and OCASH_SYNC_TIMEOUT_MS, falling back to
// DefaultConfig for anything unset or unparsable.
func NewConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := getEnvInt("OCASH_SYNC_PAGE_SIZE", 0); v > 0 {
		cfg.PageSize = v
	}
	if v := getEnvInt("OCASH_SYNC_POLL_MS", 0); v > 0 {
		cfg.PollInterval = time.Duration(v) * time.Millisecond
	}
	if v := getEnvInt("OCASH_SYNC_TIMEOUT_MS", 0); v > 0 {
		cfg.RequestTimeout = time.Duration(v) * time.Millisecond
	}

	return cfg
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// ChainConfig names the indexing service and contract for one chain.
type ChainConfig struct {
	ChainID         string
	EntryURL        string
	ContractAddress string
}
