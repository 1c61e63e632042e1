package helper

import (
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/joho/godotenv"
)

// CacheConfiguration holds the connection parameters for the redis pairing cache
type CacheConfiguration struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

// NewCacheConfiguration creates a CacheConfiguration from environment variables.
// A .env file is loaded first if present.
func NewCacheConfiguration() (*CacheConfiguration, error) {
	godotenv.Load()

	config := &CacheConfiguration{
		Address:  os.Getenv("BLENDER_CACHE_ADDRESS"),
		Password: os.Getenv("BLENDER_CACHE_PASSWORD"),
		DB:       0,
		TTL:      24 * time.Hour,
	}
	if config.Address == "" {
		return nil, fmt.Errorf("incomplete cache configuration, check BLENDER_CACHE_* environment variables")
	}

	if dbEnv := os.Getenv("BLENDER_CACHE_DB"); dbEnv != "" {
		db, err := strconv.Atoi(dbEnv)
		if err != nil {
			return nil, fmt.Errorf("invalid BLENDER_CACHE_DB value: %w", err)
		}
		config.DB = db
	}
	if ttlEnv := os.Getenv("BLENDER_CACHE_TTL_HOURS"); ttlEnv != "" {
		hours, err := strconv.Atoi(ttlEnv)
		if err != nil {
			return nil, fmt.Errorf("invalid BLENDER_CACHE_TTL_HOURS value: %w", err)
		}
		config.TTL = time.Duration(hours) * time.Hour
	}

	return config, nil
}

// SetTestCacheConfigEnvs sets the cache environment variables for a test
func SetTestCacheConfigEnvs(t *testing.T, address string) {
	t.Setenv("BLENDER_CACHE_ADDRESS", address)
	t.Setenv("BLENDER_CACHE_PASSWORD", "")
	t.Setenv("BLENDER_CACHE_DB", "0")
	t.Setenv("BLENDER_CACHE_TTL_HOURS", "24")
}
