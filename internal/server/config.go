package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/matzehuels/workcell/pkg/cache"
	"github.com/matzehuels/workcell/pkg/errors"
	"github.com/matzehuels/workcell/pkg/solver"
)

// Cache backends selectable through WORKCELL_CACHE.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheFile   = "file"
	CacheNone   = "none"
)

// Config holds the server settings. Every key can be set through the
// environment with the WORKCELL_ prefix, e.g. WORKCELL_ADDR=:9090.
type Config struct {
	Addr         string `mapstructure:"addr"`
	Cache        string `mapstructure:"cache"`
	CacheDir     string `mapstructure:"cache_dir"`
	CacheSize    int    `mapstructure:"cache_size"`
	RedisURL     string `mapstructure:"redis_url"`
	KeyPrefix    string `mapstructure:"key_prefix"`
	SolverConfig string `mapstructure:"solver_config"`
}

// LoadConfig reads server settings from the environment. Variables in
// envFile (usually ".env") are loaded first and never override variables
// already set in the process environment. A missing envFile is not an error.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", envFile)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("WORKCELL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("cache", CacheMemory)
	v.SetDefault("cache_dir", "")
	v.SetDefault("cache_size", cache.DefaultMemoryEntries)
	v.SetDefault("redis_url", "")
	v.SetDefault("key_prefix", "")
	v.SetDefault("solver_config", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode server config")
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	switch c.Cache {
	case CacheMemory, CacheFile, CacheNone:
	case CacheRedis:
		if c.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache %q requires WORKCELL_REDIS_URL", c.Cache)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be memory, redis, file or none)", c.Cache)
	}
	if c.CacheSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache_size must be positive, got %d", c.CacheSize)
	}
	return nil
}

// OpenCache creates the configured cache backend.
func (c Config) OpenCache(ctx context.Context, logger *log.Logger) (cache.Cache, error) {
	switch c.Cache {
	case CacheRedis:
		rc, err := cache.NewRedisCache(ctx, c.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("using redis cache")
		return rc, nil
	case CacheFile:
		dir := c.CacheDir
		if dir == "" {
			dir = filepath.Join(os.TempDir(), "workcell")
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		logger.Info("using file cache", "dir", fc.Dir())
		return fc, nil
	case CacheNone:
		return cache.NewNullCache(), nil
	default:
		mc, err := cache.NewMemoryCache(c.CacheSize)
		if err != nil {
			return nil, err
		}
		logger.Info("using memory cache", "entries", c.CacheSize)
		return mc, nil
	}
}

// Keyer returns the cache keyer, scoped by KeyPrefix when one is set.
func (c Config) Keyer() cache.Keyer {
	if c.KeyPrefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.KeyPrefix)
}

// LoadSolverConfig returns the solver tunables, from SolverConfig when set.
func (c Config) LoadSolverConfig() (solver.Config, error) {
	if c.SolverConfig == "" {
		return solver.DefaultConfig(), nil
	}
	return solver.LoadConfig(c.SolverConfig)
}
