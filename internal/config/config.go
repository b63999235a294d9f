package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr string

	// Infrastructure
	DBAddr  string
	DBDebug bool

	// Redis is optional; registration throttling is disabled without it.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// RabbitURL is optional; events are logged instead of published
	// without it.
	RabbitURL string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Registration throttling
	RegisterRateLimit  int
	RegisterRateWindow time.Duration

	BcryptCost    int
	SeedDemoUsers bool
}

func Load() (*Config, error) {
	// .env is a dev convenience; absent in prod
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}

	// The service cannot operate without its database. Fail fast to avoid
	// starting in a partially-initialized state.
	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}

	dbg, err := getBool("DB_DEBUG", false)
	if err != nil {
		return nil, err
	}
	cfg.DBDebug = dbg

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	rdb, err := getInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cfg.RedisDB = rdb

	cfg.RabbitURL = os.Getenv("RABBIT_URL")

	// Timeout values are optional and have defaults.
	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	rl, err := getInt("REGISTER_RATE_LIMIT", 10)
	if err != nil {
		return nil, err
	}
	cfg.RegisterRateLimit = rl

	rw, err := getDuration("REGISTER_RATE_WINDOW", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.RegisterRateWindow = rw

	bc, err := getInt("BCRYPT_COST", 0) // 0 = bcrypt default
	if err != nil {
		return nil, err
	}
	cfg.BcryptCost = bc

	seed, err := getBool("SEED_DEMO_USERS", false)
	if err != nil {
		return nil, err
	}
	cfg.SeedDemoUsers = seed

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %q: %w", key, v, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid bool for %s: %q: %w", key, v, err)
	}
	return b, nil
}
