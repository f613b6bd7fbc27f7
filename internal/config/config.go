package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/vaultpass/passgen-go/internal/crypto"
)

type Config struct {
	Port     string
	Env      string
	LogLevel slog.Level

	DefaultLength int
	MinLength     int
	MaxLength     int
	MaxCount      int

	RateLimitRPS   float64
	RateLimitBurst int

	Hash crypto.HashParams
}

// Load reads configuration from the environment. Call godotenv.Load first if a
// .env file should be honoured.
func Load() (Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	v.SetDefault("port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("default_length", crypto.DefaultLength)
	v.SetDefault("min_length", 4)
	v.SetDefault("max_length", 128)
	v.SetDefault("max_count", 100)
	v.SetDefault("rate_limit_rps", 5.0)
	v.SetDefault("rate_limit_burst", 10)

	hash := crypto.DefaultHashParams()
	v.SetDefault("hash_memory_kib", hash.Memory)
	v.SetDefault("hash_iterations", hash.Iterations)
	v.SetDefault("hash_parallelism", hash.Parallelism)

	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	hash.Memory = v.GetUint32("hash_memory_kib")
	hash.Iterations = v.GetUint32("hash_iterations")
	hash.Parallelism = uint8(v.GetUint("hash_parallelism"))

	cfg := Config{
		Port:           v.GetString("port"),
		Env:            v.GetString("env"),
		LogLevel:       level,
		DefaultLength:  v.GetInt("default_length"),
		MinLength:      v.GetInt("min_length"),
		MaxLength:      v.GetInt("max_length"),
		MaxCount:       v.GetInt("max_count"),
		RateLimitRPS:   v.GetFloat64("rate_limit_rps"),
		RateLimitBurst: v.GetInt("rate_limit_burst"),
		Hash:           hash,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the length and count limits are consistent.
func (c Config) Validate() error {
	var errs []error
	if c.MinLength < 1 {
		errs = append(errs, errors.New("MIN_LENGTH must be at least 1"))
	}
	if c.MaxLength < c.MinLength {
		errs = append(errs, errors.New("MAX_LENGTH must not be below MIN_LENGTH"))
	}
	if c.DefaultLength < c.MinLength || c.DefaultLength > c.MaxLength {
		errs = append(errs, fmt.Errorf("DEFAULT_LENGTH must be between %d and %d", c.MinLength, c.MaxLength))
	}
	if c.MaxCount < 1 {
		errs = append(errs, errors.New("MAX_COUNT must be at least 1"))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	if c.Hash.Memory == 0 || c.Hash.Iterations == 0 || c.Hash.Parallelism == 0 {
		errs = append(errs, errors.New("HASH_MEMORY_KIB, HASH_ITERATIONS and HASH_PARALLELISM must be positive"))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether ENV is production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}
