package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const devJWTSecret = "change-me"

// Load builds the configuration from defaults, config/config.yaml (or CONFIG_PATH),
// an optional config.<env>.yaml overlay, .env and environment variables, in that order.
// Env keys use underscores: database.url -> DATABASE_URL.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicitPath := os.Getenv("CONFIG_PATH")
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	if explicitPath == "" {
		v.SetConfigName("config." + v.GetString("server.env"))
		_ = v.MergeInConfig()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.env", "development")
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open", 25)
	v.SetDefault("database.max_idle", 25)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", devJWTSecret)
	v.SetDefault("jwt.ttl_minutes", 60)

	v.SetDefault("auth.first_admin_email", "")
	v.SetDefault("auth.first_admin_password", "")
	v.SetDefault("auth.strict_status_transitions", true)

	v.SetDefault("apis.genai.base_url", "http://localhost:8090")
	v.SetDefault("apis.genai.api_key", "")
	v.SetDefault("apis.genai.timeout_ms", 20000)
	v.SetDefault("apis.genai.max_tokens", 512)
	v.SetDefault("apis.genai.temperature", 0.4)

	v.SetDefault("email.smtp_host", "")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.smtp_user", "")
	v.SetDefault("email.smtp_password", "")
	v.SetDefault("email.from_email", "no-reply@financeflow.local")
	v.SetDefault("email.from_name", "FinanceFlow")
	v.SetDefault("email.admin_email", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func validateConfig(cfg *Config) error {
	if cfg.Database.DSN == "" {
		return errors.New("database.url is required")
	}
	switch cfg.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database.driver %q", cfg.Database.Driver)
	}
	if cfg.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	if cfg.Server.Env == "production" && cfg.JWT.Secret == devJWTSecret {
		return errors.New("jwt.secret must be changed in production")
	}
	if cfg.JWT.TTLMinutes <= 0 {
		return errors.New("jwt.ttl_minutes must be positive")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", cfg.Server.Port)
	}
	if cfg.APIs.GenAI.BaseURL == "" {
		return errors.New("apis.genai.base_url is required")
	}
	return nil
}
