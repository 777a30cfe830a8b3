package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/simsportal/sims-portal-backend/internal/clients/redis"
	"github.com/simsportal/sims-portal-backend/internal/clients/trello"
	"github.com/simsportal/sims-portal-backend/internal/data/db"
	"github.com/simsportal/sims-portal-backend/internal/jobs/scheduler"
	"github.com/simsportal/sims-portal-backend/internal/jobs/tasks"
	"github.com/simsportal/sims-portal-backend/internal/observability"
	"github.com/simsportal/sims-portal-backend/internal/platform/envutil"
)

type Config struct {
	HTTP      HTTPConfig               `yaml:"http"`
	Database  db.Config                `yaml:"database"`
	Auth      AuthConfig               `yaml:"auth"`
	Trello    trello.Config            `yaml:"trello"`
	Redis     redis.Config             `yaml:"redis"`
	Scheduler SchedulerConfig          `yaml:"scheduler"`
	Log       LogConfig                `yaml:"log"`
	Otel      observability.OtelConfig `yaml:"otel"`
	Metrics   MetricsConfig            `yaml:"metrics"`
}

type HTTPConfig struct {
	Addr        string   `yaml:"addr" validate:"required"`
	CORSOrigins []string `yaml:"cors_origins" validate:"dive,url"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" validate:"required,min=16"`
	Issuer    string        `yaml:"issuer"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

type SchedulerConfig struct {
	Enabled  bool              `yaml:"enabled"`
	Timezone string            `yaml:"timezone"`
	Jobs     map[string]string `yaml:"jobs"`
}

type LogConfig struct {
	Mode string `yaml:"mode" validate:"omitempty,oneof=development dev production prod test nop"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr" validate:"required_if=Enabled true"`
}

func defaultConfig() Config {
	jobs := make(map[string]string, len(tasks.DefaultSchedule))
	for name, rule := range tasks.DefaultSchedule {
		jobs[name] = rule
	}
	return Config{
		HTTP: HTTPConfig{Addr: ":8080"},
		Database: db.Config{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			Name:    "sims_portal",
			SSLMode: "disable",
		},
		Auth:      AuthConfig{Issuer: "sims-portal", TokenTTL: 12 * time.Hour},
		Trello:    trello.Config{Timeout: 5 * time.Second, MaxRetries: 2, RetryBackoff: 250 * time.Millisecond},
		Redis:     redis.Config{Prefix: "sims", TTL: 2 * time.Hour},
		Scheduler: SchedulerConfig{Enabled: true, Timezone: scheduler.DefaultTimezone, Jobs: jobs},
		Log:       LogConfig{Mode: "development"},
		Otel:      observability.OtelConfig{ServiceName: "sims-portal", SampleRatio: 0.1},
		Metrics:   MetricsConfig{Addr: ":9090"},
	}
}

// LoadConfig reads the optional YAML file at path, overlays the
// environment, and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path = strings.TrimSpace(path); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.HTTP.Addr = envutil.String("HTTP_ADDR", cfg.HTTP.Addr)
	if port := envutil.String("PORT", ""); port != "" {
		cfg.HTTP.Addr = ":" + port
	}
	cfg.HTTP.CORSOrigins = envutil.List("CORS_ORIGINS", cfg.HTTP.CORSOrigins)

	cfg.Database.Host = envutil.String("POSTGRES_HOST", cfg.Database.Host)
	cfg.Database.Port = envutil.Int("POSTGRES_PORT", cfg.Database.Port)
	cfg.Database.User = envutil.String("POSTGRES_USER", cfg.Database.User)
	cfg.Database.Password = envutil.String("POSTGRES_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = envutil.String("POSTGRES_NAME", cfg.Database.Name)
	cfg.Database.SSLMode = envutil.String("POSTGRES_SSLMODE", cfg.Database.SSLMode)

	cfg.Auth.JWTSecret = envutil.String("JWT_SECRET_KEY", cfg.Auth.JWTSecret)
	cfg.Auth.Issuer = envutil.String("JWT_ISSUER", cfg.Auth.Issuer)
	cfg.Auth.TokenTTL = envutil.Duration("JWT_TOKEN_TTL", cfg.Auth.TokenTTL)

	cfg.Trello.Key = envutil.String("TRELLO_KEY", cfg.Trello.Key)
	cfg.Trello.Token = envutil.String("TRELLO_TOKEN", cfg.Trello.Token)
	cfg.Trello.BaseURL = envutil.String("TRELLO_BASE_URL", cfg.Trello.BaseURL)
	cfg.Trello.Timeout = envutil.Duration("TRELLO_TIMEOUT", cfg.Trello.Timeout)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = envutil.String("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = envutil.Int("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.TTL = envutil.Duration("REDIS_TTL", cfg.Redis.TTL)

	cfg.Scheduler.Enabled = envutil.Bool("SCHEDULER_ENABLED", cfg.Scheduler.Enabled)
	cfg.Scheduler.Timezone = envutil.String("SCHEDULER_TIMEZONE", cfg.Scheduler.Timezone)

	cfg.Log.Mode = envutil.String("LOG_MODE", cfg.Log.Mode)

	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled)
	cfg.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Otel.ServiceName)
	cfg.Otel.Environment = envutil.String("OTEL_ENVIRONMENT", cfg.Otel.Environment)
	cfg.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Otel.Endpoint)
	cfg.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure)
	cfg.Otel.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", cfg.Otel.SampleRatio)
	if raw := envutil.String("OTEL_EXPORTER_OTLP_HEADERS", ""); raw != "" {
		cfg.Otel.Headers = observability.ParseHeaders(raw)
	}

	cfg.Metrics.Enabled = envutil.Bool("METRICS_ENABLED", cfg.Metrics.Enabled)
	cfg.Metrics.Addr = envutil.String("METRICS_ADDR", cfg.Metrics.Addr)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags, then the scheduler timezone and rules.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s(%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config validation failed: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	loc, err := scheduler.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return err
	}
	for name, rule := range c.Scheduler.Jobs {
		if _, ok := tasks.DefaultSchedule[name]; !ok {
			return fmt.Errorf("scheduler.jobs: unknown job %q", name)
		}
		if _, err := scheduler.ParseRule(rule, loc, time.Now()); err != nil {
			return fmt.Errorf("scheduler.jobs.%s: invalid rrule: %w", name, err)
		}
	}
	return nil
}
