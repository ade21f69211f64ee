// config - источник загрузки конфигурации для leads-api и partnerctl.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string        `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig    `yaml:"http"`
	Metrics  MetricsConfig `yaml:"metrics"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
	Partner  PartnerConfig `yaml:"partner"`
	Storage  StorageConfig `yaml:"storage"`
	DB       DBConfig      `yaml:"db"`
	Redis    RedisConfig   `yaml:"redis"`
	S3       S3Config      `yaml:"s3"`
	Leads    LeadsConfig   `yaml:"leads"`
}

// TimeoutConfig — таймаут входящего HTTP-запроса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"15s"`
}

// HTTPConfig — публичный REST-сервер захвата лидов.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"3001"`

	// AdminToken закрывает смену окружения партнёра. Пустое значение закрывает маршрут совсем.
	AdminToken string `yaml:"admin_token" env:"ADMIN_TOKEN"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// MetricsConfig — отдельный HTTP для Prometheus.
type MetricsConfig struct {
	Host string `yaml:"host" env:"METRICS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"METRICS_PORT" env-default:"9091"`
}

func (m MetricsConfig) Addr() string { return net.JoinHostPort(m.Host, m.Port) }

// PartnerConfig — подключение к партнёрскому API Crefaz.
// ClientID/ClientSecret/BaseURL, если заданы, перекрывают значения активного профиля.
type PartnerConfig struct {
	Environment  string `yaml:"environment"   env:"CREFAZ_ENVIRONMENT"    env-default:"staging"`
	BaseURL      string `yaml:"base_url"      env:"CREFAZ_API_BASE_URL"`
	ClientID     string `yaml:"client_id"     env:"CREFAZ_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"CREFAZ_CLIENT_SECRET"`
	UserAgent    string `yaml:"user_agent"    env:"PARTNER_USER_AGENT"    env-default:"crefaz-leads-api"`
	ForwardLeads bool   `yaml:"forward_leads" env:"PARTNER_FORWARD_LEADS" env-default:"false"`
	SingleFlight bool   `yaml:"single_flight" env:"PARTNER_SINGLE_FLIGHT" env-default:"true"`

	// Profiles дополняет/переопределяет встроенные профили (local, staging, production).
	Profiles map[string]ProfileConfig `yaml:"profiles"`
}

// ProfileConfig — переопределение профиля окружения. Пустые поля не трогают встроенные значения.
type ProfileConfig struct {
	BaseURL            string            `yaml:"base_url"`
	ClientID           string            `yaml:"client_id"`
	ClientSecret       string            `yaml:"client_secret"`
	Timeout            time.Duration     `yaml:"timeout"`
	EnableLogs         *bool             `yaml:"enable_logs"`
	RateLimitPerMinute int               `yaml:"rate_limit_per_minute"`
	Endpoints          map[string]string `yaml:"endpoints"`
}

// StorageConfig — выбор хранилища захваченных лидов: memory | postgres | redis.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
}

type DBConfig struct {
	URL string `yaml:"db_url" env:"DB_URL"`
}

type RedisConfig struct {
	URL    string `yaml:"redis_url" env:"REDIS_URL"`
	Prefix string `yaml:"prefix"    env:"REDIS_PREFIX" env-default:"leads:"`
}

// S3Config — архив загруженных документов. Пустой Endpoint отключает архив.
type S3Config struct {
	Endpoint     string `yaml:"endpoint"      env:"S3_ENDPOINT"`
	RootUser     string `yaml:"root_user"     env:"S3_ROOT_USER"`
	RootPassword string `yaml:"root_password" env:"S3_ROOT_PASSWORD"`
	Bucket       string `yaml:"bucket"        env:"S3_BUCKET" env-default:"documents"`
}

// LeadsConfig — номер WhatsApp менеджера, получающего новые лиды.
type LeadsConfig struct {
	WhatsappNumber string `yaml:"whatsapp_number" env:"WHATSAPP_NUMBER" env-default:"5584994616051"`
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		return validate(&cfg)
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		return validate(&cfg)
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return validate(&cfg)
}

// validate проверяет связные поля, которые cleanenv проверить не может.
func validate(cfg *Config) (*Config, error) {
	switch cfg.Storage.Driver {
	case "memory":
	case "postgres":
		if cfg.DB.URL == "" {
			return nil, fmt.Errorf("storage driver postgres requires db.db_url")
		}
	case "redis":
		if cfg.Redis.URL == "" {
			return nil, fmt.Errorf("storage driver redis requires redis.redis_url")
		}
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	return cfg, nil
}
