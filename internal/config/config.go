package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultConfigPath = "./config/local.yaml"

type HTTPServer struct {
	Addr         string        `yaml:"address" env:"HTTP_ADDR" env-default:"127.0.0.1:8090"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
}

// Upstream is the remote storefront REST backend.
type Upstream struct {
	BaseURL              string        `yaml:"BASE_URL" env:"STOREFRONT_BASE_URL" env-required:"true"`
	Timeout              time.Duration `yaml:"TIMEOUT" env:"STOREFRONT_TIMEOUT" env-default:"10s"`
	SessionCookie        string        `yaml:"SESSION_COOKIE" env:"STOREFRONT_SESSION_COOKIE" env-default:"token"`
	SessionCheckInterval time.Duration `yaml:"SESSION_CHECK_INTERVAL" env:"STOREFRONT_SESSION_CHECK_INTERVAL" env-default:"1m"`
}

type Breaker struct {
	MaxRequests      uint32        `yaml:"MAX_REQUESTS" env:"BREAKER_MAX_REQUESTS" env-default:"3"`
	Interval         time.Duration `yaml:"INTERVAL" env:"BREAKER_INTERVAL" env-default:"60s"`
	Timeout          time.Duration `yaml:"TIMEOUT" env:"BREAKER_TIMEOUT" env-default:"30s"`
	FailureThreshold uint32        `yaml:"FAILURE_THRESHOLD" env:"BREAKER_FAILURE_THRESHOLD" env-default:"5"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type CacheConfig struct {
	Enabled    bool          `yaml:"enabled" env:"CACHE_ENABLED" env-default:"true"`
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

// Storefront holds the business constants the UI used to hard-code.
type Storefront struct {
	PublicURL     string        `yaml:"PUBLIC_URL" env:"STOREFRONT_PUBLIC_URL" env-default:"http://localhost:5173"`
	ShippingFee   float64       `yaml:"SHIPPING_FEE" env:"STOREFRONT_SHIPPING_FEE" env-default:"2000"`
	MinWithdrawal float64       `yaml:"MIN_WITHDRAWAL" env:"STOREFRONT_MIN_WITHDRAWAL" env-default:"10000"`
	AlertTTL      time.Duration `yaml:"ALERT_TTL" env:"STOREFRONT_ALERT_TTL" env-default:"5s"`
	MaxAlerts     int           `yaml:"MAX_ALERTS" env:"STOREFRONT_MAX_ALERTS" env-default:"20"`
}

type Geocoder struct {
	BaseURL   string        `yaml:"BASE_URL" env:"GEOCODER_BASE_URL" env-default:"https://nominatim.openstreetmap.org"`
	UserAgent string        `yaml:"USER_AGENT" env:"GEOCODER_USER_AGENT" env-default:"storefront-companion/1.0"`
	Timeout   time.Duration `yaml:"TIMEOUT" env:"GEOCODER_TIMEOUT" env-default:"10s"`
}

// RateConfig bounds how often the geocoder may be called, shared by every
// companion using the same redis.
type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"RATE_MAX_ATTEMPTS" env-default:"1"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"RATE_WINDOW_SIZE" env-default:"1s"`
}

type Otel struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"storefront-companion"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	Upstream     Upstream     `yaml:"upstream"`
	Breaker      Breaker      `yaml:"breaker"`
	RedisConnect RedisConnect `yaml:"redis"`
	Cache        CacheConfig  `yaml:"cache"`
	Storefront   Storefront   `yaml:"storefront"`
	Geocoder     Geocoder     `yaml:"geocoder"`
	RateConfig   RateConfig   `yaml:"geocoder_rate"`
	Otel         Otel         `yaml:"otel"`
}

func MustLoad() *Config {

	// .env is optional; real environment variables still win
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the YAML config file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			configPath = defaultConfigPath
		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg

}

func LoadConfigFromPath(configPath string) (*Config, error) {

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return &cfg, nil
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
}

func (r *RedisConnect) Addr() string {
	return r.Host + ":" + r.Port
}
