// Package cmd holds the application configuration and composition root.
package cmd

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Config is the full application configuration, loaded from the environment
// (with .env support for local development).
type Config struct {
	HTTP     HTTPConfig
	Log      LogConfig
	DB       DBConfig
	Geo      GeoConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Dispatch DispatchConfig
	Pricing  PricingConfig
}

// LoadConfig reads the configuration from the environment. A missing .env file
// is not an error; container deployments set the variables directly.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// HTTPConfig configures the inbound HTTP server.
type HTTPConfig struct {
	Port string `envconfig:"HTTP_PORT" default:"8080"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// DBConfig configures the PostgreSQL connection.
type DBConfig struct {
	Host     string `envconfig:"DB_HOST" required:"true"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	Name     string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// DSN builds the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// GeoConfig configures the geo service gateway.
type GeoConfig struct {
	BaseURL string `envconfig:"GEO_SERVICE_URL" required:"true"`
}

// RedisConfig configures the geocoding cache.
type RedisConfig struct {
	Addr       string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password   string        `envconfig:"REDIS_PASSWORD"`
	DB         int           `envconfig:"REDIS_DB" default:"0"`
	GeocodeTTL time.Duration `envconfig:"REDIS_GEOCODE_TTL" default:"24h"`
}

// KafkaConfig configures the order event producer.
type KafkaConfig struct {
	Brokers           []string `envconfig:"KAFKA_BROKERS" required:"true"`
	OrderChangedTopic string   `envconfig:"KAFKA_ORDER_CHANGED_TOPIC" default:"order.changed"`
}

// DispatchConfig configures the offer lifecycle and the sweep cadence.
type DispatchConfig struct {
	OfferWindow   time.Duration `envconfig:"DISPATCH_OFFER_WINDOW" default:"60s"`
	RejectPenalty int           `envconfig:"DISPATCH_REJECT_PENALTY" default:"10"`
	ExpirePenalty int           `envconfig:"DISPATCH_EXPIRE_PENALTY" default:"5"`
	SweepSchedule string        `envconfig:"DISPATCH_SWEEP_SCHEDULE" default:"*/5 * * * * *"`
}

// PricingConfig configures the marketplace rates. The defaults are the
// standard rates: base fee 5, 2 per kilometer, 20 percent platform cut.
type PricingConfig struct {
	BaseFee            decimal.Decimal `envconfig:"PRICING_BASE_FEE" default:"5"`
	PerKm              decimal.Decimal `envconfig:"PRICING_PER_KM" default:"2"`
	PlatformFeePercent decimal.Decimal `envconfig:"PRICING_PLATFORM_FEE_PERCENT" default:"20"`
}
