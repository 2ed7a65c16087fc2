package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/rl1809/storefront/internal/core/service"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMySQL  = "mysql"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	GRPCAddr string `mapstructure:"GRPC_ADDR"`

	StorageDriver  string `mapstructure:"STORAGE_DRIVER"`
	SQLitePath     string `mapstructure:"SQLITE_PATH"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisKeyPrefix string `mapstructure:"REDIS_KEY_PREFIX"`
	MySQLDSN       string `mapstructure:"MYSQL_DSN"`

	// Empty means the built-in catalog.
	CatalogPath string `mapstructure:"CATALOG_PATH"`

	// Comma separated. Empty logs events instead of publishing them.
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic   string `mapstructure:"KAFKA_TOPIC"`

	FreeShippingThreshold string `mapstructure:"FREE_SHIPPING_THRESHOLD"`
	ShippingFee           string `mapstructure:"SHIPPING_FEE"`
	TaxRate               string `mapstructure:"TAX_RATE"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogPretty bool   `mapstructure:"LOG_PRETTY"`
}

var defaults = map[string]any{
	"HTTP_ADDR":               ":8080",
	"GRPC_ADDR":               ":50051",
	"STORAGE_DRIVER":          DriverSQLite,
	"SQLITE_PATH":             "storefront.db",
	"REDIS_ADDR":              "localhost:6379",
	"REDIS_PASSWORD":          "",
	"REDIS_KEY_PREFIX":        "storefront:",
	"MYSQL_DSN":               "root:root@tcp(localhost:3306)/storefront?parseTime=true",
	"CATALOG_PATH":            "",
	"KAFKA_BROKERS":           "",
	"KAFKA_TOPIC":             "storefront.orders",
	"FREE_SHIPPING_THRESHOLD": "100",
	"SHIPPING_FEE":            "9.99",
	"TAX_RATE":                "0.08",
	"LOG_LEVEL":               "info",
	"LOG_PRETTY":              false,
}

// Load reads defaults, then the optional config file at path, then the
// environment. Later sources win.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory, DriverSQLite, DriverRedis, DriverMySQL:
	default:
		return fmt.Errorf("%w: unknown STORAGE_DRIVER %q", ErrInvalidConfig, c.StorageDriver)
	}
	if len(c.Brokers()) > 0 && c.KafkaTopic == "" {
		return fmt.Errorf("%w: KAFKA_TOPIC is required with KAFKA_BROKERS", ErrInvalidConfig)
	}
	if _, err := c.Pricing(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func (c *Config) Pricing() (service.Pricing, error) {
	threshold, err := parseAmount("FREE_SHIPPING_THRESHOLD", c.FreeShippingThreshold)
	if err != nil {
		return service.Pricing{}, err
	}
	fee, err := parseAmount("SHIPPING_FEE", c.ShippingFee)
	if err != nil {
		return service.Pricing{}, err
	}
	rate, err := parseAmount("TAX_RATE", c.TaxRate)
	if err != nil {
		return service.Pricing{}, err
	}
	return service.Pricing{FreeShippingThreshold: threshold, ShippingFee: fee, TaxRate: rate}, nil
}

func parseAmount(name, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, name, s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, name)
	}
	return d, nil
}
