package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the service settings.
type Config struct {
	AppPort         string
	DataDir         string
	ProductsFile    string
	CartsFile       string
	RabbitMQURL     string
	EventsExchange  string
	ShutdownTimeout time.Duration
}

// ProductsPath is the location of the products document.
func (c Config) ProductsPath() string {
	return filepath.Join(c.DataDir, c.ProductsFile)
}

// CartsPath is the location of the carts document.
func (c Config) CartsPath() string {
	return filepath.Join(c.DataDir, c.CartsFile)
}

// EventsEnabled reports whether domain events should be published.
func (c Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("PRODUCTS_FILE", "products.json")
	v.SetDefault("CARTS_FILE", "carts.json")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("EVENTS_EXCHANGE", "catalog.events")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

// Load reads settings from the environment, and from the file named by
// CONFIG_FILE when that is set. Environment variables win over the file.
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom is Load on a caller-supplied viper instance.
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		AppPort:         v.GetString("APP_PORT"),
		DataDir:         v.GetString("DATA_DIR"),
		ProductsFile:    v.GetString("PRODUCTS_FILE"),
		CartsFile:       v.GetString("CARTS_FILE"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		EventsExchange:  v.GetString("EVENTS_EXCHANGE"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if cfg.DataDir == "" {
		return nil, fmt.Errorf("DATA_DIR must not be empty")
	}
	if cfg.ProductsFile == "" || cfg.CartsFile == "" {
		return nil, fmt.Errorf("PRODUCTS_FILE and CARTS_FILE must not be empty")
	}
	if cfg.ProductsPath() == cfg.CartsPath() {
		return nil, fmt.Errorf("products and carts must be stored in different files")
	}
	return cfg, nil
}
