package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the storefront service.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`
	// RedisURL points at the Redis instance holding sessions, carts and checkout flows.
	RedisURL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`

	// BakeryAPI holds the backend REST API configuration.
	BakeryAPI BakeryAPIConfig `mapstructure:",squash"`

	// Session holds visitor session settings.
	Session SessionConfig `mapstructure:",squash"`

	// Checkout holds pricing and fulfillment settings.
	Checkout CheckoutConfig `mapstructure:",squash"`

	// Proxy holds the optional egress proxy used for backend calls.
	Proxy ProxyConfig `mapstructure:",squash"`
}

// BakeryAPIConfig holds the connection details of the bakery backend.
type BakeryAPIConfig struct {
	// URL is the base URL of the REST API (e.g., https://api.example.com/api).
	URL string `mapstructure:"BAKERY_API_URL" required:"true"`
	// TimeoutSeconds bounds every backend request.
	TimeoutSeconds int `mapstructure:"BAKERY_API_TIMEOUT_SECONDS" default:"10"`
}

// Timeout returns the request timeout as a duration.
func (c BakeryAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionConfig holds visitor session settings.
type SessionConfig struct {
	// TTLMinutes is how long an idle session survives in Redis.
	TTLMinutes int `mapstructure:"SESSION_TTL_MINUTES" default:"120"`
	// CookieName is the name of the cookie carrying the session id.
	CookieName string `mapstructure:"SESSION_COOKIE_NAME" default:"bakery_session"`
	// SecureCookie marks the session cookie as HTTPS only.
	SecureCookie bool `mapstructure:"SESSION_SECURE_COOKIE"`
}

// TTL returns the session lifetime as a duration.
func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// CheckoutConfig holds pricing and fulfillment settings.
type CheckoutConfig struct {
	// ShippingCost is the flat home-delivery fee in major currency units.
	ShippingCost float64 `mapstructure:"SHIPPING_COST" default:"15"`
	// StorePickupAddress is sent as the shipping address of pickup orders.
	StorePickupAddress string `mapstructure:"STORE_PICKUP_ADDRESS" default:"Recoger en tienda - Calle Mayor 12"`
}

// ProxyConfig holds the optional egress proxy.
type ProxyConfig struct {
	Enabled  bool   `mapstructure:"PROXY_ENABLED"`
	Hostname string `mapstructure:"PROXY_HOSTNAME"`
	Port     int    `mapstructure:"PROXY_PORT"`
	Username string `mapstructure:"PROXY_USERNAME"`
	Password string `mapstructure:"PROXY_PASSWORD"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags binds every tagged field to its env key and registers defaults.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key == "" {
			continue
		}

		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}

		if defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && val.Field(i).IsZero() {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}
