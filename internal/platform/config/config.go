package config

import (
	"os"
	"strings"
)

// Config is centralized process configuration.
// Values are read once at load time; capability construction decides what a
// missing value means (e.g. partial OAuth2 config disables validation).
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	ProductUpdatedBaseURL string
	ProductUpdatedKey     string

	OAuth2JWKSURI  string
	OAuth2Issuer   string
	OAuth2Audience string

	EnableSwaggerUI bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "pricegate"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		ProductUpdatedBaseURL: os.Getenv("PRODUCT_UPDATED_BASE_URL"),
		ProductUpdatedKey:     os.Getenv("PRODUCT_UPDATED_KEY"),

		OAuth2JWKSURI:  os.Getenv("OAUTH2_JWKS_URI"),
		OAuth2Issuer:   os.Getenv("OAUTH2_ISSUER"),
		OAuth2Audience: os.Getenv("OAUTH2_AUDIENCE"),

		EnableSwaggerUI: envBool("ENABLE_SWAGGER_UI", true),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
