package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("PRODUCT_UPDATED_BASE_URL", "")
	t.Setenv("OAUTH2_JWKS_URI", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServiceName != "pricegate" {
		t.Fatalf("unexpected service name %q", cfg.ServiceName)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("unexpected port %q", cfg.HTTPPort)
	}
	if cfg.ProductUpdatedBaseURL != "" || cfg.OAuth2JWKSURI != "" {
		t.Fatal("optional endpoints default to unset")
	}
	if !cfg.EnableSwaggerUI {
		t.Fatal("swagger UI defaults to enabled")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SERVICE_NAME", "catalog-test")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PRODUCT_UPDATED_BASE_URL", "https://downstream.example")
	t.Setenv("PRODUCT_UPDATED_KEY", "host-key")
	t.Setenv("OAUTH2_JWKS_URI", "https://issuer.example/jwks")
	t.Setenv("OAUTH2_ISSUER", "https://issuer.example")
	t.Setenv("OAUTH2_AUDIENCE", "catalog-api")
	t.Setenv("ENABLE_SWAGGER_UI", "off")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ServiceName != "catalog-test" || cfg.HTTPPort != "9090" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.ProductUpdatedBaseURL != "https://downstream.example" || cfg.ProductUpdatedKey != "host-key" {
		t.Fatalf("notifier config not read: %+v", cfg)
	}
	if cfg.OAuth2Audience != "catalog-api" {
		t.Fatalf("oauth2 config not read: %+v", cfg)
	}
	if cfg.EnableSwaggerUI {
		t.Fatal("ENABLE_SWAGGER_UI=off must disable swagger")
	}
}

func TestEnvBoolParsing(t *testing.T) {
	t.Setenv("FLAG_UNDER_TEST", "Yes")
	if !envBool("FLAG_UNDER_TEST", false) {
		t.Fatal("expected truthy parse")
	}
	t.Setenv("FLAG_UNDER_TEST", "0")
	if envBool("FLAG_UNDER_TEST", true) {
		t.Fatal("expected falsy parse")
	}
	t.Setenv("FLAG_UNDER_TEST", "maybe")
	if !envBool("FLAG_UNDER_TEST", true) {
		t.Fatal("unparsable value must fall back")
	}
}
