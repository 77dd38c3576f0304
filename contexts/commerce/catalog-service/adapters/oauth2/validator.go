package oauth2

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pricegate/contexts/commerce/catalog-service/ports"
)

// Config holds the three values that together enable token validation.
// Partial configuration disables validation entirely.
type Config struct {
	JWKSURI  string
	Issuer   string
	Audience string
}

// Configured reports whether every required value is present.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.JWKSURI) != "" &&
		strings.TrimSpace(c.Issuer) != "" &&
		strings.TrimSpace(c.Audience) != ""
}

// Validator verifies RS256 bearer tokens against a remote JWKS endpoint.
// Signing keys are fetched on first use and cached.
type Validator struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger

	mu   sync.RWMutex
	keys map[string]*rsa.PublicKey
}

func NewValidator(cfg Config, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
		keys:   make(map[string]*rsa.PublicKey),
	}
}

// Validate authenticates the inbound request. A missing or invalid token
// yields an unauthenticated context, not an error; only key-service failures
// are surfaced as errors.
func (v *Validator) Validate(ctx context.Context, r *http.Request) (ports.AuthContext, error) {
	authHeader := r.Header.Get("Authorization")
	tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
	if authHeader == "" || !found {
		return ports.AuthContext{}, nil
	}

	var keyErr error
	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (any, error) {
			kid, _ := token.Header["kid"].(string)
			key, err := v.signingKey(ctx, kid)
			if err != nil {
				keyErr = err
				return nil, err
			}
			return key, nil
		},
		jwt.WithIssuer(strings.TrimSpace(v.cfg.Issuer)),
		jwt.WithAudience(strings.TrimSpace(v.cfg.Audience)),
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
	)
	if keyErr != nil {
		return ports.AuthContext{}, keyErr
	}
	if err != nil || !token.Valid {
		v.logger.Debug("bearer token rejected",
			"event", "oauth2_token_rejected",
			"module", "commerce/catalog-service",
			"layer", "adapter",
			"error", fmt.Sprintf("%v", err),
		)
		return ports.AuthContext{}, nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ports.AuthContext{}, nil
	}
	return ports.AuthContext{
		Authenticated: true,
		Scopes:        scopesFromClaims(claims),
	}, nil
}

func (v *Validator) signingKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	v.mu.RUnlock()
	if ok {
		return key, nil
	}

	if err := v.refreshKeys(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	key, ok = v.keys[kid]
	v.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("signing key %q not found in jwks", kid)
	}
	return key, nil
}

func (v *Validator) refreshKeys(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSpace(v.cfg.JWKSURI), nil)
	if err != nil {
		return fmt.Errorf("build jwks request: %w", err)
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch jwks: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch jwks: status %d", resp.StatusCode)
	}

	var doc struct {
		Keys []struct {
			Kty string `json:"kty"`
			Kid string `json:"kid"`
			N   string `json:"n"`
			E   string `json:"e"`
		} `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("decode jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := parseRSAKey(k.N, k.E)
		if err != nil {
			v.logger.Warn("skipping unparsable jwks key",
				"event", "oauth2_jwks_key_skipped",
				"module", "commerce/catalog-service",
				"layer", "adapter",
				"kid", k.Kid,
				"error", err.Error(),
			)
			continue
		}
		keys[k.Kid] = pub
	}

	v.mu.Lock()
	v.keys = keys
	v.mu.Unlock()

	v.logger.Debug("jwks refreshed",
		"event", "oauth2_jwks_refreshed",
		"module", "commerce/catalog-service",
		"layer", "adapter",
		"key_count", len(keys),
	)
	return nil
}

func parseRSAKey(n, e string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(n)
	if err != nil {
		return nil, fmt.Errorf("decode modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(e)
	if err != nil {
		return nil, fmt.Errorf("decode exponent: %w", err)
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: int(new(big.Int).SetBytes(eBytes).Int64()),
	}, nil
}

// scopesFromClaims reads granted scopes from either the space-delimited
// "scope" claim or the "scp" array claim, collapsing duplicates.
func scopesFromClaims(claims jwt.MapClaims) []string {
	var raw []string
	if scope, ok := claims["scope"].(string); ok {
		raw = strings.Fields(scope)
	} else if scp, ok := claims["scp"].([]any); ok {
		for _, item := range scp {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	}

	seen := make(map[string]struct{}, len(raw))
	scopes := make([]string, 0, len(raw))
	for _, s := range raw {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		scopes = append(scopes, s)
	}
	return scopes
}
