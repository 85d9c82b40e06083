package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/buildwithgo/radioitems/host"
)

// ClaimsKey is the context key under which validated claims are stored.
const ClaimsKey = "claims"

// JWTConfig holds the configuration for JWT middleware.
// It guards the routes through which a controller overwrites widget values.
type JWTConfig struct {
	// Secret key for HMAC signing
	Secret []byte

	// Token lookup configuration
	TokenLookup string // "header:Authorization", "query:token", "cookie:jwt"

	// Auth scheme for header lookup
	AuthScheme string // "Bearer"

	// Error handler
	ErrorHandler func(*host.Context, error) error

	// Signing method
	SigningMethod jwt.SigningMethod
}

// JWTOption is a function type for configuring JWT middleware
type JWTOption func(*JWTConfig)

// DefaultJWTConfig returns a default JWT configuration
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		TokenLookup:   "header:Authorization",
		AuthScheme:    "Bearer",
		SigningMethod: jwt.SigningMethodHS256,
		ErrorHandler: func(c *host.Context, err error) error {
			return host.NewHTTPError(http.StatusUnauthorized, "unauthorized").SetInternal(err)
		},
	}
}

// WithSecret sets the HMAC secret
func WithSecret(secret string) JWTOption {
	return func(config *JWTConfig) {
		config.Secret = []byte(secret)
	}
}

// WithTokenLookup sets where to look for the token
func WithTokenLookup(lookup string) JWTOption {
	return func(config *JWTConfig) {
		config.TokenLookup = lookup
	}
}

// WithErrorHandler sets custom error handler
func WithErrorHandler(handler func(*host.Context, error) error) JWTOption {
	return func(config *JWTConfig) {
		config.ErrorHandler = handler
	}
}

// JWT creates a new JWT middleware with the given options
func JWT(opts ...JWTOption) host.Middleware {
	config := DefaultJWTConfig()

	for _, opt := range opts {
		opt(config)
	}

	return func(next host.Handler) host.Handler {
		return func(c *host.Context) error {
			token, err := extractToken(c, config)
			if err != nil {
				return config.ErrorHandler(c, err)
			}

			parsedToken, err := parseToken(token, config)
			if err != nil {
				return config.ErrorHandler(c, err)
			}

			if claims, ok := parsedToken.Claims.(jwt.MapClaims); ok {
				c.Set(ClaimsKey, claims)
			}

			return next(c)
		}
	}
}

// Claims returns the claims stored by JWT.
func Claims(c *host.Context) (jwt.MapClaims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(jwt.MapClaims)
	return claims, ok
}

// extractToken extracts the JWT token from the request
func extractToken(c *host.Context, config *JWTConfig) (string, error) {
	method, key, ok := strings.Cut(config.TokenLookup, ":")
	if !ok {
		return "", errors.New("invalid token lookup format")
	}

	switch method {
	case "header":
		auth := c.GetHeader(key)
		if auth == "" {
			return "", errors.New("missing authorization header")
		}

		if config.AuthScheme != "" {
			prefix := config.AuthScheme + " "
			if !strings.HasPrefix(auth, prefix) {
				return "", fmt.Errorf("invalid authorization scheme, expected %s", config.AuthScheme)
			}
			return strings.TrimPrefix(auth, prefix), nil
		}
		return auth, nil

	case "query":
		token := c.QueryParam(key)
		if token == "" {
			return "", errors.New("missing token in query parameters")
		}
		return token, nil

	case "cookie":
		cookie, err := c.GetCookie(key)
		if err != nil {
			return "", errors.New("missing token in cookie")
		}
		return cookie.Value, nil

	default:
		return "", errors.New("unsupported token lookup method")
	}
}

// parseToken parses and validates the JWT token. Expiry and not-before
// claims are checked by the jwt parser.
func parseToken(tokenString string, config *JWTConfig) (*jwt.Token, error) {
	if config.Secret == nil {
		return nil, errors.New("HMAC secret not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return config.Secret, nil
	}, jwt.WithValidMethods([]string{config.SigningMethod.Alg()}), jwt.WithIssuedAt())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return token, nil
}

// CreateToken signs claims with the configured HMAC secret.
func CreateToken(claims jwt.MapClaims, config *JWTConfig) (string, error) {
	if config.Secret == nil {
		return "", errors.New("HMAC secret not configured")
	}
	return jwt.NewWithClaims(config.SigningMethod, claims).SignedString(config.Secret)
}
