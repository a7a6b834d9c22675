package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthUser represents an authenticated user from JWT
type AuthUser struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// contextKey is used for storing user in context
type contextKey string

const (
	userContextKey  contextKey = "authenticated_user"
	tokenContextKey contextKey = "access_token"
)

// JWTConfig holds the configuration for JWT middleware
type JWTConfig struct {
	Secret    string
	Logger    *zap.Logger
	SkipPaths []string // Paths to skip JWT validation
	// Audience is checked when set (Supabase issues "authenticated")
	Audience string
	// Optional lets requests without a valid token through without a user.
	// The bearer token is still stored for remote identity lookup.
	Optional bool
}

type errorBody struct {
	message string
	code    string
}

var (
	errMissingHeader = errorBody{"Authorization header required", "MISSING_AUTH_HEADER"}
	errInvalidFormat = errorBody{"Invalid authorization header format. Expected: Bearer <token>", "INVALID_AUTH_FORMAT"}
	errInvalidToken  = errorBody{"Invalid or expired token", "INVALID_TOKEN"}
	errInvalidClaims = errorBody{"Invalid token claims", "INVALID_CLAIMS"}
)

// JWTMiddleware creates a middleware that validates Supabase JWT tokens
func JWTMiddleware(config JWTConfig) echo.MiddlewareFunc {
	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if config.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(config.Audience))
	}
	parser := jwt.NewParser(parserOpts...)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Skip JWT validation for certain paths
			path := c.Request().URL.Path
			for _, skipPath := range config.SkipPaths {
				if strings.HasPrefix(path, skipPath) {
					return next(c)
				}
			}

			reject := func(body errorBody) error {
				if config.Optional {
					return next(c)
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": body.message,
					"code":  body.code,
				})
			}

			// Extract token from Authorization header
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				if !config.Optional {
					config.Logger.Warn("Missing authorization header",
						zap.String("path", path),
						zap.String("method", c.Request().Method))
				}
				return reject(errMissingHeader)
			}

			// Check Bearer prefix
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader || tokenString == "" {
				config.Logger.Warn("Invalid authorization header format",
					zap.String("path", path))
				return reject(errInvalidFormat)
			}

			ctx := context.WithValue(c.Request().Context(), tokenContextKey, tokenString)
			c.SetRequest(c.Request().WithContext(ctx))

			// Parse and validate JWT token
			claims := jwt.MapClaims{}
			token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(config.Secret), nil
			})
			if err != nil || !token.Valid {
				config.Logger.Warn("JWT validation failed",
					zap.Error(err),
					zap.String("path", path))
				return reject(errInvalidToken)
			}

			sub, _ := claims.GetSubject()
			if _, err := uuid.Parse(sub); err != nil {
				config.Logger.Warn("Invalid JWT subject",
					zap.String("sub", sub),
					zap.String("path", path))
				return reject(errInvalidClaims)
			}

			// Extract optional fields from JWT claims
			email, _ := claims["email"].(string)
			role, _ := claims["role"].(string)

			authUser := &AuthUser{
				UserID: sub,
				Email:  email,
				Role:   role,
			}

			// Store user in request context
			c.SetRequest(c.Request().WithContext(WithUser(c.Request().Context(), authUser)))
			c.Set("user_id", sub)

			config.Logger.Debug("User authenticated successfully",
				zap.String("user_id", sub),
				zap.String("path", path))

			return next(c)
		}
	}
}

// WithUser stores the authenticated user in ctx
func WithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user stored by the middleware
func UserFromContext(ctx context.Context) (*AuthUser, bool) {
	user, ok := ctx.Value(userContextKey).(*AuthUser)
	return user, ok && user != nil
}

// WithAccessToken stores the raw bearer token in ctx
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// AccessTokenFromContext returns the raw bearer token of the request, if any
func AccessTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}
