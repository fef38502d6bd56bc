// Package auth provides optional bearer-token protection for the API: a
// login endpoint validating a bcrypt-hashed admin password and a fiber
// middleware checking JWTs. With no secret configured the middleware is a
// pass-through, keeping the API open as the legacy deployment was.
package auth

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/iiTzGuzz/LLMSDATA/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("AUTH")

// Error codes
var (
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid username or password")
	CodeInvalidToken       = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Missing or invalid bearer token")
)

// Config holds the auth settings read from the environment.
type Config struct {
	// JWTSecret signs access tokens; empty disables authentication.
	JWTSecret string
	// AdminUser is the single operator account.
	AdminUser string
	// AdminPasswordHash is the bcrypt hash of the operator password.
	AdminPasswordHash string
	// AccessTokenTTL bounds token lifetime.
	AccessTokenTTL time.Duration
	// Issuer tags issued tokens.
	Issuer string
}

// DefaultConfig returns sane defaults; secrets come from the environment.
func DefaultConfig() Config {
	return Config{
		AccessTokenTTL: 12 * time.Hour,
		Issuer:         "llmsdata",
	}
}

// Enabled reports whether token protection is active.
func (c Config) Enabled() bool { return c.JWTSecret != "" }

// TokenService issues and validates access tokens.
type TokenService struct {
	cfg Config
}

// NewTokenService creates a JWT token service.
func NewTokenService(cfg Config) *TokenService {
	return &TokenService{cfg: cfg}
}

// Issue creates a signed access token for the given subject.
func (s *TokenService) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.cfg.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// Validate parses a token and returns its subject.
func (s *TokenService) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrRegistry.New(CodeInvalidToken).WithDetail("alg", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrRegistry.New(CodeInvalidToken).WithCause(err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", ErrRegistry.New(CodeInvalidToken)
	}
	return claims.Subject, nil
}

// Handlers exposes the login endpoint.
type Handlers struct {
	cfg    Config
	tokens *TokenService
}

// NewHandlers creates login handlers.
func NewHandlers(cfg Config, tokens *TokenService) *Handlers {
	return &Handlers{cfg: cfg, tokens: tokens}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login validates the admin credentials and returns a bearer token.
// POST /auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrRegistry.New(CodeInvalidCredentials).WithDetail("parse_error", err.Error())
	}

	if req.Username != h.cfg.AdminUser || h.cfg.AdminPasswordHash == "" {
		return ErrRegistry.New(CodeInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPasswordHash), []byte(req.Password)); err != nil {
		return ErrRegistry.New(CodeInvalidCredentials)
	}

	token, err := h.tokens.Issue(req.Username)
	if err != nil {
		return errx.Wrap(err, "failed to issue token", errx.TypeInternal)
	}
	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(h.cfg.AccessTokenTTL.Seconds()),
	})
}

// RegisterRoutes registers the auth routes when auth is enabled.
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	if !h.cfg.Enabled() {
		return
	}
	app.Post("/auth/login", h.Login)
}

// TokenMiddleware guards routes with bearer-token checks.
type TokenMiddleware struct {
	cfg    Config
	tokens *TokenService
}

// NewTokenMiddleware creates the middleware.
func NewTokenMiddleware(cfg Config, tokens *TokenService) *TokenMiddleware {
	return &TokenMiddleware{cfg: cfg, tokens: tokens}
}

// Authenticate returns a handler that rejects requests without a valid
// bearer token. When auth is disabled it passes every request through.
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.cfg.Enabled() {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		const prefix = "Bearer "
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			return ErrRegistry.New(CodeInvalidToken)
		}

		subject, err := m.tokens.Validate(header[len(prefix):])
		if err != nil {
			return err
		}
		c.Locals("auth_subject", subject)
		return c.Next()
	}
}
