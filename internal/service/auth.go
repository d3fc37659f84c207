// Package service implements the application services: the month budget
// assembler, budget/record CRUD, and single-user token auth.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
)

var authTracer = otel.Tracer("service/auth")

// AuthService implements single-user bearer auth: the API password is
// checked against a configured bcrypt hash and exchanged for a short-lived
// HS256 access token. There are no user records and no refresh tokens.
type AuthService struct {
	passwordHash []byte
	jwtSecret    []byte
	accessTTL    time.Duration
	logger       *zap.Logger
}

// NewAuthService creates the auth service from the configured credentials.
func NewAuthService(passwordHash, jwtSecret string, accessTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
		accessTTL:    accessTTL,
		logger:       logger,
	}
}

// JWTClaims represents the claims in access tokens.
type JWTClaims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// IssueToken checks the password and returns a signed access token.
func (s *AuthService) IssueToken(ctx context.Context, req *domain.TokenRequest) (*domain.TokenResponse, error) {
	_, span := authTracer.Start(ctx, "Auth.IssueToken")
	defer span.End()

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		s.logger.Warn("token request with invalid password")
		return nil, &domain.ErrUnauthorized{Message: "invalid password"}
	}

	now := time.Now()
	claims := JWTClaims{
		Type: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "api",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			Issuer:    "budgeteer-api",
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	return &domain.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int(s.accessTTL.Seconds()),
	}, nil
}

// ValidateAccessToken parses and verifies a bearer token. Used by the
// auth middleware.
func (s *AuthService) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, &domain.ErrUnauthorized{Message: "invalid or expired token"}
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, &domain.ErrUnauthorized{Message: "invalid token"}
	}
	if claims.Type != "access" {
		return nil, &domain.ErrUnauthorized{Message: "invalid token type"}
	}
	return claims, nil
}
