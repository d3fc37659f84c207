package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/boddenberg/budgeteer-api-go/internal/domain"
	"github.com/boddenberg/budgeteer-api-go/internal/service"
)

func newAuthService(t *testing.T, password string) *service.AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return service.NewAuthService(string(hash), "test-secret", time.Hour, zap.NewNop())
}

func TestIssueToken_Success(t *testing.T) {
	svc := newAuthService(t, "correct horse")

	resp, err := svc.IssueToken(context.Background(), &domain.TokenRequest{Password: "correct horse"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected a token")
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("expected expires_in 3600, got %d", resp.ExpiresIn)
	}

	claims, err := svc.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
	if claims.Subject != "api" || claims.Type != "access" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestIssueToken_WrongPassword(t *testing.T) {
	svc := newAuthService(t, "correct horse")

	_, err := svc.IssueToken(context.Background(), &domain.TokenRequest{Password: "battery staple"})
	var unauth *domain.ErrUnauthorized
	if !errors.As(err, &unauth) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	svc := newAuthService(t, "pw")

	if _, err := svc.ValidateAccessToken("not-a-jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	issuer := newAuthService(t, "pw")
	resp, err := issuer.IssueToken(context.Background(), &domain.TokenRequest{Password: "pw"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	verifier := service.NewAuthService(string(hash), "other-secret", time.Hour, zap.NewNop())
	if _, err := verifier.ValidateAccessToken(resp.AccessToken); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}
