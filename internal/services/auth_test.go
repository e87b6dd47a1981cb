package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/requestdata"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, secret string, subject string, ttl time.Duration) string {
	t.Helper()
	now := time.Now().UTC()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthServiceSetContextFromToken(t *testing.T) {
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	svc := NewAuthService(nil, log, nil, testSecret, time.Minute)
	ctx := context.Background()

	t.Run("valid token attaches identity", func(t *testing.T) {
		userID := uuid.New()
		token := signTestToken(t, testSecret, userID.String(), time.Minute)
		out, err := svc.SetContextFromToken(ctx, token)
		if err != nil {
			t.Fatalf("set context: %v", err)
		}
		rd := requestdata.GetRequestData(out)
		if rd == nil || rd.UserID != userID {
			t.Fatalf("expected request identity %s, got %+v", userID, rd)
		}
	})

	t.Run("empty token passes through", func(t *testing.T) {
		out, err := svc.SetContextFromToken(ctx, "")
		if err != nil {
			t.Fatalf("empty token: %v", err)
		}
		if requestdata.GetRequestData(out) != nil {
			t.Fatalf("expected no identity on empty token")
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token := signTestToken(t, "other-secret", uuid.NewString(), time.Minute)
		if _, err := svc.SetContextFromToken(ctx, token); err == nil {
			t.Fatalf("expected error for wrong signing key")
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		token := signTestToken(t, testSecret, uuid.NewString(), -time.Minute)
		if _, err := svc.SetContextFromToken(ctx, token); err == nil {
			t.Fatalf("expected error for expired token")
		}
	})

	t.Run("non-uuid subject rejected", func(t *testing.T) {
		token := signTestToken(t, testSecret, "not-a-uuid", time.Minute)
		if _, err := svc.SetContextFromToken(ctx, token); err == nil {
			t.Fatalf("expected error for malformed subject")
		}
	})
}
