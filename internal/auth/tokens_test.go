package auth

import (
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

func buildToken(t *testing.T, issuer, audience string, expiry time.Time) jwt.Token {
	t.Helper()
	tok, err := jwt.NewBuilder().
		Subject("user-1").
		Issuer(issuer).
		Audience([]string{audience}).
		IssuedAt(time.Now()).
		Expiration(expiry).
		Build()
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	return tok
}

func TestTokenValidator(t *testing.T) {
	validator := TokenValidator{
		Issuer:    "flexfume-api",
		Audience:  "flexfume-clients",
		ClockSkew: 30 * time.Second,
		Algorithm: jwa.HS256,
	}
	now := time.Now()

	t.Run("valid", func(t *testing.T) {
		tok := buildToken(t, "flexfume-api", "flexfume-clients", now.Add(time.Hour))
		if err := validator.Validate(tok, jwa.HS256, now); err != nil {
			t.Fatalf("validate: %v", err)
		}
	})

	t.Run("wrong issuer", func(t *testing.T) {
		tok := buildToken(t, "someone-else", "flexfume-clients", now.Add(time.Hour))
		if err := validator.Validate(tok, jwa.HS256, now); err == nil {
			t.Fatal("expected issuer mismatch to fail")
		}
	})

	t.Run("wrong audience", func(t *testing.T) {
		tok := buildToken(t, "flexfume-api", "other-clients", now.Add(time.Hour))
		if err := validator.Validate(tok, jwa.HS256, now); err == nil {
			t.Fatal("expected audience mismatch to fail")
		}
	})

	t.Run("expired beyond skew", func(t *testing.T) {
		tok := buildToken(t, "flexfume-api", "flexfume-clients", now.Add(-time.Minute))
		if err := validator.Validate(tok, jwa.HS256, now); err == nil {
			t.Fatal("expected expired token to fail")
		}
	})

	t.Run("expired within skew", func(t *testing.T) {
		tok := buildToken(t, "flexfume-api", "flexfume-clients", now.Add(-10*time.Second))
		if err := validator.Validate(tok, jwa.HS256, now); err != nil {
			t.Fatalf("token inside the skew window should pass: %v", err)
		}
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		tok := buildToken(t, "flexfume-api", "flexfume-clients", now.Add(time.Hour))
		if err := validator.Validate(tok, jwa.RS256, now); err == nil {
			t.Fatal("expected algorithm mismatch to fail")
		}
	})

	t.Run("nil token", func(t *testing.T) {
		if err := validator.Validate(nil, jwa.HS256, now); err == nil {
			t.Fatal("expected nil token to fail")
		}
	})
}
