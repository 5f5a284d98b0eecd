package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/jackc/pgx/v5"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
)

const (
	defaultAccessTTL = 24 * time.Hour
	defaultClockSkew = 30 * time.Second
	defaultIssuer    = "flexfume-api"
	defaultAudience  = "flexfume-clients"
)

// ResetVerifier confirms that a password-reset code was issued for the
// given phone number. Verification consumes the code.
type ResetVerifier interface {
	VerifyReset(ctx context.Context, phone, code string) error
}

// Config carries the knobs for the token service. Zero values fall back
// to sensible defaults in NewService.
type Config struct {
	Secret    []byte
	AccessTTL time.Duration
	Issuer    string
	Audience  string
	ClockSkew time.Duration
}

// Service issues and validates stateless HS256 access tokens and owns the
// credential checks behind login and password changes.
type Service struct {
	queries   dbgen.Querier
	verifier  ResetVerifier
	secret    []byte
	signer    jwa.SignatureAlgorithm
	accessTTL time.Duration
	validator TokenValidator
	now       func() time.Time
}

func NewService(queries dbgen.Querier, verifier ResetVerifier, cfg Config) (*Service, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("auth: signing secret is required")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.ClockSkew <= 0 {
		cfg.ClockSkew = defaultClockSkew
	}
	if cfg.Issuer == "" {
		cfg.Issuer = defaultIssuer
	}
	if cfg.Audience == "" {
		cfg.Audience = defaultAudience
	}
	return &Service{
		queries:  queries,
		verifier: verifier,
		secret:   cfg.Secret,
		signer:   jwa.HS256,
		accessTTL: cfg.AccessTTL,
		validator: TokenValidator{
			Issuer:    cfg.Issuer,
			Audience:  cfg.Audience,
			ClockSkew: cfg.ClockSkew,
			Algorithm: jwa.HS256,
		},
		now: time.Now,
	}, nil
}

// User is the public shape of an account returned alongside tokens.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role"`
}

// LoginResult bundles the signed token with its expiry and the account.
type LoginResult struct {
	User        User      `json:"user"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Login checks phone-number credentials and returns a signed access token.
// Unknown phones and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, phone, password string) (LoginResult, error) {
	if s == nil {
		return LoginResult{}, errors.New("auth service not configured")
	}
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return LoginResult{}, common.InvalidCredentials("invalid phone number or password")
	}

	dbUser, err := s.queries.GetUserByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return LoginResult{}, common.InvalidCredentials("invalid phone number or password")
		}
		return LoginResult{}, fmt.Errorf("load user: %w", err)
	}

	match, err := argon2id.ComparePasswordAndHash(password, dbUser.PasswordHash)
	if err != nil {
		return LoginResult{}, fmt.Errorf("compare password: %w", err)
	}
	if !match {
		return LoginResult{}, common.InvalidCredentials("invalid phone number or password")
	}

	return s.IssueFor(dbUser)
}

// IssueFor signs an access token for an already authenticated account.
// The checkout verification flow uses it after OTP proof instead of a
// password check.
func (s *Service) IssueFor(dbUser dbgen.User) (LoginResult, error) {
	if s == nil {
		return LoginResult{}, errors.New("auth service not configured")
	}
	token, expiresAt, err := s.signAccessToken(common.UUIDString(dbUser.ID), string(dbUser.Role))
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign access token: %w", err)
	}
	return LoginResult{
		User:        userFromModel(dbUser),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if s == nil {
		return errors.New("auth service not configured")
	}
	if len(newPassword) < 8 {
		return common.InvalidRequest("password must be at least 8 characters")
	}
	id, err := common.ToUUID(userID)
	if err != nil {
		return common.NewAppError("UNAUTHORIZED", "unauthorized", http.StatusUnauthorized, err)
	}
	dbUser, err := s.queries.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.NotFound("user not found")
		}
		return fmt.Errorf("load user: %w", err)
	}
	match, err := argon2id.ComparePasswordAndHash(oldPassword, dbUser.PasswordHash)
	if err != nil {
		return fmt.Errorf("compare password: %w", err)
	}
	if !match {
		return common.InvalidCredentials("current password is incorrect")
	}
	hash, err := argon2id.CreateHash(newPassword, argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.queries.UpdateUserPassword(ctx, dbgen.UpdateUserPasswordParams{ID: dbUser.ID, PasswordHash: hash}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// ResetPassword consumes a password-reset code and replaces the stored
// hash for the matching phone number.
func (s *Service) ResetPassword(ctx context.Context, phone, code, newPassword string) error {
	if s == nil {
		return errors.New("auth service not configured")
	}
	if s.verifier == nil {
		return errors.New("auth: reset verifier not configured")
	}
	phone = strings.TrimSpace(phone)
	if len(newPassword) < 8 {
		return common.InvalidRequest("password must be at least 8 characters")
	}
	if err := s.verifier.VerifyReset(ctx, phone, code); err != nil {
		return err
	}
	dbUser, err := s.queries.GetUserByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.NotFound("user not found")
		}
		return fmt.Errorf("load user: %w", err)
	}
	hash, err := argon2id.CreateHash(newPassword, argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.queries.UpdateUserPassword(ctx, dbgen.UpdateUserPasswordParams{ID: dbUser.ID, PasswordHash: hash}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// ParseAccessToken validates a signed token and returns the subject user
// ID together with the role claim.
func (s *Service) ParseAccessToken(token string) (string, string, error) {
	if s == nil {
		return "", "", errors.New("auth service not configured")
	}
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return "", "", common.NewAppError("UNAUTHORIZED", "missing token", http.StatusUnauthorized, nil)
	}
	algorithm, err := tokenAlgorithm(trimmed)
	if err != nil {
		return "", "", common.NewAppError("UNAUTHORIZED", "invalid token", http.StatusUnauthorized, err)
	}
	parsed, err := jwt.ParseString(trimmed, jwt.WithKey(algorithm, s.secret))
	if err != nil {
		return "", "", common.NewAppError("UNAUTHORIZED", "invalid token", http.StatusUnauthorized, err)
	}
	if err := s.validator.Validate(parsed, algorithm, s.now()); err != nil {
		return "", "", common.NewAppError("UNAUTHORIZED", "invalid token", http.StatusUnauthorized, err)
	}
	role := ""
	if raw, ok := parsed.Get(roleClaim); ok {
		if r, ok := raw.(string); ok {
			role = r
		}
	}
	return parsed.Subject(), role, nil
}

func (s *Service) signAccessToken(userID, role string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.accessTTL)
	builder := jwt.NewBuilder().
		Subject(userID).
		Issuer(s.validator.Issuer).
		Audience([]string{s.validator.Audience}).
		IssuedAt(now).
		NotBefore(now.Add(-s.validator.ClockSkew)).
		Expiration(expiresAt).
		Claim(roleClaim, role)
	token, err := builder.Build()
	if err != nil {
		return "", time.Time{}, err
	}
	signed, err := jwt.Sign(token, jwt.WithKey(s.signer, s.secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return string(signed), expiresAt, nil
}

func userFromModel(u dbgen.User) User {
	out := User{
		ID:          common.UUIDString(u.ID),
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
	}
	if u.Email.Valid {
		out.Email = u.Email.String
	}
	return out
}
