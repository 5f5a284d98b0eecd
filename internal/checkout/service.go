// Package checkout implements the guest checkout flow: an OTP proves
// ownership of a phone number, and the account behind it is created or
// refreshed before a token is issued.
package checkout

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/alexedwards/argon2id"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/naeemhossain01/flexfume-backend/internal/auth"
	"github.com/naeemhossain01/flexfume-backend/internal/common"
	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
	"github.com/naeemhossain01/flexfume-backend/internal/otp"
)

const generatedPasswordLength = 12

// OTPService is the slice of the OTP service the checkout flow needs.
type OTPService interface {
	Send(ctx context.Context, phone, senderType string, purpose otp.Purpose) error
	VerifyCheckout(ctx context.Context, phone, code string) error
}

// TokenIssuer signs an access token for a verified account.
type TokenIssuer interface {
	IssueFor(dbgen.User) (auth.LoginResult, error)
}

// Service verifies checkout OTPs and provisions the account behind them.
type Service struct {
	Q    *dbgen.Queries
	Pool *pgxpool.Pool
	OTP  OTPService
	Auth TokenIssuer
}

// VerifyInput carries the checkout verification payload.
type VerifyInput struct {
	PhoneNumber string
	Otp         string
	Name        string
	Email       string
	Address     string
	Area        string
	City        string
	PostalCode  string
}

// VerifyResult reports whether the account was created during checkout
// and carries the signed token for the rest of the flow.
type VerifyResult struct {
	NewUser bool `json:"newUser"`
	auth.LoginResult
}

// SendOTP queues a checkout verification code.
func (s *Service) SendOTP(ctx context.Context, phone string) error {
	if s == nil || s.OTP == nil {
		return errors.New("checkout service not configured")
	}
	return s.OTP.Send(ctx, phone, string(otp.SenderSMS), otp.PurposeCheckout)
}

// Verify consumes the OTP, then creates the account when the phone is
// unknown or refreshes name, email, and address when it already exists.
// Everything after the OTP check runs in one transaction.
func (s *Service) Verify(ctx context.Context, input VerifyInput) (VerifyResult, error) {
	if s == nil || s.Q == nil || s.Pool == nil {
		return VerifyResult{}, errors.New("checkout service not configured")
	}
	if s.OTP == nil || s.Auth == nil {
		return VerifyResult{}, errors.New("checkout service not configured")
	}
	phone := strings.TrimSpace(input.PhoneNumber)
	if phone == "" {
		return VerifyResult{}, common.InvalidRequest("phone number is required")
	}
	if err := s.OTP.VerifyCheckout(ctx, phone, input.Otp); err != nil {
		return VerifyResult{}, err
	}

	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return VerifyResult{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	account, created, err := s.provision(ctx, s.Q.WithTx(tx), phone, input)
	if err != nil {
		return VerifyResult{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return VerifyResult{}, fmt.Errorf("commit transaction: %w", err)
	}

	login, err := s.Auth.IssueFor(account)
	if err != nil {
		return VerifyResult{}, err
	}
	return VerifyResult{NewUser: created, LoginResult: login}, nil
}

func (s *Service) provision(ctx context.Context, q dbgen.Querier, phone string, input VerifyInput) (dbgen.User, bool, error) {
	existing, err := q.GetUserByPhone(ctx, phone)
	switch {
	case err == nil:
		updated, err := q.UpdateUserProfile(ctx, dbgen.UpdateUserProfileParams{
			ID:    existing.ID,
			Name:  strings.TrimSpace(input.Name),
			Email: textOrNull(input.Email),
		})
		if err != nil {
			return dbgen.User{}, false, fmt.Errorf("update profile: %w", err)
		}
		if err := s.saveAddress(ctx, q, updated.ID, input); err != nil {
			return dbgen.User{}, false, err
		}
		return updated, false, nil

	case errors.Is(err, pgx.ErrNoRows):
		password, err := randomPassword(generatedPasswordLength)
		if err != nil {
			return dbgen.User{}, false, fmt.Errorf("generate password: %w", err)
		}
		hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
		if err != nil {
			return dbgen.User{}, false, fmt.Errorf("hash password: %w", err)
		}
		created, err := q.CreateUser(ctx, dbgen.CreateUserParams{
			Name:         strings.TrimSpace(input.Name),
			PhoneNumber:  phone,
			Email:        textOrNull(input.Email),
			PasswordHash: hash,
			Role:         dbgen.UserRoleUSER,
		})
		if err != nil {
			return dbgen.User{}, false, fmt.Errorf("create user: %w", err)
		}
		if err := s.saveAddress(ctx, q, created.ID, input); err != nil {
			return dbgen.User{}, false, err
		}
		return created, true, nil

	default:
		return dbgen.User{}, false, fmt.Errorf("load user: %w", err)
	}
}

func (s *Service) saveAddress(ctx context.Context, q dbgen.Querier, userID pgtype.UUID, input VerifyInput) error {
	if strings.TrimSpace(input.Address) == "" {
		return nil
	}
	if _, err := q.UpsertAddress(ctx, dbgen.UpsertAddressParams{
		UserID:     userID,
		Address:    strings.TrimSpace(input.Address),
		Area:       textOrNull(input.Area),
		City:       textOrNull(input.City),
		PostalCode: textOrNull(input.PostalCode),
	}); err != nil {
		return fmt.Errorf("save address: %w", err)
	}
	return nil
}

const passwordPool = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func randomPassword(length int) (string, error) {
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordPool))))
		if err != nil {
			return "", err
		}
		out[i] = passwordPool[n.Int64()]
	}
	return string(out), nil
}

func textOrNull(value string) pgtype.Text {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: trimmed, Valid: true}
}
