// Package otp generates, stores, and verifies one-time codes on Redis,
// and hands deliveries to the task queue.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
	"github.com/naeemhossain01/flexfume-backend/internal/obs"
)

// Purpose selects the message template and the Redis key family a code
// is stored under.
type Purpose string

const (
	PurposeRegister Purpose = "register"
	PurposeReset    Purpose = "reset"
	PurposeCheckout Purpose = "checkout"
)

// ParsePurpose rejects anything outside the closed purpose set.
func ParsePurpose(raw string) (Purpose, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "register":
		return PurposeRegister, nil
	case "reset":
		return PurposeReset, nil
	case "checkout":
		return PurposeCheckout, nil
	default:
		return "", common.InvalidRequest("invalid sms type: " + raw)
	}
}

// SenderType enumerates delivery channels. Only SMS exists today; the
// switch keeps the set closed so an unknown channel fails at parse time.
type SenderType string

const SenderSMS SenderType = "SMS"

func ParseSenderType(raw string) (SenderType, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SMS":
		return SenderSMS, nil
	default:
		return "", common.Unsupported("unsupported otp sender type: " + raw)
	}
}

const (
	keyOTP      = "OTP_"
	keyReset    = "RESET_"
	keyVerified = "VERIFIED_"

	otpTTL      = 5 * time.Minute
	resetTTL    = 10 * time.Minute
	verifiedTTL = 30 * time.Minute

	codeLength = 4
)

// Enqueuer is the slice of asynq.Client the service needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Service owns the OTP lifecycle: generate, store with TTL, enqueue the
// SMS, and verify. Verified registration phones get a marker that the
// registration flow checks later.
type Service struct {
	Redis *redis.Client
	Tasks Enqueuer
}

// Send issues a fresh code for the phone and queues its delivery. A code
// still live in Redis blocks a resend until it expires.
func (s *Service) Send(ctx context.Context, phone, senderType string, purpose Purpose) error {
	if s == nil || s.Redis == nil {
		return errors.New("otp service not configured")
	}
	if _, err := ParseSenderType(senderType); err != nil {
		return err
	}
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return common.InvalidRequest("phone number is required")
	}

	key, ttl := s.storageKey(phone, purpose)
	exists, err := s.Redis.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("check pending otp: %w", err)
	}
	if exists > 0 {
		if obs.OtpSendTotal != nil {
			obs.OtpSendTotal.WithLabelValues(string(purpose), "blocked").Inc()
		}
		return common.InvalidRequest("OTP already sent. Please try again after a few minutes.")
	}

	code, err := generateCode(codeLength)
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	if err := s.Redis.Set(ctx, key, code, ttl).Err(); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	if s.Tasks == nil {
		return errors.New("otp task queue not configured")
	}
	task, err := NewSendTask(phone, messageFor(purpose, code))
	if err != nil {
		return fmt.Errorf("build sms task: %w", err)
	}
	if _, err := s.Tasks.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue sms task: %w", err)
	}
	if obs.OtpSendTotal != nil {
		obs.OtpSendTotal.WithLabelValues(string(purpose), "sent").Inc()
	}
	return nil
}

// VerifyRegistration checks a registration code and marks the phone as
// verified for the registration window.
func (s *Service) VerifyRegistration(ctx context.Context, phone, code string) error {
	if err := s.check(ctx, keyOTP+phone, code); err != nil {
		return err
	}
	if err := s.Redis.Set(ctx, keyVerified+phone, "1", verifiedTTL).Err(); err != nil {
		return fmt.Errorf("mark phone verified: %w", err)
	}
	s.Redis.Del(ctx, keyOTP+phone)
	return nil
}

// VerifyCheckout checks and consumes a checkout code.
func (s *Service) VerifyCheckout(ctx context.Context, phone, code string) error {
	if err := s.check(ctx, keyOTP+phone, code); err != nil {
		return err
	}
	s.Redis.Del(ctx, keyOTP+phone)
	return nil
}

// VerifyReset checks and consumes a password-reset code.
func (s *Service) VerifyReset(ctx context.Context, phone, code string) error {
	if err := s.check(ctx, keyReset+phone, code); err != nil {
		return err
	}
	s.Redis.Del(ctx, keyReset+phone)
	return nil
}

// IsVerified reports whether the phone passed registration verification
// inside the marker window. The marker stays until it expires so a failed
// registration attempt can be retried.
func (s *Service) IsVerified(ctx context.Context, phone string) (bool, error) {
	if s == nil || s.Redis == nil {
		return false, errors.New("otp service not configured")
	}
	exists, err := s.Redis.Exists(ctx, keyVerified+strings.TrimSpace(phone)).Result()
	if err != nil {
		return false, fmt.Errorf("check verified marker: %w", err)
	}
	return exists > 0, nil
}

func (s *Service) check(ctx context.Context, key, code string) error {
	if s == nil || s.Redis == nil {
		return errors.New("otp service not configured")
	}
	if strings.TrimSpace(code) == "" {
		return common.InvalidRequest("invalid OTP")
	}
	stored, err := s.Redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return common.InvalidRequest("invalid OTP")
		}
		return fmt.Errorf("load otp: %w", err)
	}
	if stored != strings.TrimSpace(code) {
		return common.InvalidRequest("invalid OTP")
	}
	return nil
}

func (s *Service) storageKey(phone string, purpose Purpose) (string, time.Duration) {
	if purpose == PurposeReset {
		return keyReset + phone, resetTTL
	}
	return keyOTP + phone, otpTTL
}

func messageFor(purpose Purpose, code string) string {
	switch purpose {
	case PurposeReset:
		return "Your FlexFume account password reset otp is " + code + "\nOTP will be invalid after 10 minutes."
	case PurposeCheckout:
		return "FlexFume Checkout Verification\nYour OTP for order verification is " + code + "\nOTP will expire in 5 minutes."
	default:
		return "Welcome to FlexFume.\nYour OTP for registration is " + code + "\nIt will be invalid after 5 minutes."
	}
}

func generateCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
