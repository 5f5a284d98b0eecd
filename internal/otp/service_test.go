package otp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
)

type stubEnqueuer struct {
	tasks []*asynq.Task
}

func (s *stubEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	s.tasks = append(s.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis, *stubEnqueuer) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	enqueuer := &stubEnqueuer{}
	return &Service{Redis: client, Tasks: enqueuer}, mr, enqueuer
}

func TestSendStoresCodeAndEnqueuesTask(t *testing.T) {
	svc, mr, enqueuer := newTestService(t)

	if err := svc.Send(context.Background(), "+8801711111111", "sms", PurposeRegister); err != nil {
		t.Fatalf("send: %v", err)
	}

	code, err := mr.Get("OTP_+8801711111111")
	if err != nil {
		t.Fatalf("stored code missing: %v", err)
	}
	if len(code) != 4 {
		t.Fatalf("code length = %d, want 4", len(code))
	}
	if len(enqueuer.tasks) != 1 {
		t.Fatalf("enqueued tasks = %d, want 1", len(enqueuer.tasks))
	}
	var payload sendSMSPayload
	if err := json.Unmarshal(enqueuer.tasks[0].Payload(), &payload); err != nil {
		t.Fatalf("unmarshal task payload: %v", err)
	}
	if payload.Phone != "+8801711111111" {
		t.Fatalf("task phone = %q", payload.Phone)
	}
}

func TestSendBlocksResendWhileCodeLive(t *testing.T) {
	svc, mr, _ := newTestService(t)

	if err := svc.Send(context.Background(), "+8801711111111", "sms", PurposeRegister); err != nil {
		t.Fatalf("first send: %v", err)
	}
	err := svc.Send(context.Background(), "+8801711111111", "sms", PurposeRegister)
	assertCode(t, err, "INVALID_REQUEST")

	mr.FastForward(6 * time.Minute)
	if err := svc.Send(context.Background(), "+8801711111111", "sms", PurposeRegister); err != nil {
		t.Fatalf("send after expiry: %v", err)
	}
}

func TestSendUnknownSenderType(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Send(context.Background(), "+8801711111111", "email", PurposeRegister)
	assertCode(t, err, "UNSUPPORTED_TYPE")
}

func TestVerifyRegistrationMarksPhoneVerified(t *testing.T) {
	svc, mr, _ := newTestService(t)
	mr.Set("OTP_+8801711111111", "4321")

	if err := svc.VerifyRegistration(context.Background(), "+8801711111111", "4321"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	verified, err := svc.IsVerified(context.Background(), "+8801711111111")
	if err != nil {
		t.Fatalf("is verified: %v", err)
	}
	if !verified {
		t.Fatal("expected phone to be marked verified")
	}
	if mr.Exists("OTP_+8801711111111") {
		t.Fatal("expected registration code to be consumed")
	}
}

func TestVerifyRegistrationWrongCode(t *testing.T) {
	svc, mr, _ := newTestService(t)
	mr.Set("OTP_+8801711111111", "4321")

	err := svc.VerifyRegistration(context.Background(), "+8801711111111", "0000")
	assertCode(t, err, "INVALID_REQUEST")

	verified, err := svc.IsVerified(context.Background(), "+8801711111111")
	if err != nil {
		t.Fatalf("is verified: %v", err)
	}
	if verified {
		t.Fatal("wrong code must not mark the phone verified")
	}
}

func TestVerifyResetConsumesCode(t *testing.T) {
	svc, mr, _ := newTestService(t)
	mr.Set("RESET_+8801711111111", "9876")

	if err := svc.VerifyReset(context.Background(), "+8801711111111", "9876"); err != nil {
		t.Fatalf("verify reset: %v", err)
	}
	err := svc.VerifyReset(context.Background(), "+8801711111111", "9876")
	assertCode(t, err, "INVALID_REQUEST")
}

func TestResetCodeUsesLongerTTL(t *testing.T) {
	svc, mr, _ := newTestService(t)

	if err := svc.Send(context.Background(), "+8801711111111", "sms", PurposeReset); err != nil {
		t.Fatalf("send: %v", err)
	}
	if !mr.Exists("RESET_+8801711111111") {
		t.Fatal("reset code stored under wrong key")
	}

	mr.FastForward(7 * time.Minute)
	if !mr.Exists("RESET_+8801711111111") {
		t.Fatal("reset code should survive past the registration TTL")
	}
	mr.FastForward(4 * time.Minute)
	if mr.Exists("RESET_+8801711111111") {
		t.Fatal("reset code should expire after ten minutes")
	}
}

func TestParsePurpose(t *testing.T) {
	if _, err := ParsePurpose("REGISTER"); err != nil {
		t.Fatalf("purpose parse should be case-insensitive: %v", err)
	}
	_, err := ParsePurpose("carrier-pigeon")
	assertCode(t, err, "INVALID_REQUEST")
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var appErr *common.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != code {
		t.Fatalf("error code = %s, want %s", appErr.Code, code)
	}
}
