package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
)

const testUserID = "6f1c8f2e-9f6c-4a6e-bb6a-0c7f8f9a1b2c"

type stubQueries struct {
	dbgen.Querier

	user            dbgen.User
	updatedPassword string
}

func (s *stubQueries) GetUserByPhone(_ context.Context, phone string) (dbgen.User, error) {
	if phone != s.user.PhoneNumber {
		return dbgen.User{}, pgx.ErrNoRows
	}
	return s.user, nil
}

func (s *stubQueries) GetUserByID(_ context.Context, id pgtype.UUID) (dbgen.User, error) {
	if !common.UUIDEqual(id, s.user.ID) {
		return dbgen.User{}, pgx.ErrNoRows
	}
	return s.user, nil
}

func (s *stubQueries) UpdateUserPassword(_ context.Context, arg dbgen.UpdateUserPasswordParams) error {
	s.updatedPassword = arg.PasswordHash
	return nil
}

type stubVerifier struct {
	err   error
	calls int
}

func (v *stubVerifier) VerifyReset(context.Context, string, string) error {
	v.calls++
	return v.err
}

func newTestService(t *testing.T, verifier ResetVerifier) (*Service, *stubQueries) {
	t.Helper()
	hash, err := argon2id.CreateHash("correct-horse", argon2id.DefaultParams)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	id, err := common.ToUUID(testUserID)
	if err != nil {
		t.Fatalf("parse uuid: %v", err)
	}
	queries := &stubQueries{user: dbgen.User{
		ID:           id,
		Name:         "Nadia",
		PhoneNumber:  "+8801711111111",
		PasswordHash: hash,
		Role:         dbgen.UserRoleUSER,
	}}
	svc, err := NewService(queries, verifier, Config{Secret: []byte("test-secret-key")})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, queries
}

func TestLoginIssuesTokenWithRole(t *testing.T) {
	svc, _ := newTestService(t, nil)

	result, err := svc.Login(context.Background(), "+8801711111111", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatal("expected a signed access token")
	}
	if result.User.ID != testUserID {
		t.Fatalf("user id = %q, want %q", result.User.ID, testUserID)
	}

	subject, role, err := svc.ParseAccessToken(result.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if subject != testUserID {
		t.Fatalf("subject = %q, want %q", subject, testUserID)
	}
	if role != "USER" {
		t.Fatalf("role claim = %q, want USER", role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Login(context.Background(), "+8801711111111", "wrong")
	assertCode(t, err, "INVALID_CREDENTIALS")
}

func TestLoginUnknownPhone(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.Login(context.Background(), "+8801799999999", "correct-horse")
	assertCode(t, err, "INVALID_CREDENTIALS")
}

func TestParseAccessTokenExpired(t *testing.T) {
	svc, _ := newTestService(t, nil)
	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	token, _, err := svc.signAccessToken(testUserID, "USER")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	svc.now = time.Now
	if _, _, err := svc.ParseAccessToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	svc, _ := newTestService(t, nil)
	other, _ := newTestService(t, nil)
	other.secret = []byte("a-different-secret")

	token, _, err := svc.signAccessToken(testUserID, "USER")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, _, err := other.ParseAccessToken(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, queries := newTestService(t, nil)

	err := svc.ChangePassword(context.Background(), testUserID, "wrong", "new-password-1")
	assertCode(t, err, "INVALID_CREDENTIALS")
	if queries.updatedPassword != "" {
		t.Fatal("password must not change on a failed credential check")
	}
}

func TestChangePassword(t *testing.T) {
	svc, queries := newTestService(t, nil)

	if err := svc.ChangePassword(context.Background(), testUserID, "correct-horse", "new-password-1"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if queries.updatedPassword == "" {
		t.Fatal("expected a new password hash to be stored")
	}
	match, err := argon2id.ComparePasswordAndHash("new-password-1", queries.updatedPassword)
	if err != nil || !match {
		t.Fatalf("stored hash does not match new password (match=%v err=%v)", match, err)
	}
}

func TestResetPasswordRequiresValidCode(t *testing.T) {
	verifier := &stubVerifier{err: common.InvalidRequest("invalid or expired OTP")}
	svc, queries := newTestService(t, verifier)

	err := svc.ResetPassword(context.Background(), "+8801711111111", "0000", "new-password-1")
	assertCode(t, err, "INVALID_REQUEST")
	if queries.updatedPassword != "" {
		t.Fatal("password must not change when the code is invalid")
	}
}

func TestResetPassword(t *testing.T) {
	verifier := &stubVerifier{}
	svc, queries := newTestService(t, verifier)

	if err := svc.ResetPassword(context.Background(), "+8801711111111", "1234", "new-password-1"); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if verifier.calls != 1 {
		t.Fatalf("verifier calls = %d, want 1", verifier.calls)
	}
	if queries.updatedPassword == "" {
		t.Fatal("expected a new password hash to be stored")
	}
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
