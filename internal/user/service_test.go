package user

import (
	"context"
	"errors"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
)

type stubQueries struct {
	dbgen.Querier

	created  []dbgen.CreateUserParams
	existing map[string]bool
	address  *dbgen.Address
	upserted []dbgen.UpsertAddressParams
}

func (s *stubQueries) CreateUser(_ context.Context, arg dbgen.CreateUserParams) (dbgen.User, error) {
	if s.existing[arg.PhoneNumber] {
		return dbgen.User{}, &pgconn.PgError{Code: "23505"}
	}
	s.created = append(s.created, arg)
	return dbgen.User{
		Name:         arg.Name,
		PhoneNumber:  arg.PhoneNumber,
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		Role:         arg.Role,
	}, nil
}

func (s *stubQueries) GetAddressByUser(_ context.Context, _ pgtype.UUID) (dbgen.Address, error) {
	if s.address == nil {
		return dbgen.Address{}, pgx.ErrNoRows
	}
	return *s.address, nil
}

func (s *stubQueries) UpsertAddress(_ context.Context, arg dbgen.UpsertAddressParams) (dbgen.Address, error) {
	s.upserted = append(s.upserted, arg)
	return dbgen.Address{
		UserID:     arg.UserID,
		Address:    arg.Address,
		Area:       arg.Area,
		City:       arg.City,
		PostalCode: arg.PostalCode,
	}, nil
}

type stubVerifier struct {
	verified map[string]bool
}

func (v stubVerifier) IsVerified(_ context.Context, phone string) (bool, error) {
	return v.verified[phone], nil
}

func TestRegisterRequiresVerifiedPhone(t *testing.T) {
	queries := &stubQueries{}
	svc := &Service{Q: queries, Verifier: stubVerifier{verified: map[string]bool{}}}

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:        "Nadia",
		PhoneNumber: "+8801711111111",
		Password:    "long-enough",
	})
	assertCode(t, err, "INVALID_REQUEST")
	if len(queries.created) != 0 {
		t.Fatal("unverified phone must not create an account")
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	queries := &stubQueries{}
	svc := &Service{Q: queries, Verifier: stubVerifier{verified: map[string]bool{"+8801711111111": true}}}

	profile, err := svc.Register(context.Background(), RegisterInput{
		Name:        "Nadia",
		PhoneNumber: "+8801711111111",
		Email:       "nadia@example.com",
		Password:    "long-enough",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if profile.Role != "USER" {
		t.Fatalf("role = %q, want USER", profile.Role)
	}
	if len(queries.created) != 1 {
		t.Fatalf("created = %d, want 1", len(queries.created))
	}
	stored := queries.created[0].PasswordHash
	if stored == "long-enough" {
		t.Fatal("password must not be stored in clear text")
	}
	match, err := argon2id.ComparePasswordAndHash("long-enough", stored)
	if err != nil || !match {
		t.Fatalf("stored hash does not match password (match=%v err=%v)", match, err)
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	queries := &stubQueries{existing: map[string]bool{"+8801711111111": true}}
	svc := &Service{Q: queries, Verifier: stubVerifier{verified: map[string]bool{"+8801711111111": true}}}

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:        "Nadia",
		PhoneNumber: "+8801711111111",
		Password:    "long-enough",
	})
	assertCode(t, err, "CONFLICT")
}

func TestRegisterShortPassword(t *testing.T) {
	svc := &Service{Q: &stubQueries{}, Verifier: stubVerifier{verified: map[string]bool{"+8801711111111": true}}}

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:        "Nadia",
		PhoneNumber: "+8801711111111",
		Password:    "short",
	})
	assertCode(t, err, "INVALID_REQUEST")
}

func TestSaveAddress(t *testing.T) {
	queries := &stubQueries{}
	svc := &Service{Q: queries}

	saved, err := svc.SaveAddress(context.Background(), "6f1c8f2e-9f6c-4a6e-bb6a-0c7f8f9a1b2c", AddressInput{
		Address:    "House 7, Road 3",
		Area:       "Banani",
		City:       "Dhaka",
		PostalCode: "1213",
	})
	if err != nil {
		t.Fatalf("save address: %v", err)
	}
	if saved.City != "Dhaka" {
		t.Fatalf("city = %q, want Dhaka", saved.City)
	}
	if len(queries.upserted) != 1 {
		t.Fatalf("upserts = %d, want 1", len(queries.upserted))
	}
}

func TestSaveAddressRequiresLine(t *testing.T) {
	svc := &Service{Q: &stubQueries{}}

	_, err := svc.SaveAddress(context.Background(), "6f1c8f2e-9f6c-4a6e-bb6a-0c7f8f9a1b2c", AddressInput{City: "Dhaka"})
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
