package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/alexedwards/argon2id"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/naeemhossain01/flexfume-backend/internal/common"
	dbgen "github.com/naeemhossain01/flexfume-backend/internal/db/gen"
)

// PhoneVerifier reports whether a phone number passed OTP verification.
type PhoneVerifier interface {
	IsVerified(ctx context.Context, phone string) (bool, error)
}

// Service owns account registration and profile management.
type Service struct {
	Q        dbgen.Querier
	Verifier PhoneVerifier
}

// RegisterInput carries the fields accepted at signup.
type RegisterInput struct {
	Name        string
	PhoneNumber string
	Email       string
	Password    string
}

// Profile is the API shape of an account with its address.
type Profile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	PhoneNumber string   `json:"phoneNumber"`
	Email       string   `json:"email,omitempty"`
	Role        string   `json:"role"`
	Address     *Address `json:"address,omitempty"`
}

// Address is the API shape of a delivery address.
type Address struct {
	ID         string `json:"id"`
	Address    string `json:"address"`
	Area       string `json:"area,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// AddressInput carries the fields accepted when saving an address.
type AddressInput struct {
	Address    string
	Area       string
	City       string
	PostalCode string
}

// Register creates an account for a phone number that already passed OTP
// verification. Re-registering a phone fails with a conflict.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Profile, error) {
	if s == nil || s.Q == nil {
		return Profile{}, errors.New("user service not configured")
	}
	phone := strings.TrimSpace(input.PhoneNumber)
	if phone == "" {
		return Profile{}, common.InvalidRequest("phone number is required")
	}
	if len(input.Password) < 8 {
		return Profile{}, common.InvalidRequest("password must be at least 8 characters")
	}
	if s.Verifier != nil {
		verified, err := s.Verifier.IsVerified(ctx, phone)
		if err != nil {
			return Profile{}, fmt.Errorf("check phone verification: %w", err)
		}
		if !verified {
			return Profile{}, common.InvalidRequest("phone number is not verified")
		}
	}

	hash, err := argon2id.CreateHash(input.Password, argon2id.DefaultParams)
	if err != nil {
		return Profile{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.Q.CreateUser(ctx, dbgen.CreateUserParams{
		Name:         strings.TrimSpace(input.Name),
		PhoneNumber:  phone,
		Email:        textOrNull(input.Email),
		PasswordHash: hash,
		Role:         dbgen.UserRoleUSER,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Profile{}, common.NewAppError("CONFLICT", "phone number already registered", http.StatusConflict, err)
		}
		return Profile{}, fmt.Errorf("create user: %w", err)
	}
	return profileFromModel(created, nil), nil
}

// Get returns the profile with its address when one exists.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	if s == nil || s.Q == nil {
		return Profile{}, errors.New("user service not configured")
	}
	id, err := common.ToUUID(userID)
	if err != nil {
		return Profile{}, common.NotFound("user not found")
	}
	dbUser, err := s.Q.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, common.NotFound("user not found")
		}
		return Profile{}, fmt.Errorf("load user: %w", err)
	}

	var address *Address
	if dbAddress, err := s.Q.GetAddressByUser(ctx, dbUser.ID); err == nil {
		converted := addressFromModel(dbAddress)
		address = &converted
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return Profile{}, fmt.Errorf("load address: %w", err)
	}
	return profileFromModel(dbUser, address), nil
}

// Update changes the profile name and email.
func (s *Service) Update(ctx context.Context, userID, name, email string) (Profile, error) {
	if s == nil || s.Q == nil {
		return Profile{}, errors.New("user service not configured")
	}
	id, err := common.ToUUID(userID)
	if err != nil {
		return Profile{}, common.NotFound("user not found")
	}
	updated, err := s.Q.UpdateUserProfile(ctx, dbgen.UpdateUserProfileParams{
		ID:    id,
		Name:  strings.TrimSpace(name),
		Email: textOrNull(email),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, common.NotFound("user not found")
		}
		return Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return profileFromModel(updated, nil), nil
}

// SaveAddress creates or replaces the user's delivery address.
func (s *Service) SaveAddress(ctx context.Context, userID string, input AddressInput) (Address, error) {
	if s == nil || s.Q == nil {
		return Address{}, errors.New("user service not configured")
	}
	if strings.TrimSpace(input.Address) == "" {
		return Address{}, common.InvalidRequest("address is required")
	}
	id, err := common.ToUUID(userID)
	if err != nil {
		return Address{}, common.NotFound("user not found")
	}
	saved, err := s.Q.UpsertAddress(ctx, dbgen.UpsertAddressParams{
		UserID:     id,
		Address:    strings.TrimSpace(input.Address),
		Area:       textOrNull(input.Area),
		City:       textOrNull(input.City),
		PostalCode: textOrNull(input.PostalCode),
	})
	if err != nil {
		return Address{}, fmt.Errorf("save address: %w", err)
	}
	return addressFromModel(saved), nil
}

// List returns every account. Admin only.
func (s *Service) List(ctx context.Context) ([]Profile, error) {
	if s == nil || s.Q == nil {
		return nil, errors.New("user service not configured")
	}
	users, err := s.Q.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	profiles := make([]Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, profileFromModel(u, nil))
	}
	return profiles, nil
}

func profileFromModel(u dbgen.User, address *Address) Profile {
	p := Profile{
		ID:          common.UUIDString(u.ID),
		Name:        u.Name,
		PhoneNumber: u.PhoneNumber,
		Role:        string(u.Role),
		Address:     address,
	}
	if u.Email.Valid {
		p.Email = u.Email.String
	}
	return p
}

func addressFromModel(a dbgen.Address) Address {
	out := Address{
		ID:      common.UUIDString(a.ID),
		Address: a.Address,
	}
	if a.Area.Valid {
		out.Area = a.Area.String
	}
	if a.City.Valid {
		out.City = a.City.String
	}
	if a.PostalCode.Valid {
		out.PostalCode = a.PostalCode.String
	}
	return out
}

func textOrNull(value string) pgtype.Text {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: trimmed, Valid: true}
}
