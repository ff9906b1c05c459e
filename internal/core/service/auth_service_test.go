package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mercatto/account-service/internal/core/domain"
	"github.com/mercatto/account-service/internal/core/ports"
)

func isValidation(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}

func TestAuthService_Register_Success(t *testing.T) {
	f := newFixture()

	profile, err := f.authSvc.Register(context.Background(), ports.RegisterInput{
		Email:     "alice@x.com",
		Password:  "pw123456",
		FirstName: "Alice",
		LastName:  "Doe",
		Address: ports.AddressInput{
			CityName:     "A",
			CountyName:   "B",
			DistrictName: "C",
			AddressText:  "D",
		},
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if len(profile.Addresses) != 1 || profile.DefaultAddress == nil {
		t.Fatalf("expected one address set as default: %+v", profile)
	}
	if profile.IsVerified {
		t.Fatalf("expected isVerified false after registration")
	}

	stored, _ := f.users.FindByID(context.Background(), profile.ID)
	if stored.PasswordHash == "pw123456" {
		t.Fatalf("password must be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw123456")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	// Registration dispatched a verification code.
	if len(f.notifier.sent) != 1 || f.notifier.sent[0].email != "alice@x.com" {
		t.Fatalf("expected verification mail to the new user, got %+v", f.notifier.sent)
	}
}

func TestAuthService_Register_MissingCredentials(t *testing.T) {
	f := newFixture()

	if _, err := f.authSvc.Register(context.Background(), ports.RegisterInput{Email: "", Password: ""}); !isValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	f := newFixture()
	registerTestUser(t, f, "bob@x.com")

	_, err := f.authSvc.Register(context.Background(), ports.RegisterInput{
		Email:    "bob@x.com",
		Password: "pw123456",
		Address:  ports.AddressInput{CityName: "A", CountyName: "B", DistrictName: "C", AddressText: "D"},
	})
	if err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newFixture()
	user := registerTestUser(t, f, "carol@x.com")

	token, profile, err := f.authSvc.Login(context.Background(), "carol@x.com", "pw123456")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if profile.ID != user.ID {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if len(profile.Addresses) != 1 || profile.DefaultAddress == nil {
		t.Fatalf("login must return the populated profile")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["user_id"] != user.ID {
		t.Fatalf("expected user_id claim %q, got %v", user.ID, claims["user_id"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := newFixture()
	registerTestUser(t, f, "dave@x.com")

	if _, _, err := f.authSvc.Login(context.Background(), "dave@x.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	f := newFixture()
	registerTestUser(t, f, "erin@x.com")

	// Unknown email surfaces the same error kind as a wrong password.
	if _, _, err := f.authSvc.Login(context.Background(), "ghost@x.com", "pw123456"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
