package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mercatto/account-service/internal/core/domain"
	"github.com/mercatto/account-service/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users        ports.UserRepository
	addresses    ports.AddressRepository
	userSvc      ports.UserService
	verification ports.VerificationService
	jwtSecret    string
	tokenTTL     time.Duration
	logger       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	addresses ports.AddressRepository,
	userSvc ports.UserService,
	verification ports.VerificationService,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * 24 * time.Hour
	}
	return &AuthService{
		users:        users,
		addresses:    addresses,
		userSvc:      userSvc,
		verification: verification,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
		logger:       logger,
	}
}

// Register creates the account (with its initial address) and issues the
// first verification code. There is no compensating transaction: a user that
// was persisted stays persisted even if a later step degrades.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.UserProfile, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.NewValidationError("email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profile, err := s.userSvc.Create(ctx, ports.CreateUserInput{
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Address:      input.Address,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.verification.Issue(ctx, profile.ID, profile.Email); err != nil {
		s.logger.Warn().Err(err).Str("user_id", profile.ID).Msg("initial verification issue failed")
	}

	return profile, nil
}

// Login authenticates by email and password. An unknown email and a wrong
// password surface the same error so neither check leaks.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *ports.UserProfile, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	profile, err := populateUser(ctx, s.addresses, user)
	if err != nil {
		return "", nil, err
	}

	return token, profile, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
