package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"

	"github.com/mercatto/account-service/internal/core/domain"
	"github.com/mercatto/account-service/internal/core/ports"
)

// VerificationService owns creation, expiry and consumption of email
// verification codes.
type VerificationService struct {
	verifications ports.VerificationRepository
	users         ports.UserRepository
	addresses     ports.AddressRepository
	notifier      ports.Notifier
	logger        zerolog.Logger
	now           func() time.Time
}

func NewVerificationService(
	verifications ports.VerificationRepository,
	users ports.UserRepository,
	addresses ports.AddressRepository,
	notifier ports.Notifier,
	logger zerolog.Logger,
) *VerificationService {
	return &VerificationService{
		verifications: verifications,
		users:         users,
		addresses:     addresses,
		notifier:      notifier,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Issue supersedes prior codes for the user, persists a fresh record expiring
// in one hour and dispatches the code by mail. A mail failure is logged but
// does not fail the operation; the user can always request a resend.
func (s *VerificationService) Issue(ctx context.Context, userID, email string) (*ports.VerificationIssued, error) {
	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("generate verification code: %w", err)
	}

	if err := s.verifications.DeleteByUserID(ctx, userID); err != nil {
		return nil, fmt.Errorf("supersede verifications: %w", err)
	}

	now := s.now()
	record := &domain.Verification{
		UserID:    userID,
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(domain.VerificationTTL),
		CreatedAt: now,
	}

	created, err := s.verifications.Insert(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("insert verification: %w", err)
	}

	if err := s.notifier.SendVerificationCode(ctx, email, code); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("verification mail dispatch failed")
	}

	s.logger.Info().Str("user_id", userID).Time("expires_at", created.ExpiresAt).Msg("verification code issued")

	return &ports.VerificationIssued{
		ID:        created.ID,
		UserID:    created.UserID,
		Email:     created.Email,
		ExpiresAt: created.ExpiresAt,
	}, nil
}

// Consume matches an unexpired (userID, code) pair, marks the record and the
// user verified, and returns the updated profile. The verified flag on the
// record does not block a re-match while it is unexpired; supersession on a
// new issue is what really invalidates codes.
func (s *VerificationService) Consume(ctx context.Context, userID, code string) (*ports.UserProfile, error) {
	record, err := s.verifications.FindActive(ctx, userID, code, s.now())
	if err != nil {
		return nil, err
	}

	record.Verified = true
	if err := s.verifications.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("mark verification: %w", err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.IsVerified = true
	user.UpdatedAt = s.now()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("mark user verified: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Msg("email verified")

	return populateUser(ctx, s.addresses, updated)
}

// Resend re-issues a code for the user's stored email address.
func (s *VerificationService) Resend(ctx context.Context, userID string) (*ports.VerificationIssued, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsVerified {
		return nil, domain.ErrAlreadyVerified
	}
	return s.Issue(ctx, userID, user.Email)
}

// generateCode draws a 6-digit code uniformly from 100000–999999.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
