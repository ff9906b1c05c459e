package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mercatto/account-service/internal/core/domain"
)

// --- In-memory repositories shared by the service tests ---

type memUserRepo struct {
	seq   int
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.AddressIDs = append([]string(nil), u.AddressIDs...)
	return &clone
}

func (r *memUserRepo) Insert(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type memAddressRepo struct {
	seq       int
	addresses map[string]*domain.Address
}

func newMemAddressRepo() *memAddressRepo {
	return &memAddressRepo{addresses: make(map[string]*domain.Address)}
}

func (r *memAddressRepo) Insert(_ context.Context, address *domain.Address) (*domain.Address, error) {
	r.seq++
	created := *address
	created.ID = fmt.Sprintf("addr-%d", r.seq)
	stored := created
	r.addresses[created.ID] = &stored
	return &created, nil
}

func (r *memAddressRepo) FindByID(_ context.Context, id string) (*domain.Address, error) {
	a, ok := r.addresses[id]
	if !ok {
		return nil, domain.ErrAddressNotFound
	}
	found := *a
	return &found, nil
}

func (r *memAddressRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Address, error) {
	found := make([]domain.Address, 0, len(ids))
	for _, id := range ids {
		if a, ok := r.addresses[id]; ok {
			found = append(found, *a)
		}
	}
	return found, nil
}

func (r *memAddressRepo) Update(_ context.Context, address *domain.Address) (*domain.Address, error) {
	if _, ok := r.addresses[address.ID]; !ok {
		return nil, domain.ErrAddressNotFound
	}
	stored := *address
	r.addresses[address.ID] = &stored
	updated := *address
	return &updated, nil
}

func (r *memAddressRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.addresses[id]; !ok {
		return domain.ErrAddressNotFound
	}
	delete(r.addresses, id)
	return nil
}

type memVerificationRepo struct {
	seq     int
	records []*domain.Verification
}

func newMemVerificationRepo() *memVerificationRepo {
	return &memVerificationRepo{}
}

func (r *memVerificationRepo) Insert(_ context.Context, v *domain.Verification) (*domain.Verification, error) {
	r.seq++
	created := *v
	created.ID = fmt.Sprintf("verif-%d", r.seq)
	stored := created
	r.records = append(r.records, &stored)
	return &created, nil
}

func (r *memVerificationRepo) FindActive(_ context.Context, userID, code string, now time.Time) (*domain.Verification, error) {
	for _, rec := range r.records {
		if rec.UserID == userID && rec.Code == code && rec.ExpiresAt.After(now) {
			found := *rec
			return &found, nil
		}
	}
	return nil, domain.ErrCodeInvalidOrExpired
}

func (r *memVerificationRepo) Update(_ context.Context, v *domain.Verification) error {
	for _, rec := range r.records {
		if rec.ID == v.ID {
			rec.Verified = v.Verified
			return nil
		}
	}
	return domain.ErrCodeInvalidOrExpired
}

func (r *memVerificationRepo) DeleteByUserID(_ context.Context, userID string) error {
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.UserID != userID {
			kept = append(kept, rec)
		}
	}
	r.records = kept
	return nil
}

// codesFor returns the stored codes for a user, oldest first.
func (r *memVerificationRepo) codesFor(userID string) []string {
	var codes []string
	for _, rec := range r.records {
		if rec.UserID == userID {
			codes = append(codes, rec.Code)
		}
	}
	return codes
}

type sentMail struct {
	email string
	code  string
}

type stubNotifier struct {
	sent []sentMail
	err  error
}

func (n *stubNotifier) SendVerificationCode(_ context.Context, email, code string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMail{email: email, code: code})
	return nil
}

type stubRevoker struct {
	revoked map[string]time.Duration
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Duration)}
}

func (s *stubRevoker) Revoke(_ context.Context, userID string, ttl time.Duration) error {
	s.revoked[userID] = ttl
	return nil
}

func (s *stubRevoker) IsRevoked(_ context.Context, userID string) (bool, error) {
	_, ok := s.revoked[userID]
	return ok, nil
}

// fixture wires the full service stack over the in-memory stores.
type fixture struct {
	users         *memUserRepo
	addresses     *memAddressRepo
	verifications *memVerificationRepo
	notifier      *stubNotifier
	revoker       *stubRevoker

	addressSvc      *AddressService
	userSvc         *UserService
	verificationSvc *VerificationService
	authSvc         *AuthService
}

func newFixture() *fixture {
	f := &fixture{
		users:         newMemUserRepo(),
		addresses:     newMemAddressRepo(),
		verifications: newMemVerificationRepo(),
		notifier:      &stubNotifier{},
		revoker:       newStubRevoker(),
	}
	log := zerolog.Nop()
	f.addressSvc = NewAddressService(f.addresses, log)
	f.userSvc = NewUserService(f.users, f.addresses, f.addressSvc, f.revoker, log)
	f.verificationSvc = NewVerificationService(f.verifications, f.users, f.addresses, f.notifier, log)
	f.authSvc = NewAuthService(f.users, f.addresses, f.userSvc, f.verificationSvc, "secret", time.Hour, log)
	return f
}
