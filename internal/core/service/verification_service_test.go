package service

import (
	"context"
	"testing"
	"time"

	"github.com/mercatto/account-service/internal/core/domain"
	"github.com/mercatto/account-service/internal/core/ports"
)

func registerTestUser(t *testing.T, f *fixture, email string) *ports.UserProfile {
	t.Helper()
	profile, err := f.authSvc.Register(context.Background(), ports.RegisterInput{
		Email:     email,
		Password:  "pw123456",
		FirstName: "Test",
		LastName:  "User",
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
	return profile
}

func TestVerificationService_Issue(t *testing.T) {
	f := newFixture()
	user := registerTestUser(t, f, "alice@example.com")

	// Registration already issued one code.
	if len(f.notifier.sent) != 1 {
		t.Fatalf("expected 1 mail after registration, got %d", len(f.notifier.sent))
	}

	issued, err := f.verificationSvc.Issue(context.Background(), user.ID, user.Email)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if issued.UserID != user.ID || issued.Email != user.Email {
		t.Fatalf("unexpected metadata: %+v", issued)
	}

	wantExpiry := time.Now().UTC().Add(domain.VerificationTTL)
	if diff := issued.ExpiresAt.Sub(wantExpiry); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("expected expiry about 1h out, got %v", issued.ExpiresAt)
	}

	codes := f.verifications.codesFor(user.ID)
	if len(codes) != 1 {
		t.Fatalf("expected prior records superseded, have %d", len(codes))
	}
	code := codes[0]
	if len(code) != 6 || code[0] == '0' {
		t.Fatalf("expected 6-digit code in 100000-999999, got %q", code)
	}

	// The code travels only through the notifier.
	last := f.notifier.sent[len(f.notifier.sent)-1]
	if last.email != user.Email || last.code != code {
		t.Fatalf("mail mismatch: %+v vs stored code %q", last, code)
	}
}

func TestVerificationService_Issue_MailFailureDoesNotFail(t *testing.T) {
	f := newFixture()
	user := registerTestUser(t, f, "bob@example.com")

	f.notifier.err = context.DeadlineExceeded
	if _, err := f.verificationSvc.Issue(context.Background(), user.ID, user.Email); err != nil {
		t.Fatalf("issue should survive a mail failure, got %v", err)
	}
}

func TestVerificationService_Consume_Success(t *testing.T) {
	f := newFixture()
	user := registerTestUser(t, f, "carol@example.com")

	code := f.verifications.codesFor(user.ID)[0]
	profile, err := f.verificationSvc.Consume(context.Background(), user.ID, code)
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if !profile.IsVerified {
		t.Fatalf("expected profile verified")
	}

	stored, _ := f.users.FindByID(context.Background(), user.ID)
	if !stored.IsVerified {
		t.Fatalf("expected user flag persisted")
	}
}

func TestVerificationService_Consume_WrongCode(t *testing.T) {
	f := newFixture()
	user := registerTestUser(t, f, "dave@example.com")

	if _, err := f.verificationSvc.Consume(context.Background(), user.ID, "000000"); err != domain.ErrCodeInvalidOrExpired {
		t.Fatalf("expected ErrCodeInvalidOrExpired, got %v", err)
	}

	stored, _ := f.users.FindByID(context.Background(), user.ID)
	if stored.IsVerified {
		t.Fatalf("user must stay unverified after a failed match")
	}
}

func TestVerificationService_Consume_Expired(t *testing.T) {
	f := newFixture()
	user := registerTestUser(t, f, "erin@example.com")
	code := f.verifications.codesFor(user.ID)[0]

	f.verificationSvc.now = func() time.Time {
		return time.Now().UTC().Add(domain.VerificationTTL + time.Minute)
	}

	if _, err := f.verificationSvc.Consume(context.Background(), user.ID, code); err != domain.ErrCodeInvalidOrExpired {
		t.Fatalf("expected ErrCodeInvalidOrExpired for expired code, got %v", err)
	}
}

func TestVerificationService_Issue_InvalidatesPriorCode(t *testing.T) {
	f := newFixture()
	user := registerTestUser(t, f, "frank@example.com")
	oldCode := f.verifications.codesFor(user.ID)[0]

	if _, err := f.verificationSvc.Issue(context.Background(), user.ID, user.Email); err != nil {
		t.Fatalf("re-issue failed: %v", err)
	}

	newCode := f.verifications.codesFor(user.ID)[0]
	if oldCode != newCode {
		if _, err := f.verificationSvc.Consume(context.Background(), user.ID, oldCode); err != domain.ErrCodeInvalidOrExpired {
			t.Fatalf("expected stale code rejected, got %v", err)
		}
	}

	if _, err := f.verificationSvc.Consume(context.Background(), user.ID, newCode); err != nil {
		t.Fatalf("fresh code should match: %v", err)
	}
}

func TestVerificationService_Consume_VerifiedRecordStillMatches(t *testing.T) {
	f := newFixture()
	user := registerTestUser(t, f, "grace@example.com")
	code := f.verifications.codesFor(user.ID)[0]

	if _, err := f.verificationSvc.Consume(context.Background(), user.ID, code); err != nil {
		t.Fatalf("first consume failed: %v", err)
	}
	// Match is by value and expiry only; the verified flag does not block a
	// re-match while the record is unexpired.
	if _, err := f.verificationSvc.Consume(context.Background(), user.ID, code); err != nil {
		t.Fatalf("second consume of unexpired record failed: %v", err)
	}
}

func TestVerificationService_Resend(t *testing.T) {
	f := newFixture()
	user := registerTestUser(t, f, "heidi@example.com")

	issued, err := f.verificationSvc.Resend(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("resend failed: %v", err)
	}
	if issued.Email != user.Email {
		t.Fatalf("resend must target the stored email, got %q", issued.Email)
	}
	if len(f.notifier.sent) != 2 {
		t.Fatalf("expected 2 mails, got %d", len(f.notifier.sent))
	}
}

func TestVerificationService_Resend_AlreadyVerified(t *testing.T) {
	f := newFixture()
	user := registerTestUser(t, f, "ivan@example.com")
	code := f.verifications.codesFor(user.ID)[0]

	if _, err := f.verificationSvc.Consume(context.Background(), user.ID, code); err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	if _, err := f.verificationSvc.Resend(context.Background(), user.ID); err != domain.ErrAlreadyVerified {
		t.Fatalf("expected ErrAlreadyVerified, got %v", err)
	}
}

func TestVerificationService_Resend_UnknownUser(t *testing.T) {
	f := newFixture()
	if _, err := f.verificationSvc.Resend(context.Background(), "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGenerateCode_Range(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := generateCode()
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		if code < "100000" || code > "999999" {
			t.Fatalf("code out of range: %q", code)
		}
	}
}
