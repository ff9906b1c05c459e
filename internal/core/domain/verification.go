package domain

import "time"

// VerificationTTL is how long an issued code stays valid.
const VerificationTTL = time.Hour

// Verification links a user and email to a one-time 6-digit code. A record is
// matchable while the code and user match and ExpiresAt is in the future;
// issuing a new code deletes any prior records for the user.
type Verification struct {
	ID        string
	UserID    string
	Email     string
	Code      string
	ExpiresAt time.Time
	Verified  bool
	CreatedAt time.Time
}

// Expired reports whether the record can no longer be matched at now.
func (v *Verification) Expired(now time.Time) bool {
	return !v.ExpiresAt.After(now)
}
