package ports

import "context"

// RegisterInput carries registration data: account fields plus the initial
// address.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Address   AddressInput
}

// AuthService defines registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*UserProfile, error)
	// Login returns a signed bearer token and the populated profile. Both an
	// unknown email and a wrong password fail with the same error kind.
	Login(ctx context.Context, email, password string) (string, *UserProfile, error)
}
