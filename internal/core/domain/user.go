package domain

import "time"

// User is the account aggregate. Address ownership is tracked only here:
// AddressIDs is the owned set and DefaultAddressID, when non-empty, must be a
// member of it.
type User struct {
	ID               string
	Email            string
	PasswordHash     string
	FirstName        string
	LastName         string
	IsVerified       bool
	IsSeller         bool
	AddressIDs       []string
	DefaultAddressID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OwnsAddress reports whether addressID is in the user's owned set.
func (u *User) OwnsAddress(addressID string) bool {
	for _, id := range u.AddressIDs {
		if id == addressID {
			return true
		}
	}
	return false
}

// RemoveAddress drops addressID from the owned set and keeps the default
// reference consistent: when the removed address was the default, the first
// remaining address becomes the new default, or the default is cleared when
// none remain. Returns false when the address is not owned.
func (u *User) RemoveAddress(addressID string) bool {
	idx := -1
	for i, id := range u.AddressIDs {
		if id == addressID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	u.AddressIDs = append(u.AddressIDs[:idx:idx], u.AddressIDs[idx+1:]...)

	if u.DefaultAddressID == addressID {
		if len(u.AddressIDs) > 0 {
			u.DefaultAddressID = u.AddressIDs[0]
		} else {
			u.DefaultAddressID = ""
		}
	}
	return true
}

// AppendAddress adds addressID to the owned set. The first address a user
// ever gets automatically becomes the default.
func (u *User) AppendAddress(addressID string) {
	u.AddressIDs = append(u.AddressIDs, addressID)
	if len(u.AddressIDs) == 1 {
		u.DefaultAddressID = addressID
	}
}
