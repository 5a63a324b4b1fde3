package auth

// UserIdentity adapts a User into the Identity interface.
type UserIdentity struct {
	user *User
}

// NewIdentityFromUser returns an Identity adapter for the provided user.
func NewIdentityFromUser(user *User) Identity {
	if user == nil {
		return nil
	}
	return UserIdentity{user: user}
}

// ID returns the user's ID as a string.
func (u UserIdentity) ID() string {
	if u.user == nil {
		return ""
	}
	return u.user.ID.String()
}

// Email returns the user's email address.
func (u UserIdentity) Email() string {
	if u.user == nil {
		return ""
	}
	return u.user.Email
}

// IsAdmin returns the user's privilege flag.
func (u UserIdentity) IsAdmin() bool {
	if u.user == nil {
		return false
	}
	return u.user.IsAdmin
}
