package domain

// Minimum credential lengths enforced at registration.
const (
	MinUsernameLen = 3
	MinPasswordLen = 5
)

// User represents a registered user of the application.
// It contains the identity projection and authentication details.
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	HashedPassword string `json:"-"` // Never expose the password hash in JSON
}

// ValidateCredentials checks the shape of a username/password pair before
// any I/O happens. It is pure and is called only from registration;
// authentication treats a wrong-shaped login as invalid credentials instead.
func ValidateCredentials(username, password string) error {
	if len(username) < MinUsernameLen {
		return ErrUsernameTooShort
	}
	if len(password) < MinPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}

// Public returns a copy of the user with the password hash stripped.
// Store results pass through this before leaving the service layer.
func (u *User) Public() *User {
	return &User{ID: u.ID, Username: u.Username}
}
