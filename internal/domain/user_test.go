package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "valid credentials",
			username: "abc",
			password: "secret",
			wantErr:  nil,
		},
		{
			name:     "username at minimum length",
			username: "abc",
			password: "12345",
			wantErr:  nil,
		},
		{
			name:     "username too short",
			username: "ab",
			password: "secret",
			wantErr:  ErrUsernameTooShort,
		},
		{
			name:     "empty username",
			username: "",
			password: "secret",
			wantErr:  ErrUsernameTooShort,
		},
		{
			name:     "password too short",
			username: "abc",
			password: "1234",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "empty password",
			username: "abc",
			password: "",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "both invalid reports username first",
			username: "a",
			password: "1",
			wantErr:  ErrUsernameTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(tt.username, tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestUserPublic(t *testing.T) {
	t.Parallel()

	user := &User{
		ID:             42,
		Username:       "abc",
		HashedPassword: "$2a$10$notarealhash",
	}

	public := user.Public()

	require.NotNil(t, public)
	assert.Equal(t, int64(42), public.ID)
	assert.Equal(t, "abc", public.Username)
	assert.Empty(t, public.HashedPassword)

	// The original user is untouched.
	assert.Equal(t, "$2a$10$notarealhash", user.HashedPassword)
}
