package password_test

import (
	"hotelbook/shared/password"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "guest password", password: "check-in-at-3pm"},
		{name: "exactly max length", password: strings.Repeat("a", password.MaxLength)},
		{name: "empty", password: "", wantErr: password.ErrEmptyPassword},
		{name: "too long", password: strings.Repeat("a", password.MaxLength+1), wantErr: password.ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed, err := password.Hash(tt.password)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hashed)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hashed)
			assert.NoError(t, password.Verify(tt.password, hashed))
			assert.False(t, password.NeedsRehash(hashed))
		})
	}
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("same-password")
	require.NoError(t, err)

	second, err := password.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	hashed, err := password.Hash("correct-horse")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
	}{
		{name: "match", password: "correct-horse", hash: hashed},
		{name: "mismatch", password: "Correct-horse", hash: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "correct-horse", hash: "", wantErr: password.ErrInvalidPassword},
		{name: "malformed hash", password: "correct-horse", hash: "not-a-bcrypt-hash", wantErr: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNeedsRehash(t *testing.T) {
	cheap, err := bcrypt.GenerateFromPassword([]byte("legacy"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, password.NeedsRehash(string(cheap)))
	assert.True(t, password.NeedsRehash("garbage"))
}
