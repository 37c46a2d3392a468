package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHash = "$2a$10$abcdefghijklmnopqrstuuJ0nVQ3cQ1ZP7i5Qd0kqUO1qQHjJm4i"

func TestNewUser(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		user, err := NewUser("a@b.com", testHash, "", "", "")

		require.NoError(t, err)
		assert.True(t, IsValidID(user.ID))
		assert.Equal(t, DefaultUserName, user.Name)
		assert.Equal(t, DefaultUserAbout, user.About)
		assert.Equal(t, DefaultUserAvatar, user.Avatar)
		assert.Equal(t, testHash, user.HashedPassword)
	})

	t.Run("keeps provided profile", func(t *testing.T) {
		user, err := NewUser("a@b.com", testHash, "Ann", "Sailor", "https://example.com/ann.png")

		require.NoError(t, err)
		assert.Equal(t, "Ann", user.Name)
		assert.Equal(t, "Sailor", user.About)
		assert.Equal(t, "https://example.com/ann.png", user.Avatar)
	})

	t.Run("normalizes email", func(t *testing.T) {
		user, err := NewUser("  Ann@Example.COM ", testHash, "", "", "")

		require.NoError(t, err)
		assert.Equal(t, "ann@example.com", user.Email)
	})

	tests := []struct {
		name   string
		email  string
		hash   string
		uname  string
		about  string
		avatar string
		field  string
	}{
		{"invalid email", "not-an-email", testHash, "", "", "", "email"},
		{"missing hash", "a@b.com", "", "", "", "", "password"},
		{"name too short", "a@b.com", testHash, "A", "", "", "name"},
		{"name too long", "a@b.com", testHash, strings.Repeat("n", 31), "", "", "name"},
		{"about too short", "a@b.com", testHash, "", "x", "", "about"},
		{"avatar without scheme", "a@b.com", testHash, "", "", "example.com/a.png", "avatar"},
		{"avatar with ftp scheme", "a@b.com", testHash, "", "", "ftp://example.com/a.png", "avatar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.email, tt.hash, tt.uname, tt.about, tt.avatar)

			assert.Nil(t, user)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestValidateProfileCountsRunes(t *testing.T) {
	// 30 Cyrillic letters are 60 bytes but still within the limit.
	assert.NoError(t, ValidateProfile(strings.Repeat("ж", 30), "Исследователь"))
	assert.Error(t, ValidateProfile(strings.Repeat("ж", 31), "Исследователь"))
}

func TestUserJSONHidesPassword(t *testing.T) {
	user, err := NewUser("a@b.com", testHash, "Ann", "", "")
	require.NoError(t, err)

	data, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "password")
	assert.NotContains(t, string(data), testHash)
	assert.Contains(t, string(data), `"_id":"`+user.ID+`"`)
}
