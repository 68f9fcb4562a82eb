package usecase

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateUniqueID(t *testing.T) {
	pattern := regexp.MustCompile(`^TK[0-9]{2}[0-9A-Z]{9}$`)
	seen := make(map[string]struct{})

	for range 100 {
		id, err := GenerateUniqueID(PrefixTask)
		require.NoError(t, err)
		assert.Regexp(t, pattern, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 100)
}

func TestGenerateToken(t *testing.T) {
	token, hash, err := GenerateToken()
	require.NoError(t, err)

	assert.Len(t, token, 43)
	assert.NotContains(t, token, "=")
	assert.Equal(t, HashToken(token), hash)
	assert.Len(t, hash, 64)

	other, _, err := GenerateToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestHashPassword(t *testing.T) {
	hash, salt, err := HashPassword("s3cret-passw0rd", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEmpty(t, salt)
	assert.NotContains(t, hash, "s3cret")

	assert.NoError(t, VerifyPassword(hash, "s3cret-passw0rd", salt))
	assert.Error(t, VerifyPassword(hash, "wrong-password", salt))
	assert.Error(t, VerifyPassword(hash, "s3cret-passw0rd", "other-salt"))

	_, otherSalt, err := HashPassword("s3cret-passw0rd", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, salt, otherSalt)
}

func TestHashPassword_LongestAllowedPassword(t *testing.T) {
	password := strings.Repeat("p", MaxPasswordLength)

	hash, salt, err := HashPassword(password, bcrypt.MinCost)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(password+salt), 72)
	assert.NoError(t, VerifyPassword(hash, password, salt))
}

func TestExtractUsernameFromEmail(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{email: "alice@example.com", expected: "alice"},
		{email: "no-at-sign", expected: "no-at-sign"},
		{email: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractUsernameFromEmail(tt.email))
		})
	}
}
