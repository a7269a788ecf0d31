package credentials

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLogin(t *testing.T) {
	pattern := regexp.MustCompile(`^student_[0-9a-f]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		login, err := GenerateLogin("student")
		require.NoError(t, err)
		assert.Regexp(t, pattern, login)
		seen[login] = true
	}
	// 50 draws from a 24-bit space colliding would be remarkable
	assert.Greater(t, len(seen), 45)
}

func TestGeneratePassword(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Za-z0-9]{12}$`)

	for i := 0; i < 20; i++ {
		password, err := GeneratePassword()
		require.NoError(t, err)
		assert.Regexp(t, pattern, password)
	}

	first, err := GeneratePassword()
	require.NoError(t, err)
	second, err := GeneratePassword()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
