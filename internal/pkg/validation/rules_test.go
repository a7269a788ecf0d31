package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidName(t *testing.T) {
	valid := []string{"Anna", "Мария", "Anne-Marie", "Пётр", "De La Cruz"}
	for _, name := range valid {
		assert.True(t, IsValidName(name), name)
	}

	invalid := []string{"", "Anna1", "O'Brien", "name@", "ج"}
	for _, name := range invalid {
		assert.False(t, IsValidName(name), name)
	}
}

func TestIsValidLogin(t *testing.T) {
	valid := []string{"abc", "student_a1b2c3", "user-name", "A_B-3"}
	for _, login := range valid {
		assert.True(t, IsValidLogin(login), login)
	}

	invalid := []string{"", "ab", "has space", "почта", "a!b", string(make([]byte, 51))}
	for _, login := range invalid {
		assert.False(t, IsValidLogin(login), login)
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.org"}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{"", "plain", "a@b", "a b@c.d", "@no.user"}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidAdmissionYear(t *testing.T) {
	current := time.Now().Year()

	assert.True(t, IsValidAdmissionYear(2000))
	assert.True(t, IsValidAdmissionYear(current))
	assert.False(t, IsValidAdmissionYear(1999))
	assert.False(t, IsValidAdmissionYear(current+1))
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID(1))
	assert.False(t, IsValidID(0))
	assert.False(t, IsValidID(-5))
}
