// Package credentials generates login/password pairs for admin-provisioned
// accounts. Subjects receive their credentials by email and are expected to
// change the password on first login.
package credentials

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

const passwordLength = 12

// GenerateLogin returns a login of the form "<prefix>_<6 hex chars>".
func GenerateLogin(prefix string) (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate login: %w", err)
	}
	return prefix + "_" + hex.EncodeToString(buf), nil
}

// GeneratePassword returns a random alphanumeric password of 12 characters.
func GeneratePassword() (string, error) {
	// Over-sample so enough alphanumerics remain after filtering
	buf := make([]byte, 18)
	password := make([]byte, 0, passwordLength)

	for len(password) < passwordLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		encoded := base64.StdEncoding.EncodeToString(buf)
		for i := 0; i < len(encoded) && len(password) < passwordLength; i++ {
			c := encoded[i]
			if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
				password = append(password, c)
			}
		}
	}

	return string(password), nil
}
