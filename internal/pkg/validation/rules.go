package validation

import (
	"regexp"
	"time"
)

// Validation rule patterns
var (
	// Name fields: Latin and Cyrillic letters, spaces and hyphens
	NamePattern = `^[A-Za-zА-Яа-яЁё\s-]+$`

	// Login: 3-50 characters of letters, digits, underscore, hyphen
	LoginPattern = `^[A-Za-z0-9_-]{3,50}$`

	// Email validation pattern
	EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

	// Earliest accepted admission year
	AdmissionYearMin = 2000
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Name  *regexp.Regexp
	Login *regexp.Regexp
	Email *regexp.Regexp
}{
	Name:  regexp.MustCompile(NamePattern),
	Login: regexp.MustCompile(LoginPattern),
	Email: regexp.MustCompile(EmailPattern),
}

// IsValidName reports whether a name field contains only letters, spaces
// and hyphens. Empty values are rejected; optional name fields should be
// checked only when present.
func IsValidName(name string) bool {
	return name != "" && CompiledPatterns.Name.MatchString(name)
}

// IsValidLogin reports whether a login satisfies the login pattern
func IsValidLogin(login string) bool {
	return CompiledPatterns.Login.MatchString(login)
}

// IsValidEmail reports whether an email has a plausible shape
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// IsValidAdmissionYear reports whether the year falls in [2000, current year]
func IsValidAdmissionYear(year int) bool {
	return year >= AdmissionYearMin && year <= time.Now().Year()
}

// IsValidID reports whether an identifier is well-formed (positive)
func IsValidID(id int64) bool {
	return id > 0
}
