// Package validation holds the field-level rules that cannot be expressed as
// binding tags: username charset and reserved words, release year bounds and
// slug shape.
package validation

import (
	"net/mail"
	"strings"
	"time"

	"reviewhub/internal/api/apperr"
)

const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MaxNameLength     = 200
	MaxSlugLength     = 50
)

const usernameChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789.@+-_"

// Username checks charset, length and the reserved "me" alias.
func Username(value string) error {
	if value == "me" {
		return apperr.Validationf("username %q is reserved", "me")
	}
	if value == "" {
		return apperr.Validationf("username must not be empty")
	}
	if len(value) > MaxUsernameLength {
		return apperr.Validationf("username must be at most %d characters", MaxUsernameLength)
	}
	var invalid []string
	seen := make(map[rune]bool)
	for _, r := range value {
		if !strings.ContainsRune(usernameChars, r) && !seen[r] {
			seen[r] = true
			invalid = append(invalid, string(r))
		}
	}
	if len(invalid) > 0 {
		return apperr.Validationf("invalid characters in username: %s", strings.Join(invalid, " "))
	}
	return nil
}

// Email checks RFC 5322 shape and length.
func Email(value string) error {
	if len(value) > MaxEmailLength {
		return apperr.Validationf("email must be at most %d characters", MaxEmailLength)
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return apperr.Validationf("invalid email address")
	}
	return nil
}

// Year rejects release years in the future. There is no lower bound.
func Year(value int) error {
	now := time.Now().Year()
	if value > now {
		return apperr.Validationf("year %d cannot be greater than %d", value, now)
	}
	return nil
}

// Slug checks the URL-safe identifier used for categories and genres.
func Slug(value string) error {
	if value == "" {
		return apperr.Validationf("slug must not be empty")
	}
	if len(value) > MaxSlugLength {
		return apperr.Validationf("slug must be at most %d characters", MaxSlugLength)
	}
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return apperr.Validationf("slug may only contain letters, digits, hyphens and underscores")
		}
	}
	return nil
}
