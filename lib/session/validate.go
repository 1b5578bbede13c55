// Copyright 2026 The Velvet Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"regexp"
	"strings"

	"github.com/velvet-club/velvet/lib/api"
)

const minPasswordLength = 6

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidatePassword checks the password locally before any network
// call. The message matches what the service itself would return, so
// the user sees the same text either way.
func ValidatePassword(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return api.ValidationError("Пароль должен содержать минимум %d символов.", minPasswordLength)
	}
	return nil
}

// ValidatePasswordPair checks a password and its confirmation.
func ValidatePasswordPair(password, confirmation string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if password != confirmation {
		return api.ValidationError("Пароли не совпадают")
	}
	return nil
}

// ValidateUsername checks the login name shape locally.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return api.ValidationError("Имя пользователя должно содержать от 3 до 50 символов (буквы, цифры, подчеркивание)")
	}
	return nil
}

// ValidateEmail checks the email address shape locally.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return api.ValidationError("Введите корректный email")
	}
	return nil
}
