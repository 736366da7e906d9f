package util

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used on the wire.
const DateLayout = "2006-01-02"

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 8

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail lowercases and trims an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks basic address shape.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword enforces the minimum length.
func ValidatePassword(pwd string) error {
	if len(pwd) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	return nil
}

// AmountToCents converts a decimal JSON amount to cents, rounding half-up
// at two decimals. Zero and negative amounts are rejected.
func AmountToCents(n json.Number) (int64, error) {
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", n.String())
	}
	cents := int64(math.Round(f * 100))
	if cents <= 0 {
		return 0, fmt.Errorf("amount must be positive, got %s", n.String())
	}
	return cents, nil
}

// CentsToAmount renders cents back as the decimal number used on the wire.
func CentsToAmount(cents int64) float64 {
	return float64(cents) / 100
}

// ParseDate validates a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	return t, nil
}
