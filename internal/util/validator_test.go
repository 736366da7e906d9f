package util

import (
	"encoding/json"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	testCases := map[string]string{
		"Alice@X.com":      "alice@x.com",
		"  bob@y.org  ":    "bob@y.org",
		"already@lower.io": "already@lower.io",
	}

	for in, want := range testCases {
		if got := NormalizeEmail(in); got != want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateEmail_Valid(t *testing.T) {
	testCases := []string{
		"alice@x.com",
		"a.b+c@sub.domain.org",
	}

	for _, email := range testCases {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) error = %v, want nil", email, err)
		}
	}
}

func TestValidateEmail_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"no-at-sign",
		"no-domain@",
		"@no-local.com",
		"no-tld@host",
		"spaces in@x.com",
	}

	for _, email := range testCases {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) error = nil, want error", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("1234567"); err == nil {
		t.Error("ValidatePassword(7 chars) error = nil, want error")
	}
	if err := ValidatePassword("12345678"); err != nil {
		t.Errorf("ValidatePassword(8 chars) error = %v, want nil", err)
	}
}

func TestAmountToCents(t *testing.T) {
	testCases := []struct {
		in   string
		want int64
	}{
		{"42.50", 4250},
		{"42.5", 4250},
		{"0.01", 1},
		{"500", 50000},
		{"19.999", 2000}, // rounded half-up at two decimals
	}

	for _, tc := range testCases {
		got, err := AmountToCents(json.Number(tc.in))
		if err != nil {
			t.Errorf("AmountToCents(%q) error = %v, want nil", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("AmountToCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestAmountToCents_Invalid(t *testing.T) {
	testCases := []string{"0", "-1", "-0.01", "abc", ""}

	for _, in := range testCases {
		if _, err := AmountToCents(json.Number(in)); err == nil {
			t.Errorf("AmountToCents(%q) error = nil, want error", in)
		}
	}
}

func TestCentsToAmount(t *testing.T) {
	if got := CentsToAmount(4250); got != 42.5 {
		t.Errorf("CentsToAmount(4250) = %v, want 42.5", got)
	}
	if got := CentsToAmount(0); got != 0 {
		t.Errorf("CentsToAmount(0) = %v, want 0", got)
	}
}

func TestParseDate_Valid(t *testing.T) {
	testCases := []string{"2024-01-05", "2024-12-31"}

	for _, in := range testCases {
		d, err := ParseDate(in)
		if err != nil {
			t.Errorf("ParseDate(%q) error = %v, want nil", in, err)
			continue
		}
		if d.Format(DateLayout) != in {
			t.Errorf("ParseDate(%q) round-trip = %q", in, d.Format(DateLayout))
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	testCases := []string{"", "05-01-2024", "2024-13-01", "2024-01-32", "not a date"}

	for _, in := range testCases {
		if _, err := ParseDate(in); err == nil {
			t.Errorf("ParseDate(%q) error = nil, want error", in)
		}
	}
}
