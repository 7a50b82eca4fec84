package validators

import (
	"testing"

	"github.com/LindiweBraids/booking-api/internal/httperr"
)

func TestNormalizePhone_TrunkPrefix(t *testing.T) {
	got, err := NormalizePhone("0821234567")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "+27821234567" {
		t.Fatalf("expected +27821234567, got %s", got)
	}
}

func TestNormalizePhone_AlreadyInternational(t *testing.T) {
	got, err := NormalizePhone("+27821234567")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "+27821234567" {
		t.Fatalf("expected +27821234567, got %s", got)
	}
}

func TestNormalizePhone_Formatting(t *testing.T) {
	got, err := NormalizePhone("082 123-4567")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "+27821234567" {
		t.Fatalf("expected +27821234567, got %s", got)
	}
}

func TestNormalizePhone_TooShort(t *testing.T) {
	_, err := NormalizePhone("12345")
	if !httperr.IsBusiness(err, "invalid_phone") {
		t.Fatalf("expected invalid_phone, got %v", err)
	}
}

func TestNormalizePhone_TooLong(t *testing.T) {
	_, err := NormalizePhone("2712345678901234")
	if !httperr.IsBusiness(err, "invalid_phone") {
		t.Fatalf("expected invalid_phone, got %v", err)
	}
}

func TestValidateEmail_Valid(t *testing.T) {
	got, err := ValidateEmail("a@b.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "a@b.com" {
		t.Fatalf("expected a@b.com, got %s", got)
	}
}

func TestValidateEmail_Invalid(t *testing.T) {
	cases := []string{"not-an-email", "@b.com", "a@", "a@b", "a@b.", "a b@c.com", "a@b c.com"}
	for _, raw := range cases {
		if _, err := ValidateEmail(raw); !httperr.IsBusiness(err, "invalid_email") {
			t.Fatalf("expected invalid_email for %q, got %v", raw, err)
		}
	}
}
