package validators

import (
	"strings"

	"github.com/LindiweBraids/booking-api/internal/httperr"
)

const countryCode = "27"

// NormalizePhone reduces raw input to an E.164-style number. Local numbers
// written with the trunk prefix "0" are rewritten to the country code.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if strings.HasPrefix(digits, "0") {
		digits = countryCode + digits[1:]
	}

	if len(digits) < 11 || len(digits) > 15 {
		return "", httperr.ErrBusiness("invalid_phone")
	}

	return "+" + digits, nil
}
