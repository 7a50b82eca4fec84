package validators

import (
	"strings"

	"github.com/LindiweBraids/booking-api/internal/httperr"
)

// ValidateEmail accepts a basic local@domain.tld shape. No normalization
// beyond trimming.
func ValidateEmail(raw string) (string, error) {
	email := strings.TrimSpace(raw)

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", httperr.ErrBusiness("invalid_email")
	}

	local := email[:at]
	domain := email[at+1:]

	if strings.ContainsAny(local, " \t") ||
		strings.ContainsAny(domain, " \t") ||
		strings.Contains(domain, "@") {
		return "", httperr.ErrBusiness("invalid_email")
	}

	dot := strings.LastIndex(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return "", httperr.ErrBusiness("invalid_email")
	}

	return email, nil
}
