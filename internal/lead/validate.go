package lead

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"

	"github.com/nao1215/salesqueen/internal/model"
)

// Validation errors for the manual lead form.
var (
	// ErrBusinessNameRequired is returned when the business name is empty.
	ErrBusinessNameRequired = errors.New("business name is required")
	// ErrInvalidEmail is returned when the email cannot be parsed.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrInvalidWebsite is returned when the website is not an absolute http(s) URL.
	ErrInvalidWebsite = errors.New("website must be an absolute http or https URL")
)

// Validate checks a manually entered lead. Optional fields are only checked
// when set. All problems are reported together.
func Validate(l model.Lead) error {
	var errs []error
	if l.BusinessName == "" {
		errs = append(errs, ErrBusinessNameRequired)
	}
	if l.Email != "" {
		if _, err := mail.ParseAddress(l.Email); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidEmail, l.Email))
		}
	}
	if l.Website != "" {
		u, err := url.Parse(l.Website)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidWebsite, l.Website))
		}
	}
	return errors.Join(errs...)
}
