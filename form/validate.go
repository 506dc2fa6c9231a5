package form

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
)

var reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Reason string

const (
	ReasonRequired  Reason = "required"
	ReasonUnchecked Reason = "unchecked"
	ReasonEmail     Reason = "email"
)

type FieldError struct {
	FieldID string
	Reason  Reason
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.FieldID, e.Reason)
}

// Validate checks every required field and the shape of the email field,
// marking failing fields and clearing the marking on passing ones. It
// returns nil when the form may be submitted, otherwise a
// *multierror.Error of *FieldError.
func Validate(f *Form) error {
	var result *multierror.Error

	for _, field := range f.Fields {
		if !field.Required {
			continue
		}
		switch {
		case field.Type == TypeCheckbox && !field.Checked:
			field.MarkError()
			result = multierror.Append(result, &FieldError{field.ID, ReasonUnchecked})
		case field.Type != TypeCheckbox && strings.TrimSpace(field.Value) == "":
			field.MarkError()
			result = multierror.Append(result, &FieldError{field.ID, ReasonRequired})
		default:
			field.ClearError()
		}
	}

	if email := emailField(f); email != nil && email.Value != "" {
		if !ValidEmail(email.Value) {
			email.MarkError()
			result = multierror.Append(result, &FieldError{email.ID, ReasonEmail})
		}
	}

	return result.ErrorOrNil()
}

// ValidEmail accepts ASCII local@domain.tld addresses without whitespace.
func ValidEmail(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return reEmail.MatchString(s)
}

func emailField(f *Form) *Field {
	if field := f.Field(EmailID); field != nil {
		return field
	}
	for _, field := range f.Fields {
		if field.Type == TypeEmail {
			return field
		}
	}
	return nil
}

// FieldErrors unpacks the result of Validate.
func FieldErrors(err error) []*FieldError {
	var out []*FieldError
	merr, ok := err.(*multierror.Error)
	if !ok {
		return out
	}
	for _, e := range merr.Errors {
		if fe, ok := e.(*FieldError); ok {
			out = append(out, fe)
		}
	}
	return out
}
