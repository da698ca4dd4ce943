package security

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ma314smith/signedxml"
)

var (
	// ErrPlaceholderNotFound is returned when the placeholder pattern
	// does not match the serialized payload.
	ErrPlaceholderNotFound = errors.New("placeholder not found in payload")
	// ErrBadSignature is returned when a fragment's XML-DSig references
	// do not validate.
	ErrBadSignature = errors.New("signed fragment does not validate")
)

// InjectSigned replaces the first match of the placeholder pattern in the
// serialized payload with the signed fragment, verbatim. Newlines are
// stripped from the result: the fiscal servers reject line breaks inside
// signed content.
func InjectSigned(payload []byte, placeholderPattern string, signed string) ([]byte, error) {
	exp, err := regexp.Compile(placeholderPattern)
	if err != nil {
		return nil, fmt.Errorf("compiling placeholder pattern: %w", err)
	}

	loc := exp.FindIndex(payload)
	if loc == nil {
		return nil, fmt.Errorf("%w: pattern %q", ErrPlaceholderNotFound, placeholderPattern)
	}

	var b strings.Builder
	b.Write(payload[:loc[0]])
	b.WriteString(signed)
	b.Write(payload[loc[1]:])

	out := strings.NewReplacer("\n", "", "\r", "").Replace(b.String())
	return []byte(out), nil
}

// VerifyFragment validates the XML-DSig references of a signed fragment.
// Fiscal signatures reference the signed element through its Id attribute.
func VerifyFragment(fragment []byte) error {
	validator, err := signedxml.NewValidator(string(fragment))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	validator.SetReferenceIDAttribute("Id")

	if _, err := validator.ValidateReferences(); err != nil {
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	return nil
}
