package kernel

import (
	"fmt"

	"callcenter/internal/pkg/errs"
)

// DigitCodeLength is the fixed width of member and order numbers.
const DigitCodeLength = 8

// DigitCode is a fixed-length, all-numeric identifier typed in by the agent
// over the phone: member numbers and order numbers share this format.
//
// The zero value is invalid. A DigitCode always holds exactly
// DigitCodeLength ASCII digits; leading zeros are preserved because the
// value is a code, not a number.
//
// Example:
//
//	number, err := kernel.NewDigitCode("member number", "12345678")
//	if err != nil {
//	    // malformed input, reported as VALIDATION_ERROR
//	}
type DigitCode struct {
	value string
}

// NewDigitCode validates raw against the fixed-length numeric format.
// paramName names the field in the returned error.
func NewDigitCode(paramName, raw string) (DigitCode, error) {
	if raw == "" {
		return DigitCode{}, errs.NewValueIsRequiredError(paramName)
	}

	if len(raw) != DigitCodeLength {
		return DigitCode{}, errs.NewValueIsInvalidErrorWithCause(
			paramName,
			fmt.Errorf("must be %d digits, got %d characters", DigitCodeLength, len(raw)),
		)
	}

	for _, r := range raw {
		if r < '0' || r > '9' {
			return DigitCode{}, errs.NewValueIsInvalidErrorWithCause(
				paramName,
				fmt.Errorf("must contain digits only, got %q", r),
			)
		}
	}

	return DigitCode{value: raw}, nil
}

// String returns the digits as entered.
func (c DigitCode) String() string {
	return c.value
}

// HasLeadingZero reports whether the code starts with '0'.
func (c DigitCode) HasLeadingZero() bool {
	return c.value != "" && c.value[0] == '0'
}

// IsEqual reports whether both codes hold the same digits.
func (c DigitCode) IsEqual(other DigitCode) bool {
	return c.value == other.value
}

// Validate rejects the zero value.
func (c DigitCode) Validate() error {
	if c.value == "" {
		return errs.NewValueIsRequiredError("digit code")
	}
	return nil
}
