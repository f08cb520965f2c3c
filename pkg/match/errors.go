package match

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic checks via errors.Is().
var (
	// ErrConfig is wrapped by every ConfigError.
	ErrConfig = errors.New("invalid match configuration")

	ErrMissingExtension  = errors.New("no extension found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrLengthMismatch    = errors.New("length mismatch")
	ErrEmptyEntry        = errors.New("empty strings or NaN entries")
	ErrInvalidValue      = errors.New("invalid value")
)

// ConfigError reports a rejected configuration field.
type ConfigError struct {
	Field string // option that failed validation, e.g. "suffixes"
	Msg   string
	Err   error // one of the sentinels above
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConfig}
	}
	return []error{ErrConfig, e.Err}
}

func configErrorf(field string, kind error, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Msg: fmt.Sprintf(format, args...), Err: kind}
}
