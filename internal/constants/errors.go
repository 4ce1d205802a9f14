package constants

import "errors"

// Configuration errors.
var (
	ErrNoBaseURL          = errors.New("no base URL configured, use --base-url or 'baser config set base_url <url>'")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrTokenCannotBeSet   = errors.New("access_token cannot be set via config command, use 'baser login'")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrInvalidFieldFormat = errors.New("invalid field format, expected key=value")
	ErrUnsupportedFormat  = errors.New("unsupported output format")
)
