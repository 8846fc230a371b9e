package auth

import "errors"

// Sentinel errors returned by the auth core.
var (
	// ErrInvalidToken indicates that a token failed validation for any reason:
	// malformed structure, wrong signature or expired. Callers must not be able
	// to tell these cases apart.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidCredentials indicates a failed login. Unknown username and
	// wrong password collapse into this one error to prevent enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRefreshToken indicates that a refresh token was rejected
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrBlockedDomain indicates that registration was rejected by the
	// email-domain blocklist
	ErrBlockedDomain = errors.New("email domain is blocked")

	// ErrMissingSecret indicates that no signing secret was configured.
	// This is a startup error: the process must not start without a secret.
	ErrMissingSecret = errors.New("signing secret is missing")

	// ErrUnsupportedAlgorithm indicates a signing algorithm outside the
	// HMAC family
	ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")
)
