package auth

import "errors"

// Expected authentication and authorization failures. Handlers compare with
// errors.Is and map each to its HTTP status; anything else is treated as an
// internal error.
var (
	// ErrInvalidCredentials covers both an unknown identifier and a wrong
	// password. The two causes are deliberately indistinguishable to avoid
	// account enumeration through the login endpoints.
	ErrInvalidCredentials = errors.New("incorrect email/username or password")

	// ErrInvalidToken covers expired, malformed, and badly signed tokens.
	// The causes are deliberately indistinguishable to the caller.
	ErrInvalidToken = errors.New("could not validate credentials")

	// ErrInactiveAccount means the credentials or token were valid but the
	// account is disabled.
	ErrInactiveAccount = errors.New("user account is disabled")

	// ErrInsufficientPrivilege means the user is authenticated but lacks the
	// required role or ownership.
	ErrInsufficientPrivilege = errors.New("the user doesn't have enough privileges")
)
