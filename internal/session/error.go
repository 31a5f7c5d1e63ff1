package session

import "errors"

var (
	// -- Authentication --
	ErrLoginFailed    = errors.New("login failed")
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrRefreshFailed  = errors.New("token refresh failed")
	ErrRegisterFailed = errors.New("registration failed")

	// -- Validation & Input --
	ErrInvalidCredentials = errors.New("username and password are required")

	// -- Token store --
	ErrNoStoredTokens = errors.New("no stored tokens")
)
