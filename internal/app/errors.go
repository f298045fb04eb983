package app

import "errors"

var (
	// ErrInvalidCredentials covers unknown usernames and wrong passwords alike.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAccountDisabled indicates a deactivated admin account.
	ErrAccountDisabled = errors.New("account is disabled")
	// ErrProtectedAdmin indicates an attempt to delete the seed admin account.
	ErrProtectedAdmin = errors.New("this admin account cannot be deleted")
	// ErrUsernameTaken indicates an admin username collision.
	ErrUsernameTaken = errors.New("username already exists")
)
