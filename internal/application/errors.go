package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password too weak")
	ErrInvalidSession     = errors.New("invalid session")
	ErrForbidden          = errors.New("forbidden")
	ErrSelfModification   = errors.New("cannot modify own account")
	ErrNotConfigured      = errors.New("not configured")
)

// ErrUnknownWebsite is returned when a record references a website that
// does not exist.
var ErrUnknownWebsite = errors.New("unknown website")

// ErrInvalidDates is returned when a domain's expiry does not follow its
// registration date.
var ErrInvalidDates = errors.New("expire_date must be after register_date")
