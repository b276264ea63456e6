package service

import "errors"

// Sentinel errors surfaced by the service layer. Handlers translate them to
// HTTP statuses; anything else is a 500 with the detail logged server-side.
var (
	ErrInvalidURL          = errors.New("invalid destination url")
	ErrQuotaExceeded       = errors.New("link quota exceeded")
	ErrGenerationExhausted = errors.New("could not generate a unique short code")
	ErrSelfTarget          = errors.New("operation may not target the acting principal")
	ErrInvalidRole         = errors.New("invalid role")
)
