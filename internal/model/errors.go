package model

import "errors"

var (
	// Authentication related errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrIdentityExists     = errors.New("identity already exists")
	ErrIntegrity          = errors.New("stored credential is corrupt")

	// Permission/Access related errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Content related errors
	ErrNotFound = errors.New("not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
