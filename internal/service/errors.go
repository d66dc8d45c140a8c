package service

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNumberTaken      = errors.New("contract number already in use")
	ErrMissingVariables = errors.New("missing required variables")
)
