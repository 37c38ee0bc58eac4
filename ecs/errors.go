package ecs

import "errors"

var (
	ErrDuplicateName  = errors.New("duplicate entity name")
	ErrEntityNotFound = errors.New("entity not found")
	ErrInvalidLayer   = errors.New("invalid layer")
	ErrNoCamera       = errors.New("no active camera")
)
