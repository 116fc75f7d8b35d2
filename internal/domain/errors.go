package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidScore    = errors.New("invalid score")
	ErrInvalidLocation = errors.New("invalid location")
)
