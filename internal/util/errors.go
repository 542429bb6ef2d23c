package util

import "errors"

var (
	ErrEmailRegistered = errors.New("email already registered")
	ErrScopeConflict   = errors.New("evaluation may reference a course or a lesson, not both")
	ErrScopeNotFound   = errors.New("referenced course or lesson does not exist")
	ErrAttemptLimit    = errors.New("attempt limit reached for this evaluation")
)
