package util

import "errors"

var (
	ErrEmailRegistered = errors.New("email already registered")
	ErrCourseExists    = errors.New("course code already exists")
	ErrUnknownStatus   = errors.New("unknown homework status value")
	ErrCommitInFlight  = errors.New("a commit is already in progress")
	ErrEmptyOverlay    = errors.New("no pending status edits to commit")
)
