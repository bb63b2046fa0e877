package planner

import "errors"

var (
	// ErrTargetNotFound means the requested target is not in the body
	// catalog. Caller error, never retried.
	ErrTargetNotFound = errors.New("target not found")

	// ErrBadRequest means a search parameter is outside its documented
	// domain.
	ErrBadRequest = errors.New("bad request")

	// ErrUpstream means the position provider failed for a required body
	// (target, sun or moon). Fatal to the single computation it occurred in.
	ErrUpstream = errors.New("position provider unavailable")
)
