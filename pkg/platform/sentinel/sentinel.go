package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist in the store
// - ErrEmailTaken / ErrNicknameTaken: uniqueness constraint hit on create
// - ErrConflict: other state conflicts
// - ErrUnavailable: backing store temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrEmailTaken    = errors.New("email already taken")
	ErrNicknameTaken = errors.New("nickname already taken")
	ErrUnavailable   = errors.New("unavailable")
)
