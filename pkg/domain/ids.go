// Package domain holds typed identifiers shared across services.
//
// Each aggregate gets its own UUID-backed id type so the compiler rejects
// cross-aggregate mixups (passing a BoardID where a UserID is expected).
// Construct ids from external input via the Parse functions, which enforce
// the well-formedness invariant at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "pawboard/pkg/domain-errors"
)

type (
	// UserID identifies an account.
	UserID uuid.UUID
	// BoardID identifies a board post.
	BoardID uuid.UUID
	// ReviewID identifies a review.
	ReviewID uuid.UUID
)

// NewUserID returns a fresh random UserID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewBoardID returns a fresh random BoardID.
func NewBoardID() BoardID { return BoardID(uuid.New()) }

// NewReviewID returns a fresh random ReviewID.
func NewReviewID() ReviewID { return ReviewID(uuid.New()) }

func (id UserID) String() string   { return uuid.UUID(id).String() }
func (id BoardID) String() string  { return uuid.UUID(id).String() }
func (id ReviewID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id BoardID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ReviewID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// The defined types do not inherit uuid.UUID's encoding methods, so wire
// formats (JSON bodies, audit payloads) need explicit text marshaling to
// keep ids as canonical UUID strings rather than byte arrays.

func (id UserID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }
func (id BoardID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id ReviewID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(text []byte) error {
	parsed, err := ParseUserID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *BoardID) UnmarshalText(text []byte) error {
	parsed, err := ParseBoardID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ReviewID) UnmarshalText(text []byte) error {
	parsed, err := ParseReviewID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// parseUUID enforces the shared id invariant: a valid, non-nil UUID.
// A malformed identifier is CodeInvalidInput, deliberately distinct from
// CodeNotFound (a well-formed id that names nothing).
func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is not a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be the nil UUID")
	}
	return parsed, nil
}

// ParseUserID constructs a UserID from external input.
func ParseUserID(s string) (UserID, error) {
	parsed, err := parseUUID(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID(parsed), nil
}

// ParseBoardID constructs a BoardID from external input.
func ParseBoardID(s string) (BoardID, error) {
	parsed, err := parseUUID(s)
	if err != nil {
		return BoardID{}, err
	}
	return BoardID(parsed), nil
}

// ParseReviewID constructs a ReviewID from external input.
func ParseReviewID(s string) (ReviewID, error) {
	parsed, err := parseUUID(s)
	if err != nil {
		return ReviewID{}, err
	}
	return ReviewID(parsed), nil
}
