package models

import (
	"strings"
	"time"

	id "pawboard/pkg/domain"
	dErrors "pawboard/pkg/domain-errors"
)

// Role is the account's coarse privilege level. It is carried in token
// claims but deliberately grants no bypass anywhere in this service:
// ownership checks ignore it.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}

// User is the account aggregate.
//
// Invariants:
//   - Email and Nickname are unique across all users (enforced by the store)
//   - PasswordHash only ever holds a bcrypt hash, never plaintext
//   - Role is one of the enumerated values
//   - CreatedAt is immutable after construction
type User struct {
	ID             id.UserID `json:"id"`
	Email          string    `json:"email"`
	Nickname       string    `json:"nickname"`
	PasswordHash   string    `json:"-"`
	Role           Role      `json:"role"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser constructs a user from already-hashed credentials.
func NewUser(userID id.UserID, email, nickname, passwordHash string, now time.Time) (*User, error) {
	email = strings.TrimSpace(email)
	nickname = strings.TrimSpace(nickname)

	if email == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "email cannot be empty")
	}
	if nickname == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "nickname cannot be empty")
	}
	if passwordHash == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "password hash cannot be empty")
	}

	return &User{
		ID:           userID,
		Email:        email,
		Nickname:     nickname,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ProfilePatch is a partial profile update. It structurally cannot carry
// credential fields: password changes go through a dedicated re-hash flow,
// never the general update path.
type ProfilePatch struct {
	Nickname       *string `json:"nickname,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.Nickname == nil && p.ProfilePicture == nil
}

// SignUpRequest carries the fields needed to create an account.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// LogInFailure classifies why a login was rejected. The two reasons are
// deliberately distinguishable (a UX decision the design accepts as a
// minor information-leak tradeoff).
type LogInFailure string

const (
	LogInFailureNone             LogInFailure = ""
	LogInFailureEmailNotFound    LogInFailure = "email_not_found"
	LogInFailurePasswordMismatch LogInFailure = "password_mismatch"
)

// LogInResult is the typed outcome of a login attempt. Exactly one of
// User or Failure is meaningful.
type LogInResult struct {
	User    *User
	Failure LogInFailure
}

func (r LogInResult) Success() bool {
	return r.User != nil && r.Failure == LogInFailureNone
}
