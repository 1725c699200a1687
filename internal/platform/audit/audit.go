// Package audit captures key domain actions for operational visibility.
//
// Publishing is ops-grade: a failed emit is logged and dropped, it never
// fails the business operation that produced it.
package audit

import (
	"context"
	"time"

	id "pawboard/pkg/domain"
)

// Action names the domain event being recorded.
type Action string

const (
	ActionUserCreated    Action = "user_created"
	ActionUserDeleted    Action = "user_deleted"
	ActionLoginSucceeded Action = "login_succeeded"
	ActionLoginFailed    Action = "login_failed"
	ActionBoardDeleted   Action = "board_deleted"
	ActionReviewDeleted  Action = "review_deleted"
)

// Event is emitted from domain logic. Keep it transport-agnostic so
// publishers can fan out to logs or Kafka without the services caring.
type Event struct {
	Action    Action    `json:"action"`
	UserID    id.UserID `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher emits audit events.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}
