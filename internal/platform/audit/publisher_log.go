package audit

import (
	"context"
	"log/slog"
)

// LogPublisher writes audit events to the structured log. It is the
// default sink when Kafka is not configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Emit(ctx context.Context, event Event) error {
	p.logger.InfoContext(ctx, "audit",
		"action", string(event.Action),
		"user_id", event.UserID.String(),
		"email", event.Email,
		"reason", event.Reason,
		"request_id", event.RequestID,
		"at", event.At,
	)
	return nil
}
