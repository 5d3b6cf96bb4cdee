package contracts

import (
	"context"

	"jadwalin-service/internal/app/models"
)

// EventPublisher fans schedule lifecycle events out to the durable events
// queue. Publishing is advisory: callers log failures and keep going.
type EventPublisher interface {
	PublishScheduleEvent(ctx context.Context, event models.ScheduleEvent) error
}
