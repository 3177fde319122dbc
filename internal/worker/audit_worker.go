package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/voting-service/internal/events"
	"github.com/spec-kit/voting-service/internal/service"
)

// StartAuditWorker subscribes handlers that keep the tally cache coherent
// and write an audit line for every state-changing event.
func StartAuditWorker(dispatcher events.Dispatcher, cache service.TallyCache, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	invalidate := func(ctx context.Context, event events.Event) error {
		if cache != nil {
			cache.Invalidate(ctx)
		}
		logger.Info("audit",
			zap.String("event", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	audit := func(_ context.Context, event events.Event) error {
		logger.Info("audit",
			zap.String("event", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	dispatcher.Subscribe(events.EventVoteCast, invalidate)
	dispatcher.Subscribe(events.EventResultsReset, invalidate)
	dispatcher.Subscribe(events.EventVoterRegistered, audit)
	dispatcher.Subscribe(events.EventVoterRemoved, audit)
}
