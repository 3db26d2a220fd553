package usecase

import (
	"context"

	"github.com/lungeable/crunch-backend/internal/infra/integration/analytics"
	"github.com/lungeable/crunch-backend/internal/infra/integration/formrelay"
	"github.com/lungeable/crunch-backend/internal/infra/queue"
)

type FormRelayInterface interface {
	Submit(ctx context.Context, submission formrelay.Submission) error
}

type AnalyticsInterface interface {
	TrackLead(ctx context.Context, event analytics.Event) error
}

type QueueProducerInterface interface {
	PublishLeadCreated(ctx context.Context, payload queue.LeadCreatedPayload) error
}

// SessionStoreInterface is the per-session key→string store standing in for
// the browser's local storage: read at init, written after every mutation.
type SessionStoreInterface interface {
	Get(ctx context.Context, sessionID, key string) (string, bool, error)
	Put(ctx context.Context, sessionID, key, value string) error
}
