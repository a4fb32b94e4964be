package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/caterflow/caterflow/internal/escalations"
	jobmetrics "github.com/caterflow/caterflow/internal/jobs"
)

// EscalationSource supplies the open escalations the digest reports on.
type EscalationSource interface {
	ListOpen(ctx context.Context) ([]escalations.Escalation, error)
}

// EscalationDigestJob logs a periodic summary of open escalations grouped by
// priority so the ops channel sees stale issues without polling the UI.
type EscalationDigestJob struct {
	source  EscalationSource
	logger  *slog.Logger
	metrics *jobmetrics.Metrics
}

func NewEscalationDigestJob(source EscalationSource, logger *slog.Logger, metrics *jobmetrics.Metrics) *EscalationDigestJob {
	return &EscalationDigestJob{source: source, logger: logger, metrics: metrics}
}

// Handle processes TaskTypeEscalationDigest tasks.
func (j *EscalationDigestJob) Handle(ctx context.Context, t *asynq.Task) error {
	tracker := j.metrics.Track("escalation_digest")
	return tracker.End(j.run(ctx))
}

func (j *EscalationDigestJob) run(ctx context.Context) error {
	open, err := j.source.ListOpen(ctx)
	if err != nil {
		return err
	}

	byPriority := make(map[string]int)
	for _, esc := range open {
		byPriority[esc.Priority]++
	}
	j.logger.Info("escalation digest",
		slog.Int("open", len(open)),
		slog.Int("high", byPriority[escalations.PriorityHigh]),
		slog.Int("medium", byPriority[escalations.PriorityMedium]),
		slog.Int("low", byPriority[escalations.PriorityLow]))

	for _, esc := range open {
		if esc.Priority != escalations.PriorityHigh {
			continue
		}
		j.logger.Warn("open high-priority escalation",
			slog.Int64("escalation_id", esc.ID),
			slog.Int64("order_id", esc.OrderID),
			slog.String("description", esc.Description))
	}
	return nil
}
