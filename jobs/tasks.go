package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
	// TaskTypeEscalationDigest summarises open escalations for the ops team.
	TaskTypeEscalationDigest = "escalation:digest"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// HandleSendEmailTask processes TaskTypeSendEmail tasks.
func HandleSendEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// TODO: integrate with the SMTP relay once it is provisioned; until then
	// the task is logged and acknowledged.
	slog.Default().Info("send email",
		slog.String("to", payload.To),
		slog.String("subject", payload.Subject))
	return nil
}

type escalationDigestPayload struct {
	At time.Time `json:"at"`
}

// NewEscalationDigestTask constructs the scheduled digest task.
func NewEscalationDigestTask(at time.Time) (*asynq.Task, error) {
	data, err := json.Marshal(escalationDigestPayload{At: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeEscalationDigest, data, asynq.Queue(QueueDefault)), nil
}
