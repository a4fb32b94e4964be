package jobs

import (
	"context"
	"fmt"

	"github.com/caterflow/caterflow/internal/escalations"
)

// EscalationNotifier queues a mail:send task when a high-priority escalation
// is filed. It satisfies escalations.Notifier.
type EscalationNotifier struct {
	client    *Client
	recipient string
}

func NewEscalationNotifier(client *Client, recipient string) *EscalationNotifier {
	return &EscalationNotifier{client: client, recipient: recipient}
}

func (n *EscalationNotifier) EscalationFiled(ctx context.Context, esc escalations.Escalation) error {
	event := ""
	if esc.Order != nil {
		event = esc.Order.Event
	}
	payload := SendEmailPayload{
		To:      n.recipient,
		Subject: fmt.Sprintf("High-priority escalation #%d", esc.ID),
		Body: fmt.Sprintf("Order #%d (%s): %s",
			esc.OrderID, event, esc.Description),
	}
	_, err := n.client.EnqueueSendEmail(ctx, payload)
	return err
}
