package escalations

import "time"

// Escalation priorities.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// Escalation statuses.
const (
	StatusOpen       = "OPEN"
	StatusInProgress = "IN_PROGRESS"
	StatusResolved   = "RESOLVED"
)

// Escalation is an operational issue raised against a booked order.
type Escalation struct {
	ID          int64     `json:"id"`
	OrderID     int64     `json:"order_id"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Order *OrderRef `json:"order,omitempty"`
}

// OrderRef is the order summary attached to listed escalations.
type OrderRef struct {
	ID     int64  `json:"id"`
	Event  string `json:"event"`
	Status string `json:"status"`
}
