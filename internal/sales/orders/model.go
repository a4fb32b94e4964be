package orders

import "time"

// Order statuses.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// Order item categories.
const (
	CategoryFurniture = "FURNITURE"
	CategoryLinens    = "LINENS"
	CategoryEquipment = "EQUIPMENT"
	CategoryFood      = "FOOD"
)

// Order is a booked catering event. Total is derived from its items at create
// time and never edited directly.
type Order struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customer_id"`
	Event        string    `json:"event"`
	EventDate    time.Time `json:"event_date"`
	EventTime    string    `json:"event_time"`
	Guests       int       `json:"guests"`
	Status       string    `json:"status"`
	Total        float64   `json:"total"`
	Requirements []string  `json:"requirements"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Customer    *CustomerRef `json:"customer,omitempty"`
	Items       []OrderItem  `json:"items,omitempty"`
	Escalations []Escalation `json:"escalations,omitempty"`
}

// OrderItem is one rented or catered line of an order.
type OrderItem struct {
	ID       int64   `json:"id"`
	OrderID  int64   `json:"order_id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// CustomerRef is the customer summary attached to loaded orders.
type CustomerRef struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// Escalation is the slice of an escalation attached to an order; the full
// record lives in the escalations package.
type Escalation struct {
	ID          int64     `json:"id"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ValidTransition reports whether an order may move between two statuses.
// Cancelled orders are terminal; confirmed orders can only be cancelled.
func ValidTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled
	default:
		return false
	}
}
