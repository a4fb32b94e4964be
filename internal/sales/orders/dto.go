package orders

type CreateOrderItem struct {
	Name     string  `json:"name" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
	Price    float64 `json:"price" validate:"min=0"`
	Category string  `json:"category" validate:"required,oneof=FURNITURE LINENS EQUIPMENT FOOD"`
}

type CreateOrderRequest struct {
	CustomerID   int64             `json:"customer_id" validate:"required"`
	Event        string            `json:"event" validate:"required"`
	EventDate    string            `json:"event_date" validate:"required,datetime=2006-01-02"`
	EventTime    string            `json:"event_time"`
	Guests       int               `json:"guests" validate:"min=0"`
	Requirements []string          `json:"requirements"`
	Items        []CreateOrderItem `json:"items" validate:"required,min=1,dive"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED"`
}

type ListOrdersRequest struct {
	Status     *string
	CustomerID *int64
	Limit      int
	Offset     int
}
