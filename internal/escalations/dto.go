package escalations

type CreateEscalationRequest struct {
	OrderID     int64  `json:"order_id" validate:"required"`
	Priority    string `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH"`
	Description string `json:"description" validate:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=OPEN IN_PROGRESS RESOLVED"`
}

type ListEscalationsRequest struct {
	Status   *string
	Priority *string
	Limit    int
	Offset   int
}
