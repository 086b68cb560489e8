package order

// CreateOrderRequest payload of checkout.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	UserID   string       `json:"user_id" example:"b2f5ff47-2b1e-4f22-8a96-5f3c1f2f2e7b"`
	CartID   string       `json:"cart_id" example:"0d8f0a57-4c1b-4d84-9a3e-2f1f6f3f1c2d"`
	Billing  BillingInfo  `json:"billing"`
	Shipping ShippingInfo `json:"shipping"`
	Payment  PaymentInfo  `json:"payment"`
}

// UpdateStatusRequest payload of a status change.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"processing"`
}

// AdminNotesRequest payload of an admin notes update.
// swagger:model AdminNotesRequest
type AdminNotesRequest struct {
	Notes string `json:"notes" example:"customer asked for delivery after 5pm"`
}

// ListResponse is a page of orders.
// swagger:model OrderListResponse
type ListResponse struct {
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
	Items  []PurchaseOrder `json:"items"`
}
