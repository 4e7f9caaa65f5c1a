package models

import "time"

// OrderItem is a single product line within an order.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is a customer order nested in the user detail payload. Status is the
// only field the admin changes.
type Order struct {
	ID          string      `json:"_id"`
	OrderID     string      `json:"orderId,omitempty"`
	Items       []OrderItem `json:"items,omitempty"`
	TotalAmount float64     `json:"totalAmount"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
}

var OrderStatuses = []string{"Pending", "Processing", "Shipped", "Delivered", "Cancelled"}

func IsOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}
