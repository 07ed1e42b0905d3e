package domain

import (
	"fmt"
	"time"
)

// OrderStatus is the fulfilment status of a delivery order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var validOrderStatuses = map[OrderStatus]bool{
	OrderStatusPending:   true,
	OrderStatusConfirmed: true,
	OrderStatusPreparing: true,
	OrderStatusShipped:   true,
	OrderStatusDelivered: true,
	OrderStatusCancelled: true,
}

// Valid reports whether s is a known order status
func (s OrderStatus) Valid() bool {
	return validOrderStatuses[s]
}

// ParseOrderStatus converts a raw string into an OrderStatus
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidOrderStatus, raw)
	}
	return s, nil
}

// Recipient holds optional delivery contact details
type Recipient struct {
	Name    string `json:"recipient_name,omitempty"`
	Phone   string `json:"recipient_phone,omitempty"`
	Address string `json:"delivery_address,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// DeliveryOrder is created once per successful claim
type DeliveryOrder struct {
	ID                   int64       `json:"id"`
	FarmID               int64       `json:"farm_id"`
	Reference            string      `json:"reference"`
	Quantity             int         `json:"quantity"`
	VirtualUnitsConsumed int         `json:"virtual_units_consumed"`
	Status               OrderStatus `json:"status"`
	Recipient            Recipient   `json:"recipient"`
	ConfirmedAt          *time.Time  `json:"confirmed_at,omitempty"`
	ShippedAt            *time.Time  `json:"shipped_at,omitempty"`
	DeliveredAt          *time.Time  `json:"delivered_at,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// ClaimRequest asks to convert ready real-product units into an order
type ClaimRequest struct {
	Count     int
	Recipient Recipient
}

// ClaimResult is returned after a successful claim
type ClaimResult struct {
	OrderID   int64  `json:"order_id"`
	Reference string `json:"reference"`
	Claimed   int    `json:"claimed"`
	Remaining int    `json:"remaining"`
	Message   string `json:"message"`
}
