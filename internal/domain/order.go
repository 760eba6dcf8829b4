package domain

import (
	"fmt"
	"math"
	"time"
)

// OrderStatus is the fulfilment stage of an order. Values are stored verbatim.
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "Pendente"
	OrderStatusInProduction OrderStatus = "Em produção"
	OrderStatusConcluded    OrderStatus = "Concluído"
)

// IsValid checks if the OrderStatus is one of the defined constants.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProduction, OrderStatusConcluded:
		return true
	}
	return false
}

// IsReviewable reports whether items of an order in this status may be reviewed.
func (s OrderStatus) IsReviewable() bool {
	return s == OrderStatusConcluded
}

// ParseOrderStatus validates a raw status value.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, raw)
	}
	return s, nil
}

// LineItem is one sweet inside an order. Name is a snapshot taken at purchase.
type LineItem struct {
	SweetID  string
	Name     string
	Quantity int
}

// Order is a placed purchase. After creation it only changes status.
type Order struct {
	ID         string
	UserID     string
	UserName   string
	UserEmail  string
	UserPhone  string
	Items      []LineItem
	TotalPrice float64
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Item looks up a line item by sweet id.
func (o *Order) Item(sweetID string) (LineItem, bool) {
	for _, it := range o.Items {
		if it.SweetID == sweetID {
			return it, true
		}
	}
	return LineItem{}, false
}

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status *OrderStatus
}

// RoundCents rounds a money amount to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
