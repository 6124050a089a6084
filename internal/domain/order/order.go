package order

import (
	"fmt"

	vo "tixgate/internal/domain/order/valueobjects"
)

// LineItem is one purchasable position of an order.
type LineItem struct {
	Name        string
	Description string
	Price       vo.Money
	Quantity    int
}

// Order is the host's pending purchase, correlated to every gateway
// round-trip by its payment token. Orders are owned by the host and
// immutable once handed to the gateway core.
type Order struct {
	paymentToken string
	total        vo.Money
	items        []LineItem
}

func NewOrder(paymentToken string, total vo.Money, items []LineItem) (*Order, error) {
	if paymentToken == "" {
		return nil, fmt.Errorf("payment token is required")
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("order total must be positive")
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("order must have at least one item")
	}

	copied := make([]LineItem, len(items))
	copy(copied, items)

	return &Order{
		paymentToken: paymentToken,
		total:        total,
		items:        copied,
	}, nil
}

func (o *Order) PaymentToken() string {
	return o.paymentToken
}

func (o *Order) Total() vo.Money {
	return o.total
}

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}
