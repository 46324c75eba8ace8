package order

import "github.com/shopspring/decimal"

// ItemNew is one requested line of a new order.
type ItemNew struct {
	BookID   int `json:"bookId"`
	Quantity int `json:"quantity"`
}

type OrderNew struct {
	CustomerID int       `json:"customerId"`
	Items      []ItemNew `json:"items"`
}

// Item is a purchased line snapshot: price is the price at purchase time,
// not the book's current price.
type Item struct {
	BookID          int             `json:"bookId"`
	Title           string          `json:"title"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
}

// Order is the backend's confirmation of a placed order. It is immutable
// once returned. Date stays a string: the backend emits zone-less local
// datetime text.
type Order struct {
	ID           int             `json:"orderId"`
	Date         string          `json:"orderDate"`
	CustomerID   int             `json:"customerId"`
	CustomerName string          `json:"customerName"`
	Items        []Item          `json:"items"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}
