package cart

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/bookstore-admin/core/order"
)

// Placer submits a finished cart as an order.
type Placer interface {
	Place(ctx context.Context, ord order.OrderNew) (order.Order, error)
}

// Store drives the cart and its checkout. Not safe for concurrent use: the
// caller dispatches one operation at a time and must not start a second
// checkout while one is in flight.
type Store struct {
	orders    Placer
	cart      Cart
	loading   bool
	err       error
	lastOrder *order.Order
}

func NewStore(orders Placer) *Store {
	return &Store{orders: orders, cart: Empty()}
}

func (s *Store) Cart() Cart { return s.cart }

func (s *Store) Loading() bool { return s.loading }

func (s *Store) Err() error { return s.err }

// LastOrder is the most recently confirmed order, nil before any checkout
// succeeds.
func (s *Store) LastOrder() *order.Order { return s.lastOrder }

func (s *Store) Dispatch(cmd Command) {
	s.cart = Apply(s.cart, cmd)
}

// PlaceOrder submits the current lines for the given customer. On success
// the cart empties and the confirmation is retained; on failure the lines
// stay put so the checkout can be retried.
func (s *Store) PlaceOrder(ctx context.Context, customerID int) (order.Order, error) {
	s.loading = true

	ord := order.OrderNew{
		CustomerID: customerID,
		Items:      make([]order.ItemNew, 0, len(s.cart.Items)),
	}
	for _, it := range s.cart.Items {
		ord.Items = append(ord.Items, order.ItemNew{BookID: it.ID, Quantity: it.Quantity})
	}

	placed, err := s.orders.Place(ctx, ord)
	s.loading = false

	if err != nil {
		s.err = fmt.Errorf("checkout for customer[%d]: %w", customerID, err)
		return order.Order{}, s.err
	}

	s.lastOrder = &placed
	s.cart = Apply(s.cart, Clear{})

	return placed, nil
}
