package order

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/bookstore-admin/client"
)

const endpoint = "/api/orders"

type Service struct {
	client *client.Client
}

func NewService(c *client.Client) *Service {
	return &Service{client: c}
}

// Place submits the order in a single round trip. There is no retry: the
// request is not idempotent.
func (s *Service) Place(ctx context.Context, ord OrderNew) (Order, error) {
	var placed Order
	if err := s.client.Post(ctx, endpoint, ord, &placed); err != nil {
		return Order{}, fmt.Errorf("placing order: %w", err)
	}

	return placed, nil
}
