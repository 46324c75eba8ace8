package customer

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/bookstore-admin/client"
	"github.com/irsalhamdi/bookstore-admin/validate"
)

const endpoint = "/api/customers"

// Service builds the typed requests for the customers resource. Unlike
// books, the customer listing is a plain array.
type Service struct {
	client *client.Client
}

func NewService(c *client.Client) *Service {
	return &Service{client: c}
}

func (s *Service) List(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	if err := s.client.Get(ctx, endpoint, nil, &customers); err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}

	return customers, nil
}

func (s *Service) Fetch(ctx context.Context, id int) (Customer, error) {
	var cst Customer
	if err := s.client.Get(ctx, fmt.Sprintf("%s/%d", endpoint, id), nil, &cst); err != nil {
		return Customer{}, fmt.Errorf("fetching customer[%d]: %w", id, err)
	}

	return cst, nil
}

func (s *Service) Create(ctx context.Context, nc CustomerNew) (Customer, error) {
	if err := validate.Check(nc); err != nil {
		return Customer{}, err
	}

	var cst Customer
	if err := s.client.Post(ctx, endpoint, nc, &cst); err != nil {
		return Customer{}, fmt.Errorf("creating customer: %w", err)
	}

	return cst, nil
}

func (s *Service) Update(ctx context.Context, id int, up CustomerNew) (Customer, error) {
	if err := validate.Check(up); err != nil {
		return Customer{}, err
	}

	var cst Customer
	if err := s.client.Put(ctx, fmt.Sprintf("%s/%d", endpoint, id), up, &cst); err != nil {
		return Customer{}, fmt.Errorf("updating customer[%d]: %w", id, err)
	}

	return cst, nil
}

func (s *Service) Remove(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("%s/%d", endpoint, id)); err != nil {
		return fmt.Errorf("deleting customer[%d]: %w", id, err)
	}

	return nil
}
