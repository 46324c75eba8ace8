package book

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/irsalhamdi/bookstore-admin/client"
	"github.com/irsalhamdi/bookstore-admin/validate"
)

const endpoint = "/api/books"

// Service builds the typed requests for the books resource.
type Service struct {
	client *client.Client
}

func NewService(c *client.Client) *Service {
	return &Service{client: c}
}

func (s *Service) List(ctx context.Context, page int, size int) (Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var pg Page
	if err := s.client.Get(ctx, endpoint, query, &pg); err != nil {
		return Page{}, fmt.Errorf("listing books: %w", err)
	}

	return pg, nil
}

func (s *Service) Fetch(ctx context.Context, id int) (Book, error) {
	var bk Book
	if err := s.client.Get(ctx, fmt.Sprintf("%s/%d", endpoint, id), nil, &bk); err != nil {
		return Book{}, fmt.Errorf("fetching book[%d]: %w", id, err)
	}

	return bk, nil
}

func (s *Service) Create(ctx context.Context, nb BookNew) (Book, error) {
	if err := validate.Check(nb); err != nil {
		return Book{}, err
	}

	var bk Book
	if err := s.client.Post(ctx, endpoint, nb, &bk); err != nil {
		return Book{}, fmt.Errorf("creating book: %w", err)
	}

	return bk, nil
}

func (s *Service) Update(ctx context.Context, id int, up BookNew) (Book, error) {
	if err := validate.Check(up); err != nil {
		return Book{}, err
	}

	var bk Book
	if err := s.client.Put(ctx, fmt.Sprintf("%s/%d", endpoint, id), up, &bk); err != nil {
		return Book{}, fmt.Errorf("updating book[%d]: %w", id, err)
	}

	return bk, nil
}

func (s *Service) Remove(ctx context.Context, id int) error {
	if err := s.client.Delete(ctx, fmt.Sprintf("%s/%d", endpoint, id)); err != nil {
		return fmt.Errorf("deleting book[%d]: %w", id, err)
	}

	return nil
}
