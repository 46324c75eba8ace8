package customer

import "context"

// State is the client-side mirror of the customers collection.
type State struct {
	Customers []Customer
	Selected  *Customer
	Loading   bool
	Err       error
}

// Store drives the customers collection against the service. Not safe for
// concurrent use; overlapping operations resolve last-response-wins.
type Store struct {
	svc   *Service
	state State
}

func NewStore(svc *Service) *Store {
	return &Store{svc: svc}
}

func (s *Store) State() State { return s.state }

func (s *Store) Select(cst *Customer) { s.state.Selected = cst }

// Load fetches the whole collection and replaces the local copy. On failure
// the previous collection is preserved.
func (s *Store) Load(ctx context.Context) error {
	s.state.Loading = true
	customers, err := s.svc.List(ctx)
	s.state.Loading = false

	if err != nil {
		s.state.Err = err
		return err
	}

	s.state.Customers = customers
	s.state.Err = nil

	return nil
}

func (s *Store) LoadOne(ctx context.Context, id int) error {
	s.state.Loading = true
	cst, err := s.svc.Fetch(ctx, id)
	s.state.Loading = false

	if err != nil {
		s.state.Err = err
		return err
	}

	s.state.Selected = &cst

	return nil
}

func (s *Store) Create(ctx context.Context, nc CustomerNew) (Customer, error) {
	s.state.Loading = true
	cst, err := s.svc.Create(ctx, nc)
	s.state.Loading = false

	if err != nil {
		s.state.Err = err
		return Customer{}, err
	}

	s.state.Customers = append([]Customer{cst}, s.state.Customers...)

	return cst, nil
}

func (s *Store) Update(ctx context.Context, id int, up CustomerNew) (Customer, error) {
	s.state.Loading = true
	cst, err := s.svc.Update(ctx, id, up)
	s.state.Loading = false

	if err != nil {
		s.state.Err = err
		return Customer{}, err
	}

	for i := range s.state.Customers {
		if s.state.Customers[i].ID == cst.ID {
			s.state.Customers[i] = cst
		}
	}
	s.state.Selected = &cst

	return cst, nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	s.state.Loading = true
	err := s.svc.Remove(ctx, id)
	s.state.Loading = false

	if err != nil {
		s.state.Err = err
		return err
	}

	customers := make([]Customer, 0, len(s.state.Customers))
	for _, cst := range s.state.Customers {
		if cst.ID != id {
			customers = append(customers, cst)
		}
	}
	s.state.Customers = customers

	if s.state.Selected != nil && s.state.Selected.ID == id {
		s.state.Selected = nil
	}

	return nil
}
