package book

import "context"

const DefaultPageSize = 10

// State is the client-side mirror of the books collection. It is a cache:
// every id in it was assigned by the backend, and a successful Load replaces
// it wholesale. Mutations merge the backend's own response into the list
// without re-fetching, so it can drift if another actor edits the same books.
type State struct {
	Books         []Book
	TotalPages    int
	TotalElements int
	Page          int
	Size          int
	Selected      *Book
	Loading       bool
	Err           error
}

// Store drives the books collection against the service. Not safe for
// concurrent use: callers dispatch one operation at a time, and when two
// overlap anyway the last response to arrive wins.
type Store struct {
	svc   *Service
	state State
}

func NewStore(svc *Service) *Store {
	return &Store{svc: svc, state: State{Size: DefaultPageSize}}
}

func (s *Store) State() State { return s.state }

func (s *Store) Select(bk *Book) { s.state.Selected = bk }

// Load fetches one page and replaces the local collection and its page
// metadata. On failure the previous collection is preserved.
func (s *Store) Load(ctx context.Context, page int, size int) error {
	s.state.Loading = true
	pg, err := s.svc.List(ctx, page, size)
	s.state.Loading = false

	if err != nil {
		s.state.Err = err
		return err
	}

	s.state.Books = pg.Content
	s.state.TotalPages = pg.TotalPages
	s.state.TotalElements = pg.TotalElements
	s.state.Page = pg.Number
	s.state.Size = pg.Size
	s.state.Err = nil

	return nil
}

// LoadOne fetches a single book and selects it. The list is left alone.
func (s *Store) LoadOne(ctx context.Context, id int) error {
	s.state.Loading = true
	bk, err := s.svc.Fetch(ctx, id)
	s.state.Loading = false

	if err != nil {
		s.state.Err = err
		return err
	}

	s.state.Selected = &bk

	return nil
}

// Create submits a new book and, on success, prepends the backend's copy
// (now carrying its id) to the local list.
func (s *Store) Create(ctx context.Context, nb BookNew) (Book, error) {
	s.state.Loading = true
	bk, err := s.svc.Create(ctx, nb)
	s.state.Loading = false

	if err != nil {
		s.state.Err = err
		return Book{}, err
	}

	s.state.Books = append([]Book{bk}, s.state.Books...)
	s.state.TotalElements++

	return bk, nil
}

// Update replaces the book on the backend and merges the returned copy into
// the local list, selecting it.
func (s *Store) Update(ctx context.Context, id int, up BookNew) (Book, error) {
	s.state.Loading = true
	bk, err := s.svc.Update(ctx, id, up)
	s.state.Loading = false

	if err != nil {
		s.state.Err = err
		return Book{}, err
	}

	for i := range s.state.Books {
		if s.state.Books[i].ID == bk.ID {
			s.state.Books[i] = bk
		}
	}
	s.state.Selected = &bk

	return bk, nil
}

// Delete removes the book on the backend, then drops it from the local list
// and clears the selection when it pointed at the deleted book.
func (s *Store) Delete(ctx context.Context, id int) error {
	s.state.Loading = true
	err := s.svc.Remove(ctx, id)
	s.state.Loading = false

	if err != nil {
		s.state.Err = err
		return err
	}

	books := make([]Book, 0, len(s.state.Books))
	for _, bk := range s.state.Books {
		if bk.ID != id {
			books = append(books, bk)
		}
	}
	s.state.Books = books
	s.state.TotalElements--

	if s.state.Selected != nil && s.state.Selected.ID == id {
		s.state.Selected = nil
	}

	return nil
}
