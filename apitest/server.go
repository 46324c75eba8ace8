// Package apitest runs an in-process stand-in for the bookstore backend:
// the same routes, envelopes, and error shape, over in-memory maps.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/irsalhamdi/bookstore-admin/core/book"
	"github.com/irsalhamdi/bookstore-admin/core/customer"
	"github.com/irsalhamdi/bookstore-admin/core/order"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Server struct {
	*httptest.Server

	mu sync.Mutex

	// Token, when set, must arrive as a bearer token or the request fails
	// with 401.
	Token string

	// FailStatus, when set, fails every request with FailMessage.
	FailStatus  int
	FailMessage string

	// Requests counts the requests that actually reached the server.
	Requests int

	books     map[int]book.Book
	customers map[int]customer.Customer
	orders    []order.Order
	nextID    int
}

func New() *Server {
	s := &Server{
		books:     make(map[int]book.Book),
		customers: make(map[int]customer.Customer),
		nextID:    1,
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/books", s.handle(s.listBooks)).Methods(http.MethodGet)
	r.HandleFunc("/api/books", s.handle(s.createBook)).Methods(http.MethodPost)
	r.HandleFunc("/api/books/{id}", s.handle(s.showBook)).Methods(http.MethodGet)
	r.HandleFunc("/api/books/{id}", s.handle(s.updateBook)).Methods(http.MethodPut)
	r.HandleFunc("/api/books/{id}", s.handle(s.deleteBook)).Methods(http.MethodDelete)
	r.HandleFunc("/api/customers", s.handle(s.listCustomers)).Methods(http.MethodGet)
	r.HandleFunc("/api/customers", s.handle(s.createCustomer)).Methods(http.MethodPost)
	r.HandleFunc("/api/customers/{id}", s.handle(s.showCustomer)).Methods(http.MethodGet)
	r.HandleFunc("/api/customers/{id}", s.handle(s.updateCustomer)).Methods(http.MethodPut)
	r.HandleFunc("/api/customers/{id}", s.handle(s.deleteCustomer)).Methods(http.MethodDelete)
	r.HandleFunc("/api/orders", s.handle(s.placeOrder)).Methods(http.MethodPost)

	s.Server = httptest.NewServer(r)
	return s
}

// SeedBook stores a book directly, assigning an id when it has none.
func (s *Server) SeedBook(bk book.Book) book.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bk.ID == 0 {
		bk.ID = s.nextID
		s.nextID++
	}
	s.books[bk.ID] = bk
	return bk
}

func (s *Server) SeedCustomer(cst customer.Customer) customer.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cst.ID == 0 {
		cst.ID = s.nextID
		s.nextID++
	}
	s.customers[cst.ID] = cst
	return cst
}

// Orders reports every order placed so far.
func (s *Server) Orders() []order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]order.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *Server) handle(next func(w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.Requests++
		token := s.Token
		failStatus, failMessage := s.FailStatus, s.FailMessage
		s.mu.Unlock()

		if failStatus != 0 {
			fail(w, failMessage, failStatus)
			return
		}

		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			fail(w, "not authorized to access resource", http.StatusUnauthorized)
			return
		}

		next(w, r)
	}
}

func (s *Server) listBooks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size <= 0 {
		size = 10
	}

	ids := make([]int, 0, len(s.books))
	for id := range s.books {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	totalElements := len(ids)
	totalPages := (totalElements + size - 1) / size

	content := []book.Book{}
	start := page * size
	for i := start; i < totalElements && i < start+size; i++ {
		content = append(content, s.books[ids[i]])
	}

	respond(w, book.Page{
		Content:          content,
		TotalPages:       totalPages,
		TotalElements:    totalElements,
		Size:             size,
		Number:           page,
		NumberOfElements: len(content),
		Pageable: book.Pageable{
			Offset:     start,
			PageNumber: page,
			PageSize:   size,
			Paged:      true,
		},
		First: page == 0,
		Last:  page >= totalPages-1,
		Empty: len(content) == 0,
	}, http.StatusOK)
}

func (s *Server) showBook(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bk, ok := s.books[param(r)]
	if !ok {
		fail(w, "book not found", http.StatusNotFound)
		return
	}
	respond(w, bk, http.StatusOK)
}

func (s *Server) createBook(w http.ResponseWriter, r *http.Request) {
	var bk book.Book
	if err := json.NewDecoder(r.Body).Decode(&bk); err != nil {
		fail(w, "malformed book payload", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bk.ID = s.nextID
	s.nextID++
	s.books[bk.ID] = bk
	respond(w, bk, http.StatusCreated)
}

func (s *Server) updateBook(w http.ResponseWriter, r *http.Request) {
	var bk book.Book
	if err := json.NewDecoder(r.Body).Decode(&bk); err != nil {
		fail(w, "malformed book payload", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := param(r)
	if _, ok := s.books[id]; !ok {
		fail(w, "book not found", http.StatusNotFound)
		return
	}

	bk.ID = id
	s.books[id] = bk
	respond(w, bk, http.StatusOK)
}

func (s *Server) deleteBook(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := param(r)
	if _, ok := s.books[id]; !ok {
		fail(w, "book not found", http.StatusNotFound)
		return
	}

	delete(s.books, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int, 0, len(s.customers))
	for id := range s.customers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	customers := []customer.Customer{}
	for _, id := range ids {
		customers = append(customers, s.customers[id])
	}
	respond(w, customers, http.StatusOK)
}

func (s *Server) showCustomer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cst, ok := s.customers[param(r)]
	if !ok {
		fail(w, "customer not found", http.StatusNotFound)
		return
	}
	respond(w, cst, http.StatusOK)
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	var cst customer.Customer
	if err := json.NewDecoder(r.Body).Decode(&cst); err != nil {
		fail(w, "malformed customer payload", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cst.ID = s.nextID
	s.nextID++
	s.customers[cst.ID] = cst
	respond(w, cst, http.StatusCreated)
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var cst customer.Customer
	if err := json.NewDecoder(r.Body).Decode(&cst); err != nil {
		fail(w, "malformed customer payload", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := param(r)
	if _, ok := s.customers[id]; !ok {
		fail(w, "customer not found", http.StatusNotFound)
		return
	}

	cst.ID = id
	s.customers[id] = cst
	respond(w, cst, http.StatusOK)
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := param(r)
	if _, ok := s.customers[id]; !ok {
		fail(w, "customer not found", http.StatusNotFound)
		return
	}

	delete(s.customers, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) placeOrder(w http.ResponseWriter, r *http.Request) {
	var ord order.OrderNew
	if err := json.NewDecoder(r.Body).Decode(&ord); err != nil {
		fail(w, "malformed order payload", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cst, ok := s.customers[ord.CustomerID]
	if !ok {
		fail(w, "customer not found", http.StatusNotFound)
		return
	}

	total := decimal.Zero
	items := make([]order.Item, 0, len(ord.Items))
	for _, it := range ord.Items {
		bk, ok := s.books[it.BookID]
		if !ok {
			fail(w, "book not found", http.StatusNotFound)
			return
		}

		price := decimal.Zero
		if bk.Price != nil {
			price = *bk.Price
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		items = append(items, order.Item{
			BookID:          it.BookID,
			Title:           bk.Title,
			Quantity:        it.Quantity,
			PriceAtPurchase: price,
		})
	}

	placed := order.Order{
		ID:           s.nextID,
		Date:         "2024-05-01T10:30:00",
		CustomerID:   cst.ID,
		CustomerName: cst.Name,
		Items:        items,
		TotalAmount:  total,
	}
	s.nextID++
	s.orders = append(s.orders, placed)

	respond(w, placed, http.StatusCreated)
}

func param(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

func respond(w http.ResponseWriter, data interface{}, statusCode int) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(jsonData)
}

func fail(w http.ResponseWriter, msg string, status int) {
	respond(w, struct {
		Message string `json:"message"`
		Status  int    `json:"status"`
	}{msg, status}, status)
}
