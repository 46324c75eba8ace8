package cart_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/irsalhamdi/bookstore-admin/apitest"
	"github.com/irsalhamdi/bookstore-admin/client"
	"github.com/irsalhamdi/bookstore-admin/core/book"
	"github.com/irsalhamdi/bookstore-admin/core/cart"
	"github.com/irsalhamdi/bookstore-admin/core/customer"
	"github.com/irsalhamdi/bookstore-admin/core/order"
)

type placerFunc func(ctx context.Context, ord order.OrderNew) (order.Order, error)

func (f placerFunc) Place(ctx context.Context, ord order.OrderNew) (order.Order, error) {
	return f(ctx, ord)
}

func TestPlaceOrder(t *testing.T) {
	var got order.OrderNew
	confirmation := order.Order{ID: 99, CustomerID: 7, TotalAmount: decimal.NewFromInt(20)}

	st := cart.NewStore(placerFunc(func(ctx context.Context, ord order.OrderNew) (order.Order, error) {
		got = ord
		return confirmation, nil
	}))

	st.Dispatch(cart.Add{Book: book.Book{ID: 1, Title: "A", Author: "a", Price: price("10")}})
	st.Dispatch(cart.SetQuantity{BookID: 1, Quantity: 2})

	placed, err := st.PlaceOrder(context.Background(), 7)
	if err != nil {
		t.Fatalf("placing order: %v", err)
	}

	want := order.OrderNew{CustomerID: 7, Items: []order.ItemNew{{BookID: 1, Quantity: 2}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected order request:\n%s", diff)
	}

	if placed.ID != 99 {
		t.Fatalf("expected order 99, got %d", placed.ID)
	}
	if st.LastOrder() == nil || st.LastOrder().ID != 99 {
		t.Fatalf("expected last order 99, got %+v", st.LastOrder())
	}
	if diff := cmp.Diff(cart.Empty(), st.Cart(), cmpDecimals); diff != "" {
		t.Fatalf("cart not emptied after checkout:\n%s", diff)
	}
	if st.Loading() {
		t.Fatal("loading flag still set after checkout")
	}
}

func TestPlaceOrderFailureKeepsCart(t *testing.T) {
	boom := errors.New("payment gateway unreachable")

	st := cart.NewStore(placerFunc(func(ctx context.Context, ord order.OrderNew) (order.Order, error) {
		return order.Order{}, boom
	}))

	st.Dispatch(cart.Add{Book: book.Book{ID: 1, Title: "A", Author: "a", Price: price("10")}})
	st.Dispatch(cart.SetQuantity{BookID: 1, Quantity: 2})
	st.Dispatch(cart.Add{Book: book.Book{ID: 2, Title: "B", Author: "b", Price: price("5")}})
	before := st.Cart()

	if _, err := st.PlaceOrder(context.Background(), 7); err == nil {
		t.Fatal("expected checkout to fail")
	}

	if !errors.Is(st.Err(), boom) {
		t.Fatalf("expected recorded error to wrap the failure, got %v", st.Err())
	}
	if diff := cmp.Diff(before, st.Cart(), cmpDecimals); diff != "" {
		t.Fatalf("failed checkout changed the cart:\n%s", diff)
	}
	if st.LastOrder() != nil {
		t.Fatalf("expected no last order, got %+v", st.LastOrder())
	}
	if st.Loading() {
		t.Fatal("loading flag still set after failed checkout")
	}
}

func TestCheckoutAgainstBackend(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	cst := srv.SeedCustomer(customer.Customer{Name: "Ada"})
	b1 := srv.SeedBook(book.Book{Title: "A", Author: "a", Price: price("10")})
	b2 := srv.SeedBook(book.Book{Title: "B", Author: "b", Price: price("5")})

	cl := client.New(client.Config{URL: srv.URL, Timeout: time.Second})
	st := cart.NewStore(order.NewService(cl))

	st.Dispatch(cart.Add{Book: b1})
	st.Dispatch(cart.Add{Book: b2})
	st.Dispatch(cart.Add{Book: b1})

	placed, err := st.PlaceOrder(context.Background(), cst.ID)
	if err != nil {
		t.Fatalf("placing order: %v", err)
	}

	if placed.CustomerName != "Ada" {
		t.Fatalf("expected customer Ada, got %q", placed.CustomerName)
	}
	if len(placed.Items) != 2 {
		t.Fatalf("expected two purchased lines, got %d", len(placed.Items))
	}
	if !placed.Items[0].PriceAtPurchase.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected price-at-purchase 10, got %s", placed.Items[0].PriceAtPurchase)
	}
	if !placed.TotalAmount.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected totalAmount 25, got %s", placed.TotalAmount)
	}

	if diff := cmp.Diff(cart.Empty(), st.Cart(), cmpDecimals); diff != "" {
		t.Fatalf("cart not emptied after checkout:\n%s", diff)
	}
	if got := srv.Orders(); len(got) != 1 || got[0].ID != placed.ID {
		t.Fatalf("backend order book disagrees: %+v", got)
	}
}
