// Package cart holds the local shopping cart: an ordered list of lines
// mutated through commands and a pure transition function. The cart is
// ephemeral process state; nothing here touches the network except checkout.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/irsalhamdi/bookstore-admin/core/book"
)

// Item is one line in the cart: a book plus the quantity taken. At most one
// line exists per book id.
type Item struct {
	book.Book
	Quantity int `json:"quantity"`
}

type Cart struct {
	Items       []Item          `json:"items"`
	TotalItems  int             `json:"totalItems"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

func Empty() Cart {
	return withTotals(nil)
}

// Command is one cart mutation, applied through Apply.
type Command interface {
	apply(Cart) Cart
}

// Add puts one copy of the book in the cart: an existing line grows by one,
// otherwise a new line with quantity 1 is appended.
type Add struct {
	Book book.Book
}

// Remove drops the line for the book id. Absent lines are a no-op.
type Remove struct {
	BookID int
}

// SetQuantity sets a line's quantity outright. A quantity of zero or less
// behaves as Remove. No upper bound is enforced; stock sufficiency is the
// backend's call.
type SetQuantity struct {
	BookID   int
	Quantity int
}

// Clear empties the cart.
type Clear struct{}

// Apply is the pure transition function: the input cart is never mutated.
func Apply(c Cart, cmd Command) Cart {
	return cmd.apply(c)
}

func (cmd Add) apply(c Cart) Cart {
	items := make([]Item, len(c.Items))
	copy(items, c.Items)

	found := false
	for i := range items {
		if items[i].ID == cmd.Book.ID {
			items[i].Quantity++
			found = true
		}
	}
	if !found {
		items = append(items, Item{Book: cmd.Book, Quantity: 1})
	}

	return withTotals(items)
}

func (cmd Remove) apply(c Cart) Cart {
	items := make([]Item, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ID != cmd.BookID {
			items = append(items, it)
		}
	}

	return withTotals(items)
}

func (cmd SetQuantity) apply(c Cart) Cart {
	if cmd.Quantity <= 0 {
		return Remove{BookID: cmd.BookID}.apply(c)
	}

	items := make([]Item, len(c.Items))
	copy(items, c.Items)

	for i := range items {
		if items[i].ID == cmd.BookID {
			items[i].Quantity = cmd.Quantity
		}
	}

	return withTotals(items)
}

func (Clear) apply(Cart) Cart {
	return withTotals(nil)
}

// withTotals recomputes the derived totals from the line list. Totals are
// never carried independently of the lines; a missing price counts as zero.
func withTotals(items []Item) Cart {
	if items == nil {
		items = []Item{}
	}

	total := decimal.Zero
	count := 0
	for _, it := range items {
		count += it.Quantity
		if it.Price != nil {
			total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}

	return Cart{Items: items, TotalItems: count, TotalAmount: total}
}
