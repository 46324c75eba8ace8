package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ardanlabs/conf/v3"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/irsalhamdi/bookstore-admin/client"
	"github.com/irsalhamdi/bookstore-admin/client/creds"
	"github.com/irsalhamdi/bookstore-admin/config"
	"github.com/irsalhamdi/bookstore-admin/core/book"
	"github.com/irsalhamdi/bookstore-admin/core/cart"
	"github.com/irsalhamdi/bookstore-admin/core/customer"
	"github.com/irsalhamdi/bookstore-admin/core/order"
)

const usage = `usage:
  bookstore login <token> | logout
  bookstore books list [page [size]]
  bookstore books get|delete <id>
  bookstore books create <title> <author> [price [stock]]
  bookstore books update <id> <title> <author> [price [stock]]
  bookstore customers list
  bookstore customers get|delete <id>
  bookstore customers create <name> [email]
  bookstore customers update <id> <name> [email]
  bookstore order <customerID> <bookID:qty> [<bookID:qty> ...]`

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if err := Run(log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func Run(logger *logrus.Logger) error {
	const prefix = "BOOKSTORE"
	var cfg struct {
		config.Config
		Args conf.Args
	}

	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	tokenPath := cfg.API.TokenFile
	if !filepath.IsAbs(tokenPath) {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}
		tokenPath = filepath.Join(home, tokenPath)
	}
	store := &creds.File{Path: tokenPath}

	cl := client.New(client.Config{
		URL:     cfg.API.URL,
		Timeout: cfg.API.Timeout,
		Creds:   store,
		Log:     logger,
		OnUnauthorized: func() {
			logger.Warn("session rejected, run `bookstore login <token>` again")
		},
	})

	a := &app{
		log:       logger,
		creds:     store,
		books:     book.NewStore(book.NewService(cl)),
		customers: customer.NewStore(customer.NewService(cl)),
		cart:      cart.NewStore(order.NewService(cl)),
	}

	ctx := context.Background()

	switch cfg.Args.Num(0) {
	case "login":
		return a.login(cfg.Args.Num(1))
	case "logout":
		return a.creds.Clear()
	case "books":
		return a.runBooks(ctx, cfg.Args)
	case "customers":
		return a.runCustomers(ctx, cfg.Args)
	case "order":
		return a.runOrder(ctx, cfg.Args)
	default:
		fmt.Println(usage)
		return fmt.Errorf("unknown command %q", cfg.Args.Num(0))
	}
}

type app struct {
	log       logrus.FieldLogger
	creds     creds.Store
	books     *book.Store
	customers *customer.Store
	cart      *cart.Store
}

func (a *app) login(token string) error {
	if token == "" {
		return errors.New("login needs a token")
	}
	return a.creds.Set(token)
}

func (a *app) runBooks(ctx context.Context, args conf.Args) error {
	switch args.Num(1) {
	case "list":
		page := num(args.Num(2), 0)
		size := num(args.Num(3), book.DefaultPageSize)
		if err := a.books.Load(ctx, page, size); err != nil {
			return err
		}

		state := a.books.State()
		a.log.Infof("page %d/%d, %d books total", state.Page+1, state.TotalPages, state.TotalElements)
		return print(state.Books)

	case "get":
		if err := a.books.LoadOne(ctx, num(args.Num(2), 0)); err != nil {
			return err
		}
		return print(a.books.State().Selected)

	case "create":
		nb, err := bookPayload(args, 2)
		if err != nil {
			return err
		}
		bk, err := a.books.Create(ctx, nb)
		if err != nil {
			return err
		}
		return print(bk)

	case "update":
		up, err := bookPayload(args, 3)
		if err != nil {
			return err
		}
		bk, err := a.books.Update(ctx, num(args.Num(2), 0), up)
		if err != nil {
			return err
		}
		return print(bk)

	case "delete":
		return a.books.Delete(ctx, num(args.Num(2), 0))

	default:
		fmt.Println(usage)
		return fmt.Errorf("unknown books command %q", args.Num(1))
	}
}

func (a *app) runCustomers(ctx context.Context, args conf.Args) error {
	switch args.Num(1) {
	case "list":
		if err := a.customers.Load(ctx); err != nil {
			return err
		}
		return print(a.customers.State().Customers)

	case "get":
		if err := a.customers.LoadOne(ctx, num(args.Num(2), 0)); err != nil {
			return err
		}
		return print(a.customers.State().Selected)

	case "create":
		cst, err := a.customers.Create(ctx, customer.CustomerNew{
			Name:  args.Num(2),
			Email: args.Num(3),
		})
		if err != nil {
			return err
		}
		return print(cst)

	case "update":
		cst, err := a.customers.Update(ctx, num(args.Num(2), 0), customer.CustomerNew{
			Name:  args.Num(3),
			Email: args.Num(4),
		})
		if err != nil {
			return err
		}
		return print(cst)

	case "delete":
		return a.customers.Delete(ctx, num(args.Num(2), 0))

	default:
		fmt.Println(usage)
		return fmt.Errorf("unknown customers command %q", args.Num(1))
	}
}

// order fills the cart from bookID:qty arguments, fetching each book so the
// lines carry real titles and prices, then checks out.
func (a *app) runOrder(ctx context.Context, args conf.Args) error {
	customerID := num(args.Num(1), 0)
	if customerID == 0 {
		fmt.Println(usage)
		return errors.New("order needs a customer id")
	}

	for i := 2; ; i++ {
		arg := args.Num(i)
		if arg == "" {
			break
		}

		id, qty, err := parseItem(arg)
		if err != nil {
			return err
		}

		if err := a.books.LoadOne(ctx, id); err != nil {
			return err
		}

		a.cart.Dispatch(cart.Add{Book: *a.books.State().Selected})
		if qty != 1 {
			a.cart.Dispatch(cart.SetQuantity{BookID: id, Quantity: qty})
		}
	}

	if len(a.cart.Cart().Items) == 0 {
		return errors.New("order needs at least one bookID:qty item")
	}

	placed, err := a.cart.PlaceOrder(ctx, customerID)
	if err != nil {
		return err
	}

	a.log.Infof("order %d placed, total %s", placed.ID, placed.TotalAmount)
	return print(placed)
}

func parseItem(arg string) (id int, qty int, err error) {
	part := strings.SplitN(arg, ":", 2)
	if len(part) != 2 {
		return 0, 0, fmt.Errorf("item %q is not of the form bookID:qty", arg)
	}

	id, err = strconv.Atoi(part[0])
	if err != nil {
		return 0, 0, fmt.Errorf("item %q: bad book id", arg)
	}
	qty, err = strconv.Atoi(part[1])
	if err != nil {
		return 0, 0, fmt.Errorf("item %q: bad quantity", arg)
	}

	return id, qty, nil
}

func bookPayload(args conf.Args, from int) (book.BookNew, error) {
	nb := book.BookNew{
		Title:  args.Num(from),
		Author: args.Num(from + 1),
	}

	if raw := args.Num(from + 2); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return book.BookNew{}, fmt.Errorf("bad price %q: %w", raw, err)
		}
		nb.Price = &price
	}
	if raw := args.Num(from + 3); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return book.BookNew{}, fmt.Errorf("bad stock %q: %w", raw, err)
		}
		nb.Stock = &stock
	}

	return nb, nil
}

func num(arg string, fallback int) int {
	if arg == "" {
		return fallback
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fallback
	}
	return n
}

func print(data interface{}) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal output: %w", err)
	}

	fmt.Println(string(out))
	return nil
}
