package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront-sync/internal/client"
	"github.com/nikolayk812/storefront-sync/internal/config"
	"github.com/nikolayk812/storefront-sync/internal/domain"
	"github.com/nikolayk812/storefront-sync/internal/session"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp(log, os.Stdout).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))

		var exitCoder cli.ExitCoder
		if errors.As(err, &exitCoder) {
			os.Exit(exitCoder.ExitCode())
		}
		os.Exit(1)
	}
}

func newApp(log *logrus.Logger, out io.Writer) *cli.App {
	return &cli.App{
		Name:  "storefront",
		Usage: "storefront command line client",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-url", Usage: "API base URL (overrides STOREFRONT_API_URL)"},
			&cli.StringFlag{Name: "token", Usage: "bearer token (overrides STOREFRONT_TOKEN)"},
			&cli.DurationFlag{Name: "timeout", Usage: "request timeout (overrides STOREFRONT_API_TIMEOUT)"},
		},
		Commands: []*cli.Command{
			cartCommand(log, out),
			favoritesCommand(log, out),
			productsCommand(log, out),
			ordersCommand(log, out),
		},
		// errors are reported by main
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func loadConfig(c *cli.Context, log *logrus.Logger) (config.Client, error) {
	cfg, err := config.LoadClient(nil)
	if err != nil {
		return config.Client{}, fmt.Errorf("config.LoadClient: %w", err)
	}
	if v := c.String("api-url"); v != "" {
		cfg.APIURL = v
	}
	if v := c.String("token"); v != "" {
		cfg.Token = v
	}
	if v := c.Duration("timeout"); v > 0 {
		cfg.Timeout = v
	}
	log.SetLevel(cfg.LogLevel)
	return cfg, nil
}

func withSession(log *logrus.Logger, fn func(c *cli.Context, s *session.Session) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c, log)
		if err != nil {
			return err
		}
		if cfg.Token == "" {
			return cli.Exit("not signed in: set STOREFRONT_TOKEN or pass --token", 2)
		}

		s, err := session.Open(c.Context, cfg, client.StaticToken(cfg.Token), log)
		if err != nil {
			return fmt.Errorf("session.Open: %w", err)
		}
		defer s.Close()

		return fn(c, s)
	}
}

func cartCommand(log *logrus.Logger, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "show or change the cart",
		Action: withSession(log, func(c *cli.Context, s *session.Session) error {
			printCart(out, s)
			return nil
		}),
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				ArgsUsage: "<product-id> [quantity]",
				Action: withSession(log, func(c *cli.Context, s *session.Session) error {
					id, qty, err := productAndQuantity(c, 1)
					if err != nil {
						return err
					}
					if err := s.Cart.Add(c.Context, id, qty); err != nil {
						return err
					}
					printCart(out, s)
					return nil
				}),
			},
			{
				Name:      "update",
				ArgsUsage: "<product-id> <quantity>",
				Usage:     "set the quantity of a line; 0 removes it",
				Action: withSession(log, func(c *cli.Context, s *session.Session) error {
					if c.NArg() != 2 {
						return cli.Exit("update expects a product id and a quantity", 2)
					}
					id, qty, err := productAndQuantity(c, 0)
					if err != nil {
						return err
					}
					if err := s.Cart.UpdateQuantity(c.Context, id, qty); err != nil {
						return err
					}
					printCart(out, s)
					return nil
				}),
			},
			{
				Name:      "remove",
				ArgsUsage: "<product-id>",
				Action: withSession(log, func(c *cli.Context, s *session.Session) error {
					id, err := productID(c)
					if err != nil {
						return err
					}
					if err := s.Cart.Remove(c.Context, id); err != nil {
						return err
					}
					printCart(out, s)
					return nil
				}),
			},
			{
				Name: "clear",
				Action: withSession(log, func(c *cli.Context, s *session.Session) error {
					if err := s.Cart.Clear(c.Context); err != nil {
						return err
					}
					printCart(out, s)
					return nil
				}),
			},
		},
	}
}

func favoritesCommand(log *logrus.Logger, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "favorites",
		Usage: "show or change favorites",
		Action: withSession(log, func(c *cli.Context, s *session.Session) error {
			printFavorites(out, s)
			return nil
		}),
		Subcommands: []*cli.Command{
			{
				Name:      "toggle",
				ArgsUsage: "<product-id>",
				Action: withSession(log, func(c *cli.Context, s *session.Session) error {
					id, err := productID(c)
					if err != nil {
						return err
					}
					on, err := s.Favorites.Toggle(c.Context, id)
					if err != nil {
						return err
					}
					if on {
						fmt.Fprintf(out, "%s added to favorites\n", id)
					} else {
						fmt.Fprintf(out, "%s removed from favorites\n", id)
					}
					return nil
				}),
			},
			{
				Name: "clear",
				Action: withSession(log, func(c *cli.Context, s *session.Session) error {
					if err := s.Favorites.Clear(c.Context); err != nil {
						return err
					}
					printFavorites(out, s)
					return nil
				}),
			},
		},
	}
}

func productsCommand(log *logrus.Logger, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "browse the catalog",
		Subcommands: []*cli.Command{
			{
				Name: "search",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query"},
					&cli.StringFlag{Name: "brand"},
					&cli.StringFlag{Name: "category"},
					&cli.StringFlag{Name: "min-price"},
					&cli.StringFlag{Name: "max-price"},
					&cli.BoolFlag{Name: "featured"},
					&cli.StringFlag{Name: "sort-by", Usage: "price, created_at or capacity_percentage"},
					&cli.StringFlag{Name: "sort-dir", Usage: "asc or desc"},
					&cli.IntFlag{Name: "page"},
					&cli.IntFlag{Name: "per-page"},
				},
				Action: func(c *cli.Context) error {
					api, err := newClient(c, log)
					if err != nil {
						return err
					}
					params, err := searchParams(c)
					if err != nil {
						return err
					}
					page, err := api.Products.Search(c.Context, params)
					if err != nil {
						return err
					}
					printProducts(out, page.Items)
					fmt.Fprintf(out, "page %d of %d, %d products\n", page.CurrentPage, page.TotalPages, page.TotalItems)
					return nil
				},
			},
			{
				Name:      "get",
				ArgsUsage: "<product-id>",
				Action: func(c *cli.Context) error {
					id, err := productID(c)
					if err != nil {
						return err
					}
					api, err := newClient(c, log)
					if err != nil {
						return err
					}
					p, err := api.Products.Get(c.Context, id)
					if err != nil {
						return err
					}
					printProduct(out, p)
					return nil
				},
			},
			{
				Name:  "brands",
				Usage: "list the brands in the catalog",
				Action: func(c *cli.Context) error {
					api, err := newClient(c, log)
					if err != nil {
						return err
					}
					brands, err := api.Products.Brands(c.Context)
					if err != nil {
						return err
					}
					for _, b := range brands {
						fmt.Fprintln(out, b)
					}
					return nil
				},
			},
			{
				Name:      "compatible",
				Usage:     "list batteries that fit a device",
				ArgsUsage: "<device>",
				Action: func(c *cli.Context) error {
					device := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
					if device == "" {
						return cli.Exit("device is required", 2)
					}
					api, err := newClient(c, log)
					if err != nil {
						return err
					}
					products, err := api.Products.Compatible(c.Context, device)
					if err != nil {
						return err
					}
					if len(products) == 0 {
						fmt.Fprintf(out, "no batteries fit %s\n", device)
						return nil
					}
					printProducts(out, products)
					return nil
				},
			},
		},
	}
}

func ordersCommand(log *logrus.Logger, out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "orders",
		Usage: "list orders or check out the cart",
		Action: withSession(log, func(c *cli.Context, s *session.Session) error {
			orders, err := s.Orders(c.Context)
			if err != nil {
				return err
			}
			printOrders(out, orders)
			return nil
		}),
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				ArgsUsage: "<order-id>",
				Action: withSession(log, func(c *cli.Context, s *session.Session) error {
					order, err := s.Order(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					printOrder(out, order)
					return nil
				}),
			},
			{
				Name:  "checkout",
				Usage: "place an order for the whole cart",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "street", Required: true},
					&cli.StringFlag{Name: "city", Required: true},
					&cli.StringFlag{Name: "state", Required: true},
					&cli.StringFlag{Name: "zip", Required: true},
					&cli.StringFlag{Name: "country", Required: true},
					&cli.StringFlag{Name: "payment", Value: string(domain.PaymentCashOnDelivery),
						Usage: "cash_on_delivery, bank_transfer or mobile_money"},
				},
				Action: withSession(log, func(c *cli.Context, s *session.Session) error {
					order, err := s.Checkout(c.Context, domain.ShippingAddress{
						Street:  c.String("street"),
						City:    c.String("city"),
						State:   c.String("state"),
						ZipCode: c.String("zip"),
						Country: c.String("country"),
					}, domain.PaymentMethod(c.String("payment")))
					if order.ID != uuid.Nil {
						printOrder(out, order)
					}
					return err
				}),
			},
		},
	}
}

func newClient(c *cli.Context, log *logrus.Logger) (*client.Client, error) {
	cfg, err := loadConfig(c, log)
	if err != nil {
		return nil, err
	}

	api, err := client.New(cfg.APIURL,
		client.WithTimeout(cfg.Timeout),
		client.WithCredentials(client.StaticToken(cfg.Token)),
		client.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("client.New: %w", err)
	}
	return api, nil
}

func productID(c *cli.Context) (string, error) {
	id := strings.TrimSpace(c.Args().First())
	if id == "" {
		return "", cli.Exit("product id is required", 2)
	}
	return id, nil
}

func productAndQuantity(c *cli.Context, def int) (string, int, error) {
	id, err := productID(c)
	if err != nil {
		return "", 0, err
	}
	if c.NArg() < 2 {
		return id, def, nil
	}

	qty, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return "", 0, cli.Exit(fmt.Sprintf("quantity %q is not a number", c.Args().Get(1)), 2)
	}
	return id, qty, nil
}

func searchParams(c *cli.Context) (domain.SearchParams, error) {
	p := domain.SearchParams{
		Query:    c.String("query"),
		Brand:    c.String("brand"),
		Category: c.String("category"),
		SortBy:   domain.SortField(c.String("sort-by")),
		SortDir:  domain.SortDirection(c.String("sort-dir")),
		Page:     c.Int("page"),
		PerPage:  c.Int("per-page"),
	}

	for flag, dst := range map[string]**decimal.Decimal{"min-price": &p.MinPrice, "max-price": &p.MaxPrice} {
		v := c.String(flag)
		if v == "" {
			continue
		}
		d, err := domain.ParseAmount(v)
		if err != nil {
			return domain.SearchParams{}, cli.Exit(fmt.Sprintf("--%s: %v", flag, err), 2)
		}
		*dst = &d
	}

	if c.IsSet("featured") {
		featured := c.Bool("featured")
		p.IsFeatured = &featured
	}

	return p, nil
}

// describe renders API failures the way a user should read them.
func describe(err error) string {
	apiErr, ok := domain.AsAPIError(err)
	if !ok {
		return err.Error()
	}

	var b strings.Builder
	b.WriteString(apiErr.Message)
	if apiErr.IsConnectivity() {
		b.WriteString(" (check your connection and try again)")
	}
	for field, msgs := range apiErr.Errors {
		for _, msg := range msgs {
			fmt.Fprintf(&b, "\n  %s: %s", field, msg)
		}
	}
	return b.String()
}

func printCart(out io.Writer, s *session.Session) {
	snapshot := s.Cart.Snapshot()

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tNAME\tQTY\tUNIT\tSUBTOTAL")
	for _, item := range snapshot.Cart.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			item.ProductID, item.Name, item.Quantity, item.UnitPrice.StringFixed(2), item.Subtotal().StringFixed(2))
	}
	_ = w.Flush()

	fmt.Fprintf(out, "%d items, total %s\n", snapshot.ItemCount(), snapshot.TotalPrice())
}

func printFavorites(out io.Writer, s *session.Session) {
	ids := s.Favorites.ProductIDs()
	if len(ids) == 0 {
		fmt.Fprintln(out, "no favorites")
		return
	}
	for _, id := range ids {
		fmt.Fprintln(out, id)
	}
}

func printProducts(out io.Writer, products []domain.Product) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBRAND\tNAME\tPRICE\tCAPACITY")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d%%\n", p.ID, p.Brand, p.Name, p.Price.StringFixed(2), p.CapacityPercentage)
	}
	_ = w.Flush()
}

func printProduct(out io.Writer, p domain.Product) {
	fmt.Fprintf(out, "%s (%s)\n", p.Name, p.ID)
	fmt.Fprintf(out, "brand:    %s\n", p.Brand)
	fmt.Fprintf(out, "price:    %s", p.Price.StringFixed(2))
	if off := p.DiscountPercentage(); off.IsPositive() {
		fmt.Fprintf(out, " (%s%% off %s)", off, p.OriginalPrice.StringFixed(2))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "capacity: %d%%\n", p.CapacityPercentage)
	for _, f := range p.Features {
		fmt.Fprintf(out, "  - %s\n", f)
	}
}

func printOrders(out io.Writer, orders []domain.Order) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tTOTAL\tPLACED")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", o.ID, o.Status, o.Total, o.CreatedAt.Format("2006-01-02 15:04"))
	}
	_ = w.Flush()
}

func printOrder(out io.Writer, o domain.Order) {
	fmt.Fprintf(out, "order %s: %s, %s via %s\n", o.ID, o.Status, o.Total, o.PaymentMethod)
	for _, item := range o.Items {
		fmt.Fprintf(out, "  %d x %s @ %s\n", item.Quantity, item.Name, item.UnitPrice.StringFixed(2))
	}
}
