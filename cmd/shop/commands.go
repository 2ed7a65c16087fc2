package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rl1809/storefront/internal/app"
	"github.com/rl1809/storefront/internal/core/catalog"
	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/core/service"
)

type opener func(ctx context.Context, configPath string) (*app.App, error)

type shop struct {
	open       opener
	configPath string
	email      string
	name       string
	app        *app.App
}

// newRootCmd returns the command tree and a func releasing whatever the
// command opened.
func newRootCmd(open opener) (*cobra.Command, func() error) {
	s := &shop{open: open}

	root := &cobra.Command{
		Use:          "shop",
		Short:        "Browse the catalog, manage the cart and place orders",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.start(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&s.configPath, "config", "", "config file")
	root.PersistentFlags().StringVar(&s.email, "email", "", "log in as this email before running the command")
	root.PersistentFlags().StringVar(&s.name, "name", "", "display name for the login")

	root.AddCommand(
		s.productsCmd(),
		s.showCmd(),
		s.addCmd(),
		s.updateCmd(),
		s.removeCmd(),
		s.cartCmd(),
		s.checkoutCmd(),
		s.ordersCmd(),
	)
	return root, s.close
}

func (s *shop) start(ctx context.Context) error {
	a, err := s.open(ctx, s.configPath)
	s.app = a
	if err != nil {
		return err
	}

	if s.email == "" {
		return nil
	}
	_, err = a.Store.Auth.Login(ctx, domain.Credentials{Email: s.email, Password: "cli", Name: s.name})
	return err
}

func (s *shop) close() error {
	if s.app == nil {
		return nil
	}
	return s.app.Close()
}

func (s *shop) productsCmd() *cobra.Command {
	var query, category, brand, price, sort string

	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket, err := catalog.ParsePriceBucket(price)
			if err != nil {
				return err
			}
			key, err := catalog.ParseSortKey(sort)
			if err != nil {
				return err
			}

			products := s.app.Store.Products(catalog.Filter{
				Query:    query,
				Category: category,
				Brand:    brand,
				Price:    bucket,
				Sort:     key,
			})
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "ID\tNAME\tBRAND\tCATEGORY\tPRICE\tRATING")
			for _, p := range products {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1f\n", p.ID, p.Name, p.Brand, p.Category, money(p.Price.StringFixed(2)), p.Rating)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d products found\n", len(products))
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "search name, brand and category")
	cmd.Flags().StringVar(&category, "category", catalog.All, "category")
	cmd.Flags().StringVar(&brand, "brand", catalog.All, "brand")
	cmd.Flags().StringVar(&price, "price", string(catalog.PriceAll), "price bucket: All, under50, 50-100, 100-150, over150")
	cmd.Flags().StringVar(&sort, "sort", string(catalog.SortFeatured), "featured, price-low, price-high or rating")
	return cmd
}

func (s *shop) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := s.app.Store.Product(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s (%s)\n", p.Brand, p.Name, p.Category)
			fmt.Fprintf(out, "Price:   %s", money(p.Price.StringFixed(2)))
			if pct, ok := p.DiscountPercent(); ok {
				fmt.Fprintf(out, " (was %s, -%d%%)", money(p.OriginalPrice.StringFixed(2)), pct)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Rating:  %.1f (%d reviews)\n", p.Rating, p.Reviews)
			fmt.Fprintf(out, "Sizes:   %s\n", joinSizes(p.Sizes))
			fmt.Fprintf(out, "Colors:  %s\n", strings.Join(p.Colors, ", "))
			fmt.Fprintln(out, p.Description)
			return nil
		},
	}
}

type lineFlags struct {
	size     float64
	color    string
	quantity int
}

func (f *lineFlags) register(cmd *cobra.Command, withQuantity bool) {
	cmd.Flags().Float64Var(&f.size, "size", 0, "shoe size")
	cmd.Flags().StringVar(&f.color, "color", "", "color, defaults to the first listed")
	if withQuantity {
		cmd.Flags().IntVar(&f.quantity, "qty", 1, "quantity")
	}
}

// key resolves the line for productID, defaulting the color the way the
// detail view does.
func (s *shop) key(productID string, f lineFlags) (domain.LineKey, error) {
	p, err := s.app.Store.Product(productID)
	if err != nil {
		return domain.LineKey{}, err
	}
	color := f.color
	if color == "" {
		color = p.DefaultColor()
	}
	return domain.NewLineKey(p.ID, f.size, color), nil
}

func (s *shop) addCmd() *cobra.Command {
	var f lineFlags
	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := s.app.Store.AddToCart(cmd.Context(), service.AddToCartRequest{
				ProductID: args[0],
				Size:      f.size,
				Color:     f.color,
				Quantity:  f.quantity,
			})
			if err != nil {
				return friendly(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d x %s (size %v, %s) to cart\n",
				item.Quantity, item.Product.Name, item.Size, item.Color)
			return nil
		},
	}
	f.register(cmd, true)
	return cmd
}

func (s *shop) updateCmd() *cobra.Command {
	var f lineFlags
	cmd := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Set the quantity of a cart line; 0 removes it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := s.key(args[0], f)
			if err != nil {
				return err
			}
			if err := s.app.Store.UpdateQuantity(cmd.Context(), key, f.quantity); err != nil {
				return friendly(err)
			}
			return s.printCart(cmd.OutOrStdout())
		},
	}
	f.register(cmd, true)
	return cmd
}

func (s *shop) removeCmd() *cobra.Command {
	var f lineFlags
	cmd := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := s.key(args[0], f)
			if err != nil {
				return err
			}
			if err := s.app.Store.RemoveFromCart(cmd.Context(), key); err != nil {
				return friendly(err)
			}
			return s.printCart(cmd.OutOrStdout())
		},
	}
	f.register(cmd, false)
	return cmd
}

func (s *shop) cartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.printCart(cmd.OutOrStdout())
		},
	}
}

func (s *shop) printCart(out io.Writer) error {
	summary, err := s.app.Store.CartSummary()
	if err != nil {
		return friendly(err)
	}
	if len(summary.Items) == 0 {
		fmt.Fprintln(out, "Your cart is empty")
		return nil
	}

	w := newTable(out)
	fmt.Fprintln(w, "ID\tNAME\tSIZE\tCOLOR\tQTY\tLINE TOTAL")
	for _, item := range summary.Items {
		fmt.Fprintf(w, "%s\t%s\t%v\t%s\t%d\t%s\n", item.Product.ID, item.Product.Name, item.Size, item.Color, item.Quantity, money(item.LineTotal().StringFixed(2)))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	printQuote(out, summary.Quote)
	return nil
}

func printQuote(out io.Writer, q service.Quote) {
	fmt.Fprintf(out, "Subtotal:  %s\n", money(q.Subtotal.StringFixed(2)))
	if q.Shipping.IsZero() {
		fmt.Fprintln(out, "Shipping:  FREE")
	} else {
		fmt.Fprintf(out, "Shipping:  %s (add %s for free shipping)\n", money(q.Shipping.StringFixed(2)), money(q.FreeShippingRemaining.StringFixed(2)))
	}
	fmt.Fprintf(out, "Tax:       %s\n", money(q.Tax.StringFixed(2)))
	fmt.Fprintf(out, "Total:     %s\n", money(q.GrandTotal.StringFixed(2)))
}

func (s *shop) checkoutCmd() *cobra.Command {
	var addr domain.ShippingAddress
	var payment domain.PaymentDetails

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			quote, err := s.app.Store.Checkout.Begin()
			if err != nil {
				return friendly(err)
			}
			order, err := s.app.Store.PlaceOrder(cmd.Context(), addr, payment)
			if err != nil {
				return friendly(err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Order #%s placed. Status: %s\n", order.ID, order.Status)
			printQuote(out, quote)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&addr.Name, "ship-name", "", "recipient, defaults to the logged-in user")
	fl.StringVar(&addr.Address, "address", "", "street address")
	fl.StringVar(&addr.City, "city", "", "city")
	fl.StringVar(&addr.ZipCode, "zip", "", "zip code")
	fl.StringVar(&addr.Phone, "phone", "", "phone")
	fl.StringVar(&payment.CardNumber, "card", "", "card number")
	fl.StringVar(&payment.CardName, "card-name", "", "name on card")
	fl.StringVar(&payment.Expiry, "expiry", "", "MM/YY")
	fl.StringVar(&payment.CVV, "cvv", "", "cvv")
	return cmd
}

func (s *shop) ordersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List your orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := s.app.Store.MyOrders()
			if err != nil {
				return friendly(err)
			}
			out := cmd.OutOrStdout()
			if len(orders) == 0 {
				fmt.Fprintln(out, "No orders yet")
				return nil
			}
			w := newTable(out)
			fmt.Fprintln(w, "ORDER\tDATE\tITEMS\tTOTAL\tSTATUS")
			for _, o := range orders {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", o.ID, o.CreatedAt.Format("2006-01-02"), o.ItemCount(), money(o.Total.StringFixed(2)), o.Status)
			}
			return w.Flush()
		},
	}
}

func friendly(err error) error {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return fmt.Errorf("%w: pass --email to log in", err)
	case errors.Is(err, service.ErrEmptyCart):
		return fmt.Errorf("%w: add something with 'shop add' first", err)
	}
	return err
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func money(s string) string {
	return "$" + s
}

func joinSizes(sizes []float64) string {
	parts := make([]string, len(sizes))
	for i, size := range sizes {
		parts[i] = fmt.Sprint(size)
	}
	return strings.Join(parts, ", ")
}
