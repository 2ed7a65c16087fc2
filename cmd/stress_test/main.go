package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rl1809/storefront/internal/app"
	"github.com/rl1809/storefront/internal/config"
	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/core/service"
	"github.com/rl1809/storefront/internal/logging"
)

const (
	productID     = "1"
	totalRequests = 200
	perRequest    = 2
)

// Hammers one cart line and one checkout concurrently and verifies that
// merges are not lost and the cart settles into exactly one order.
func main() {
	ctx := context.Background()
	logger := logging.New(os.Stderr, "warn", true)

	cfg, err := config.Load("")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		a.Close()
		logger.Fatal().Err(err).Msg("failed to build storefront")
	}
	defer a.Close()

	if _, err := a.Store.Auth.Login(ctx, domain.Credentials{Email: "stress@example.com", Password: "x"}); err != nil {
		logger.Fatal().Err(err).Msg("login failed")
	}
	a.Store.Cart.Clear(ctx)
	before := len(a.Store.Orders.All())

	var successCount atomic.Int32
	var failCount atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	sizes := []float64{8, 9, 10}
	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			_, err := a.Store.AddToCart(ctx, service.AddToCartRequest{
				ProductID: productID,
				Size:      sizes[i%len(sizes)],
				Quantity:  perRequest,
			})
			if err == nil {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(start)

	success := successCount.Load()
	fail := failCount.Load()
	lines := len(a.Store.Cart.Items())
	units := a.Store.Cart.Count()

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Cart Lines:       %d\n", lines)
	fmt.Printf("Cart Units:       %d\n", units)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if fail == 0 && lines == len(sizes) && units == totalRequests*perRequest {
		fmt.Printf("PASS: %d units merged into %d lines\n", units, lines)
	} else {
		fmt.Printf("FAIL: Expected %d units in %d lines, got %d in %d\n",
			totalRequests*perRequest, len(sizes), units, lines)
	}

	// Race several checkouts for the same cart; only one may win.
	addr := domain.ShippingAddress{Address: "1 Main St", City: "Springfield", ZipCode: "12345", Phone: "555-0100"}
	payment := domain.PaymentDetails{CardNumber: "4111111111111111", CardName: "Stress", Expiry: "12/30", CVV: "123"}

	var placed atomic.Int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := a.Store.PlaceOrder(ctx, addr, payment); err == nil {
				placed.Add(1)
			}
		}()
	}
	wg.Wait()

	newOrders := len(a.Store.Orders.All()) - before
	if placed.Load() == 1 && newOrders == 1 && a.Store.Cart.IsEmpty() {
		fmt.Println("PASS: Exactly 1 order placed, cart cleared")
	} else {
		fmt.Printf("FAIL: Expected 1 order, got %d placed / %d stored\n", placed.Load(), newOrders)
	}
}
