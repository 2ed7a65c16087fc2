package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/port"
)

func TestCartAdd_MergesSameKey(t *testing.T) {
	ctx := context.Background()
	cart := NewCartService(ctx, newMockStateRepo(), nop)
	p := shoe("p1", "19.99")

	for _, q := range []int{1, 2, 3} {
		require.NoError(t, cart.Add(ctx, line(p, 9, "Black", q)))
	}

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 6, items[0].Quantity)
	assert.Equal(t, 6, cart.Count())
}

func TestCartAdd_DistinctKeysAppend(t *testing.T) {
	ctx := context.Background()
	cart := NewCartService(ctx, newMockStateRepo(), nop)
	p := shoe("p1", "19.99")

	require.NoError(t, cart.Add(ctx, line(p, 9, "Black", 1)))
	require.NoError(t, cart.Add(ctx, line(p, 10, "Black", 1)))
	require.NoError(t, cart.Add(ctx, line(p, 9, "White", 1)))
	require.NoError(t, cart.Add(ctx, line(shoe("p2", "5"), 9, "Black", 1)))

	assert.Len(t, cart.Items(), 4)
}

func TestCartAdd_RejectsInvalidItem(t *testing.T) {
	ctx := context.Background()
	repo := newMockStateRepo()
	cart := NewCartService(ctx, repo, nop)

	err := cart.Add(ctx, line(shoe("p1", "1"), 9, "Black", 0))

	assert.ErrorIs(t, err, domain.ErrInvalidCartItem)
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, repo.saves)
}

func TestCartRemove_ExcludesFromTotal(t *testing.T) {
	ctx := context.Background()
	cart := NewCartService(ctx, newMockStateRepo(), nop)
	a, b := shoe("a", "10.00"), shoe("b", "25.50")
	require.NoError(t, cart.Add(ctx, line(a, 9, "Black", 2)))
	require.NoError(t, cart.Add(ctx, line(b, 9, "Black", 1)))
	require.True(t, cart.Total().Equal(dec("45.50")))

	cart.Remove(ctx, domain.NewLineKey("b", 9, "Black"))

	assert.True(t, cart.Total().Equal(dec("20.00")), "got %s", cart.Total())
}

func TestCartRemove_MissingIsNoop(t *testing.T) {
	ctx := context.Background()
	cart := NewCartService(ctx, newMockStateRepo(), nop)
	require.NoError(t, cart.Add(ctx, line(shoe("a", "10"), 9, "Black", 1)))

	cart.Remove(ctx, domain.NewLineKey("a", 10, "Black"))
	cart.Remove(ctx, domain.NewLineKey("zzz", 9, "Black"))

	assert.Len(t, cart.Items(), 1)
}

func TestCartUpdateQuantity_ZeroEqualsRemove(t *testing.T) {
	ctx := context.Background()
	seed := func() *CartService {
		c := NewCartService(ctx, newMockStateRepo(), nop)
		require.NoError(t, c.Add(ctx, line(shoe("a", "10"), 9, "Black", 3)))
		require.NoError(t, c.Add(ctx, line(shoe("b", "20"), 8, "White", 1)))
		return c
	}
	key := domain.NewLineKey("a", 9, "Black")

	removed := seed()
	removed.Remove(ctx, key)
	updated := seed()
	updated.UpdateQuantity(ctx, key, 0)
	negative := seed()
	negative.UpdateQuantity(ctx, key, -4)

	assert.Equal(t, removed.Items(), updated.Items())
	assert.Equal(t, removed.Items(), negative.Items())
}

func TestCartUpdateQuantity_Replaces(t *testing.T) {
	ctx := context.Background()
	cart := NewCartService(ctx, newMockStateRepo(), nop)
	require.NoError(t, cart.Add(ctx, line(shoe("a", "10"), 9, "Black", 3)))

	cart.UpdateQuantity(ctx, domain.NewLineKey("a", 9, "Black"), 7)
	cart.UpdateQuantity(ctx, domain.NewLineKey("missing", 9, "Black"), 7)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestCartTotal_ExactSum(t *testing.T) {
	ctx := context.Background()
	cart := NewCartService(ctx, newMockStateRepo(), nop)
	assert.True(t, cart.Total().IsZero())

	require.NoError(t, cart.Add(ctx, line(shoe("a", "0.10"), 9, "Black", 3)))
	require.NoError(t, cart.Add(ctx, line(shoe("b", "19.99"), 9, "Black", 3)))

	assert.Equal(t, "60.27", cart.Total().StringFixed(2))
	assert.False(t, cart.Total().IsNegative())
}

func TestCartClear(t *testing.T) {
	ctx := context.Background()
	repo := newMockStateRepo()
	cart := NewCartService(ctx, repo, nop)
	require.NoError(t, cart.Add(ctx, line(shoe("a", "10"), 9, "Black", 1)))

	cart.Clear(ctx)

	assert.True(t, cart.IsEmpty())
	assert.JSONEq(t, `[]`, repo.raw(port.CartKey))
}

func TestCart_PersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	repo := newMockStateRepo()
	cart := NewCartService(ctx, repo, nop)
	require.NoError(t, cart.Add(ctx, line(shoe("a", "10"), 9, "Black", 2)))
	require.NoError(t, cart.Add(ctx, line(shoe("b", "12.5"), 8, "White", 1)))
	cart.UpdateQuantity(ctx, domain.NewLineKey("a", 9, "Black"), 5)
	assert.Equal(t, 3, repo.saves)

	reloaded := NewCartService(ctx, repo, nop)

	require.Len(t, reloaded.Items(), 2)
	assert.Equal(t, 5, reloaded.Items()[0].Quantity)
	assert.True(t, reloaded.Total().Equal(cart.Total()))
}

func TestCart_ReadsOriginalSnapshotShape(t *testing.T) {
	ctx := context.Background()
	repo := newMockStateRepo()
	repo.data[port.CartKey] = []byte(`[{"product":{"id":"1","name":"Runner","brand":"Nike","price":129.99,"sizes":[9,10],"colors":["Black"]},"size":9,"color":"Black","quantity":2}]`)

	cart := NewCartService(ctx, repo, nop)

	require.Len(t, cart.Items(), 1)
	assert.Equal(t, "259.98", cart.Total().StringFixed(2))
}

func TestCart_MalformedSnapshotStartsEmpty(t *testing.T) {
	tests := map[string]string{
		"not json":       `{"product":`,
		"wrong shape":    `{"cart":[]}`,
		"zero quantity":  `[{"product":{"id":"1","price":"1"},"size":9,"color":"Black","quantity":0}]`,
		"missing id":     `[{"product":{"price":"1"},"size":9,"color":"Black","quantity":1}]`,
		"duplicate line": `[{"product":{"id":"1","price":"1"},"size":9,"color":"Black","quantity":1},{"product":{"id":"1","price":"1"},"size":9,"color":"Black","quantity":1}]`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			repo := newMockStateRepo()
			repo.data[port.CartKey] = []byte(raw)

			cart := NewCartService(context.Background(), repo, nop)

			assert.True(t, cart.IsEmpty())
		})
	}
}

func TestCart_LoadErrorStartsEmpty(t *testing.T) {
	repo := newMockStateRepo()
	repo.loadErr = errBoom

	cart := NewCartService(context.Background(), repo, nop)

	assert.True(t, cart.IsEmpty())
}

func TestCart_SaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	repo := newMockStateRepo()
	repo.saveErr = errBoom
	cart := NewCartService(ctx, repo, nop)

	err := cart.Add(ctx, line(shoe("a", "10"), 9, "Black", 1))

	assert.NoError(t, err)
	assert.Equal(t, 1, cart.Count())
}

func TestCartSettle(t *testing.T) {
	ctx := context.Background()
	cart := NewCartService(ctx, newMockStateRepo(), nop)
	require.NoError(t, cart.Add(ctx, line(shoe("a", "10"), 9, "Black", 1)))

	err := cart.Settle(ctx, func([]domain.CartItem) error { return errBoom })
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, cart.Count())

	var got []domain.CartItem
	err = cart.Settle(ctx, func(items []domain.CartItem) error {
		got = items
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.True(t, cart.IsEmpty())
}

func TestCartAdd_Concurrent(t *testing.T) {
	ctx := context.Background()
	cart := NewCartService(ctx, newMockStateRepo(), nop)
	p := shoe("p1", "1.00")
	workers := 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := cart.Add(ctx, line(p, 9, "Black", 2)); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, workers*2, items[0].Quantity)
	assert.Equal(t, "100.00", cart.Total().StringFixed(2))
}
