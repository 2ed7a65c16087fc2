package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/storefront/internal/core/domain"
)

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	p := domain.Product{ID: "a", Name: "A", Price: decimal.NewFromInt(1)}

	_, err := New([]domain.Product{p, p})

	assert.ErrorIs(t, err, ErrDuplicateProduct)
}

func TestNew_RejectsInvalidProduct(t *testing.T) {
	_, err := New([]domain.Product{{ID: "a", Name: "A", Price: decimal.NewFromInt(-1)}})

	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
}

func TestGet(t *testing.T) {
	c := Default()

	p, ok := c.Get("3")
	require.True(t, ok)
	assert.Equal(t, "Converse", p.Brand)

	_, ok = c.Get("nope")
	assert.False(t, ok)
}

func TestFacets(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{All, "Running", "Casual", "Skate", "Basketball", "Kids"}, c.Categories())
	assert.Equal(t, []string{All, "Nike", "Adidas", "Converse", "Vans", "Asics", "Reebok", "Puma", "New Balance"}, c.Brands())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `[{"id":"x1","name":"Runner","brand":"Acme","price":49.5,"category":"Running","sizes":[9,9.5],"colors":["Red"],"rating":4.1,"reviews":3}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)

	p, ok := c.Get("x1")
	require.True(t, ok)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("49.5")))
	assert.True(t, p.HasSize(9.5))
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":`), 0o600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
