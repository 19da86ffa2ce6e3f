package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func i64(v int64) *int64 { return &v }

func decp(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestLineTotal(t *testing.T) {
	t.Run("plain unit pricing without box tier", func(t *testing.T) {
		total := LineTotal(3, dec("2.50"), nil, nil)
		assert.True(t, total.Equal(dec("7.50")), "got %s", total)
	})

	t.Run("exactly one box charges the box price", func(t *testing.T) {
		total := LineTotal(12, dec("1.00"), i64(12), decp("10.00"))
		assert.True(t, total.Equal(dec("10.00")), "got %s", total)
	})

	t.Run("one box plus one unit", func(t *testing.T) {
		total := LineTotal(13, dec("1.00"), i64(12), decp("10.00"))
		assert.True(t, total.Equal(dec("11.00")), "got %s", total)
	})

	t.Run("one unit short of a box stays on unit pricing", func(t *testing.T) {
		total := LineTotal(11, dec("1.00"), i64(12), decp("10.00"))
		assert.True(t, total.Equal(dec("11.00")), "got %s", total)
	})

	t.Run("multiple boxes with remainder", func(t *testing.T) {
		total := LineTotal(27, dec("1.50"), i64(12), decp("15.00"))
		// 2 boxes at 15.00 + 3 units at 1.50
		assert.True(t, total.Equal(dec("34.50")), "got %s", total)
	})

	t.Run("zero quantityPerBox falls back to unit pricing", func(t *testing.T) {
		total := LineTotal(5, dec("2.00"), i64(0), decp("10.00"))
		assert.True(t, total.Equal(dec("10.00")), "got %s", total)
	})

	t.Run("missing boxPrice falls back to unit pricing", func(t *testing.T) {
		total := LineTotal(5, dec("2.00"), i64(4), nil)
		assert.True(t, total.Equal(dec("10.00")), "got %s", total)
	})

	t.Run("non-positive boxPrice falls back to unit pricing", func(t *testing.T) {
		total := LineTotal(4, dec("2.00"), i64(4), decp("0"))
		assert.True(t, total.Equal(dec("8.00")), "got %s", total)
	})

	t.Run("zero quantity is zero", func(t *testing.T) {
		total := LineTotal(0, dec("2.00"), i64(4), decp("7.00"))
		assert.True(t, total.IsZero())
	})
}

func TestProductLineTotal(t *testing.T) {
	tenantID := uuid.New()

	product, err := NewProduct(tenantID, "COLA-330", "Cola 330ml", dec("1.20"), dec("0.70"))
	require.NoError(t, err)
	require.NoError(t, product.SetBoxTier(24, dec("24.00")))

	total := ProductLineTotal(product, 25)
	assert.True(t, total.Equal(dec("25.20")), "got %s", total)
}

func TestRoundAmount(t *testing.T) {
	assert.True(t, RoundAmount(dec("3.005")).Equal(dec("3.01")))
	assert.True(t, RoundAmount(dec("3.004")).Equal(dec("3.00")))
	assert.True(t, RoundAmount(dec("10")).Equal(dec("10")))
}
