package money_test

import (
	"math"
	"testing"

	"go-cart-api/internal/pkg/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestMoney_New(t *testing.T) {
	m, err := money.New(10000)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), m.Int64())

	_, err = money.New(-1)
	assert.ErrorIs(t, err, money.ErrNegative)
}

func TestMoney_Parse(t *testing.T) {
	cases := map[string]int64{
		"10000":    10000,
		"10,000":   10000,
		"10,000원":  10000,
		"₩ 9,900":  9900,
		"1234.5":   1235,
		" 3000 ":   3000,
	}
	for in, want := range cases {
		m, err := money.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, m.Int64(), in)
	}

	for _, bad := range []string{"", "NaN", "abc", "-500"} {
		_, err := money.Parse(bad)
		assert.Error(t, err, bad)
	}
}

func TestMoney_Sub(t *testing.T) {
	t.Run("normal", func(t *testing.T) {
		res, clamped := money.Money(50000).Sub(20000)
		assert.Equal(t, money.Money(30000), res)
		assert.False(t, clamped)
	})

	t.Run("clamped_at_zero", func(t *testing.T) {
		res, clamped := money.Money(50000).Sub(70000)
		assert.Equal(t, money.Zero, res)
		assert.True(t, clamped)
	})
}

func TestMoney_Mul(t *testing.T) {
	assert.Equal(t, money.Money(60000), money.Money(10000).Mul(6))
	assert.Equal(t, money.Zero, money.Money(10000).Mul(0))
	assert.Equal(t, money.Zero, money.Money(10000).Mul(-2))

	t.Run("saturates", func(t *testing.T) {
		assert.Equal(t, money.Max, money.Money(10000).Mul(1_000_000_000_000_000))
		assert.Equal(t, money.Max, money.Max.Mul(2))
		assert.Equal(t, money.Money(math.MaxInt64-1), money.Money(math.MaxInt64/2).Mul(2))
	})
}

func TestMoney_Add(t *testing.T) {
	assert.Equal(t, money.Money(13000), money.Money(10000).Add(3000))

	t.Run("saturates", func(t *testing.T) {
		assert.Equal(t, money.Max, money.Max.Add(1))
		assert.Equal(t, money.Max, money.Money(math.MaxInt64-10).Add(3000))
		assert.Equal(t, money.Max, money.Max.Add(money.Max))
	})
}

func TestMoney_FromDecimalSaturates(t *testing.T) {
	m, err := money.Parse("100000000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, money.Max, m)
}

func TestMoney_PercentOff(t *testing.T) {
	t.Run("ten_percent", func(t *testing.T) {
		assert.Equal(t, money.Money(90000), money.Money(100000).PercentOff(decimal.NewFromInt(10)))
	})

	t.Run("rounds_half_up", func(t *testing.T) {
		// 9,999 * 0.85 = 8,499.15
		assert.Equal(t, money.Money(8499), money.Money(9999).PercentOff(decimal.NewFromInt(15)))
		// 15 * 0.5 = 7.5
		assert.Equal(t, money.Money(8), money.Money(15).PercentOff(decimal.NewFromInt(50)))
	})

	t.Run("clamps_percentage", func(t *testing.T) {
		assert.Equal(t, money.Zero, money.Money(1000).PercentOff(decimal.NewFromInt(150)))
		assert.Equal(t, money.Money(1000), money.Money(1000).PercentOff(decimal.NewFromInt(-5)))
	})
}

func TestMoney_Format(t *testing.T) {
	assert.Equal(t, "10,000원", money.Money(10000).Format(language.Korean))
	assert.Equal(t, "₩1,234,567", money.Money(1234567).Format(language.English))
	assert.Equal(t, "0원", money.Zero.Format(language.Korean))
}
