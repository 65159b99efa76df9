package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/ledger/money"
)

func TestParse_RejectsNegative(t *testing.T) {
	_, err := money.Parse("-1.00")
	require.ErrorIs(t, err, money.ErrNegative)
}

func TestParse_RejectsGarbage(t *testing.T) {
	_, err := money.Parse("not-a-number")
	require.ErrorIs(t, err, money.ErrSyntax)
}

func TestParse_BankersRounding(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.03225", "1.0322"}, // half-even down: 2 is even
		{"1.03235", "1.0324"}, // half-even up: 4 is even
		{"1.00005", "1.0000"},
		{"1.00015", "1.0002"},
		{"5", "5.0000"},
		{"0", "0.0000"},
	}
	for _, tc := range cases {
		m, err := money.Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, m.Text(), tc.in)
	}
}

func TestAddSub_RoundTrip(t *testing.T) {
	a := money.MustParse("10.5")
	b := money.MustParse("2.0")

	sum, err := money.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, "12.5000", sum.Text())

	diff, err := money.Sub(sum, b)
	require.NoError(t, err)
	assert.True(t, diff.Equal(a))
}

func TestZeroIsDefault(t *testing.T) {
	var m money.Money
	assert.True(t, m.IsZero())
	assert.Equal(t, "0.0000", m.Text())
	assert.True(t, m.Equal(money.Zero))
}

func TestCmp(t *testing.T) {
	small := money.MustParse("1.0")
	big := money.MustParse("2.0")
	assert.Equal(t, -1, money.Cmp(small, big))
	assert.Equal(t, 1, money.Cmp(big, small))
	assert.Equal(t, 0, money.Cmp(small, small))
	assert.True(t, money.GreaterThanOrEqual(big, small))
	assert.False(t, money.GreaterThanOrEqual(small, big))
}

func TestToOutputNumber(t *testing.T) {
	m := money.MustParse("10.5")
	assert.InDelta(t, 10.5, m.ToOutputNumber(), 1e-9)
}
