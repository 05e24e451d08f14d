package bps

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCut(t *testing.T) {
	req := require.New(t)

	oneEther, ok := new(big.Int).SetString("1000000000000000000", 10)
	req.True(ok)

	cases := []struct {
		name      string
		amount    *big.Int
		numerator int64
		want      string
	}{
		{"5% of 1 ether", oneEther, 500, "50000000000000000"},
		{"2.5% of 1 ether", oneEther, 250, "25000000000000000"},
		{"zero rate", oneEther, 0, "0"},
		{"full rate", oneEther, 10000, "1000000000000000000"},
		{"floors towards zero", big.NewInt(9999), 1, "0"},
		{"one wei over the floor boundary", big.NewInt(10001), 1, "1"},
		{"small amount", big.NewInt(3), 5000, "1"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Cut(c.amount, c.numerator)
			require.Equal(t, c.want, got.String())
		})
	}
}

func TestCutDoesNotMutateInput(t *testing.T) {
	amount := big.NewInt(12345)
	Cut(amount, 500)
	require.Equal(t, "12345", amount.String())
}

func TestValid(t *testing.T) {
	req := require.New(t)
	req.True(Valid(0, 10000))
	req.True(Valid(10000, 10000))
	req.True(Valid(1000, 1000))
	req.False(Valid(1001, 1000))
	req.False(Valid(10001, 10000))
	req.False(Valid(-1, 10000))
}
