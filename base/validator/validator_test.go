package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidAddress(t *testing.T) {
	req := require.New(t)

	req.True(IsValidAddress("0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d"))
	req.False(IsValidAddress("not-an-address"))
	req.False(IsValidAddress("0x123"))
	req.False(IsValidAddress(""))
}
