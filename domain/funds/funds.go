package funds

import (
	"math/big"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
)

// Repo is the integer balance ledger backing all value movement. Amounts are
// wei-like non-negative integers; no floating point touches settlement.
type Repo interface {
	BalanceOf(c ctx.Ctx, addr domain.Address) (*big.Int, error)
	// Credit adds amount to addr's balance
	Credit(c ctx.Ctx, addr domain.Address, amount *big.Int) error
	// Debit removes amount from addr's balance, failing with
	// domain.ErrInsufficientFunds when the balance does not cover it
	Debit(c ctx.Ctx, addr domain.Address, amount *big.Int) error
}

type Usecase interface {
	Deposit(c ctx.Ctx, addr domain.Address, amount *big.Int) error
	Withdraw(c ctx.Ctx, addr domain.Address, amount *big.Int) error
	BalanceOf(c ctx.Ctx, addr domain.Address) (*big.Int, error)
	Transfer(c ctx.Ctx, from, to domain.Address, amount *big.Int) error
}
