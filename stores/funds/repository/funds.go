package repository

import (
	"math/big"
	"sync"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/funds"
)

type fundsRepo struct {
	mu       sync.RWMutex
	balances map[domain.Address]*big.Int
}

// New creates the in-process balance ledger. Balances are exact integers and
// every debit checks coverage before mutating, so a failed call leaves the
// ledger untouched.
func New() funds.Repo {
	return &fundsRepo{balances: map[domain.Address]*big.Int{}}
}

func (r *fundsRepo) BalanceOf(c ctx.Ctx, addr domain.Address) (*big.Int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if bal, ok := r.balances[addr.ToLower()]; ok {
		return new(big.Int).Set(bal), nil
	}
	return big.NewInt(0), nil
}

func (r *fundsRepo) Credit(c ctx.Ctx, addr domain.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return domain.ErrInvalidAmount
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := addr.ToLower()
	bal, ok := r.balances[key]
	if !ok {
		bal = big.NewInt(0)
		r.balances[key] = bal
	}
	bal.Add(bal, amount)
	return nil
}

func (r *fundsRepo) Debit(c ctx.Ctx, addr domain.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return domain.ErrInvalidAmount
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := addr.ToLower()
	bal, ok := r.balances[key]
	if !ok || bal.Cmp(amount) < 0 {
		return domain.ErrInsufficientFunds
	}
	bal.Sub(bal, amount)
	return nil
}
