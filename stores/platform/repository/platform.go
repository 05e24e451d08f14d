package repository

import (
	"math/big"
	"sync"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/platform"
)

type platformRepo struct {
	mu  sync.RWMutex
	cfg platform.Config
}

// New seeds the platform configuration. The settlement engine owns this
// state in process; it never leaves memory, so a failed call can never leave
// it half written.
func New(owner, feeRecipient domain.Address, feeNumerator int64, creationFee *big.Int) platform.Repo {
	return &platformRepo{
		cfg: platform.Config{
			Owner:        owner.ToLower(),
			FeeRecipient: feeRecipient.ToLower(),
			FeeNumerator: feeNumerator,
			CreationFee:  new(big.Int).Set(creationFee),
		},
	}
}

func (r *platformRepo) Get(c ctx.Ctx) (*platform.Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg := r.cfg
	cfg.CreationFee = new(big.Int).Set(r.cfg.CreationFee)
	return &cfg, nil
}

func (r *platformRepo) SetFeeInfo(c ctx.Ctx, recipient domain.Address, numerator int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg.FeeRecipient = recipient.ToLower()
	r.cfg.FeeNumerator = numerator
	return nil
}
