package usecase

import (
	"math/big"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/base/log"
	"github.com/heritage-x/goapi/base/sequencer"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/funds"
)

type impl struct {
	repo funds.Repo
	seq  *sequencer.Sequencer
}

func New(repo funds.Repo, seq *sequencer.Sequencer) funds.Usecase {
	return &impl{repo: repo, seq: seq}
}

func (im *impl) Deposit(c ctx.Ctx, addr domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}
	return im.seq.Do(c, func() error {
		return im.repo.Credit(c, addr, amount)
	})
}

func (im *impl) Withdraw(c ctx.Ctx, addr domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}
	return im.seq.Do(c, func() error {
		return im.repo.Debit(c, addr, amount)
	})
}

func (im *impl) BalanceOf(c ctx.Ctx, addr domain.Address) (*big.Int, error) {
	return im.repo.BalanceOf(c, addr)
}

func (im *impl) Transfer(c ctx.Ctx, from, to domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}
	return im.seq.Do(c, func() error {
		if err := im.repo.Debit(c, from, amount); err != nil {
			return err
		}
		if err := im.repo.Credit(c, to, amount); err != nil {
			// credit on the in-process ledger cannot fail after a
			// successful debit; log loudly if it ever does
			c.WithFields(log.Fields{"err": err, "from": from, "to": to}).Error("fundsRepo.Credit failed after debit")
			return err
		}
		return nil
	})
}
