package usecase

import (
	"math/big"

	"github.com/heritage-x/goapi/base/bps"
	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/base/log"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/platform"
)

type impl struct {
	repo platform.Repo
}

func New(repo platform.Repo) platform.Usecase {
	return &impl{repo: repo}
}

func (im *impl) GetFeeInfo(c ctx.Ctx) (*platform.FeeInfo, error) {
	cfg, err := im.repo.Get(c)
	if err != nil {
		c.WithFields(log.Fields{"err": err}).Error("platformRepo.Get failed")
		return nil, err
	}
	return &platform.FeeInfo{Recipient: cfg.FeeRecipient, Numerator: cfg.FeeNumerator}, nil
}

func (im *impl) SetFeeInfo(c ctx.Ctx, caller, recipient domain.Address, numerator int64) error {
	cfg, err := im.repo.Get(c)
	if err != nil {
		c.WithFields(log.Fields{"err": err}).Error("platformRepo.Get failed")
		return err
	}
	if !cfg.Owner.Equals(caller) {
		return domain.ErrNotPlatformOwner
	}
	if !bps.Valid(numerator, platform.MaxFeeNumerator) {
		return domain.ErrPlatformFeeTooHigh
	}
	if recipient.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	return im.repo.SetFeeInfo(c, recipient, numerator)
}

func (im *impl) FeeFor(c ctx.Ctx, salePrice *big.Int) (domain.Address, *big.Int, error) {
	cfg, err := im.repo.Get(c)
	if err != nil {
		c.WithFields(log.Fields{"err": err}).Error("platformRepo.Get failed")
		return domain.EmptyAddress, nil, err
	}
	return cfg.FeeRecipient, bps.Cut(salePrice, cfg.FeeNumerator), nil
}

func (im *impl) CreationFee(c ctx.Ctx) (*big.Int, error) {
	cfg, err := im.repo.Get(c)
	if err != nil {
		c.WithFields(log.Fields{"err": err}).Error("platformRepo.Get failed")
		return nil, err
	}
	return cfg.CreationFee, nil
}

func (im *impl) Owner(c ctx.Ctx) (domain.Address, error) {
	cfg, err := im.repo.Get(c)
	if err != nil {
		c.WithFields(log.Fields{"err": err}).Error("platformRepo.Get failed")
		return domain.EmptyAddress, err
	}
	return cfg.Owner, nil
}
