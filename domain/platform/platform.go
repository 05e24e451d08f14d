package platform

import (
	"math/big"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
)

// MaxFeeNumerator bounds the platform fee rate at 100%.
const MaxFeeNumerator = 10000

// Config is the owner-gated platform configuration. It is the only global
// mutable state beside the ledgers, and every mutation entry point checks
// platform-owner authorization at call entry.
type Config struct {
	Owner        domain.Address `json:"owner" bson:"owner"`
	FeeRecipient domain.Address `json:"feeRecipient" bson:"feeRecipient"`
	FeeNumerator int64          `json:"feeNumerator" bson:"feeNumerator"`
	// CreationFee is charged by the factory for each new collection
	CreationFee *big.Int `json:"creationFee" bson:"-"`
}

// FeeInfo is the canonical fee tuple: recipient first, then the rate or
// amount. Both the factory side and the marketplace side return this order.
type FeeInfo struct {
	Recipient domain.Address `json:"recipient"`
	Numerator int64          `json:"numerator"`
}

type Repo interface {
	Get(c ctx.Ctx) (*Config, error)
	SetFeeInfo(c ctx.Ctx, recipient domain.Address, numerator int64) error
}

type Usecase interface {
	// GetFeeInfo returns (recipient, numerator)
	GetFeeInfo(c ctx.Ctx) (*FeeInfo, error)
	// SetFeeInfo is platform-owner-only; numerator must not exceed MaxFeeNumerator
	SetFeeInfo(c ctx.Ctx, caller domain.Address, recipient domain.Address, numerator int64) error
	// FeeFor returns the fee recipient and floor(salePrice*numerator/10000)
	FeeFor(c ctx.Ctx, salePrice *big.Int) (domain.Address, *big.Int, error)
	CreationFee(c ctx.Ctx) (*big.Int, error)
	Owner(c ctx.Ctx) (domain.Address, error)
}
