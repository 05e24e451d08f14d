package marketplace

import (
	"math/big"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
)

// TokenLedger is the custody capability the marketplace needs from a token
// ledger: resolving the current owner and moving ownership during settlement.
// Any ledger implementation can plug in.
type TokenLedger interface {
	OwnerOf(c ctx.Ctx, ref domain.TokenRef) (domain.Address, error)
	TransferOwnership(c ctx.Ctx, ref domain.TokenRef, to domain.Address) error
}

// RoyaltySource is the royalty-discovery capability: any token type exposing
// it participates in the three-way settlement split without bespoke
// integration.
type RoyaltySource interface {
	RoyaltyInfo(c ctx.Ctx, ref domain.TokenRef, salePrice *big.Int) (domain.Address, *big.Int, error)
}

type Usecase interface {
	// List requires the caller to own the token and price > 0; it replaces
	// any prior active listing for the same token
	List(c ctx.Ctx, caller domain.Address, ref domain.TokenRef, price *big.Int) (*Listing, error)
	// Buy requires payment == price; settlement marks the listing sold and
	// moves ownership before any fund credit goes out
	Buy(c ctx.Ctx, caller domain.Address, ref domain.TokenRef, payment *big.Int) error
	CancelListing(c ctx.Ctx, caller domain.Address, ref domain.TokenRef) error
	GetListing(c ctx.Ctx, ref domain.TokenRef) (*Listing, error)
	FindListings(c ctx.Ctx, opts ...ListingFindAllOptions) ([]*Listing, error)

	// MakeOffer escrows amount from the caller's balance for the configured
	// offer window
	MakeOffer(c ctx.Ctx, caller domain.Address, ref domain.TokenRef, amount *big.Int) (*Offer, error)
	// AcceptOffer runs the same settlement split as Buy with the offer's
	// amount as price; other open offers on the token stay escrowed
	AcceptOffer(c ctx.Ctx, caller domain.Address, ref domain.TokenRef, offerId uint64) error
	WithdrawOffer(c ctx.Ctx, caller domain.Address, offerId uint64) error
	GetOffer(c ctx.Ctx, offerId uint64) (*Offer, error)
	FindOffers(c ctx.Ctx, opts ...OfferFindAllOptions) ([]*Offer, error)
}
