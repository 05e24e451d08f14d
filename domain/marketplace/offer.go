package marketplace

import (
	"math/big"
	"time"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
)

type OfferStatus string

const (
	OfferStatusOpen      OfferStatus = "open"
	OfferStatusAccepted  OfferStatus = "accepted"
	OfferStatusWithdrawn OfferStatus = "withdrawn"
	OfferStatusExpired   OfferStatus = "expired"
)

// Offer is a bidder's escrowed bid on a token, independent of any listing.
// The escrowed amount leaves the bidder's balance when the offer is made and
// returns only on withdrawal; expiry is enforced lazily at the next touching
// call, never by a background timer.
type Offer struct {
	Id        uint64          `json:"id" bson:"id"`
	TokenRef  domain.TokenRef `json:"tokenRef" bson:"tokenRef"`
	Bidder    domain.Address  `json:"bidder" bson:"bidder"`
	Amount    *big.Int        `json:"-" bson:"-"`
	Expiry    time.Time       `json:"expiry" bson:"expiry"`
	Status    OfferStatus     `json:"status" bson:"status"`
	CreatedAt time.Time       `json:"createdAt" bson:"createdAt"`
}

// ExpiredAt reports whether the offer has passed its expiry at time t.
func (o *Offer) ExpiredAt(t time.Time) bool {
	return t.After(o.Expiry)
}

type offerFindAllOptions struct {
	TokenRef *domain.TokenRef
	Bidder   *domain.Address
	Status   *OfferStatus
}

type OfferFindAllOptions func(*offerFindAllOptions) error

func GetOfferFindAllOptions(opts ...OfferFindAllOptions) (offerFindAllOptions, error) {
	res := offerFindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func OfferWithTokenRef(ref domain.TokenRef) OfferFindAllOptions {
	return func(options *offerFindAllOptions) error {
		options.TokenRef = &ref
		return nil
	}
}

func OfferWithBidder(bidder domain.Address) OfferFindAllOptions {
	return func(options *offerFindAllOptions) error {
		lower := bidder.ToLower()
		options.Bidder = &lower
		return nil
	}
}

func OfferWithStatus(status OfferStatus) OfferFindAllOptions {
	return func(options *offerFindAllOptions) error {
		options.Status = &status
		return nil
	}
}

type OfferRepo interface {
	FindOne(c ctx.Ctx, id uint64) (*Offer, error)
	FindAll(c ctx.Ctx, opts ...OfferFindAllOptions) ([]*Offer, error)
	// NextId allocates the next sequential offer id, starting from 1
	NextId(c ctx.Ctx) (uint64, error)
	Insert(c ctx.Ctx, value *Offer) error
	SetStatus(c ctx.Ctx, id uint64, status OfferStatus) error
}
