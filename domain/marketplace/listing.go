package marketplace

import (
	"math/big"
	"time"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
)

type ListingStatus string

const (
	ListingStatusActive    ListingStatus = "active"
	ListingStatusSold      ListingStatus = "sold"
	ListingStatusCancelled ListingStatus = "cancelled"
)

// Listing is a seller's standing offer to sell one token at a fixed price.
// At most one active listing exists per token; relisting replaces it.
type Listing struct {
	TokenRef  domain.TokenRef `json:"tokenRef" bson:"tokenRef"`
	Seller    domain.Address  `json:"seller" bson:"seller"`
	Price     *big.Int        `json:"-" bson:"-"`
	Status    ListingStatus   `json:"status" bson:"status"`
	CreatedAt time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt" bson:"updatedAt"`
}

type listingFindAllOptions struct {
	CollectionId *domain.CollectionId
	Seller       *domain.Address
	Status       *ListingStatus
	Offset       *int32
	Limit        *int32
}

type ListingFindAllOptions func(*listingFindAllOptions) error

func GetListingFindAllOptions(opts ...ListingFindAllOptions) (listingFindAllOptions, error) {
	res := listingFindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func ListingWithCollectionId(id domain.CollectionId) ListingFindAllOptions {
	return func(options *listingFindAllOptions) error {
		options.CollectionId = &id
		return nil
	}
}

func ListingWithSeller(seller domain.Address) ListingFindAllOptions {
	return func(options *listingFindAllOptions) error {
		lower := seller.ToLower()
		options.Seller = &lower
		return nil
	}
}

func ListingWithStatus(status ListingStatus) ListingFindAllOptions {
	return func(options *listingFindAllOptions) error {
		options.Status = &status
		return nil
	}
}

func ListingWithPagination(offset, limit int32) ListingFindAllOptions {
	return func(options *listingFindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

// ListingRepo keys listings by token; only the latest listing per token is
// retained, historical ones live in the event journal.
type ListingRepo interface {
	FindOne(c ctx.Ctx, ref domain.TokenRef) (*Listing, error)
	FindAll(c ctx.Ctx, opts ...ListingFindAllOptions) ([]*Listing, error)
	Upsert(c ctx.Ctx, value *Listing) error
	SetStatus(c ctx.Ctx, ref domain.TokenRef, status ListingStatus) error
}
