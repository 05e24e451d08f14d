package collection

import (
	"math/big"
	"time"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
)

// Collection is one creator-owned token ledger created by the factory.
// Its descriptive fields are immutable after creation; only ownership may
// move, and only the owner can flip the pause switch.
type Collection struct {
	Id          domain.CollectionId `json:"id" bson:"id"`
	Name        string              `json:"name" bson:"name"`
	Symbol      string              `json:"symbol" bson:"symbol"`
	Description string              `json:"description" bson:"description"`
	CoverImage  string              `json:"coverImage" bson:"coverImage"`
	BannerImage string              `json:"bannerImage" bson:"bannerImage"`
	Owner       domain.Address      `json:"owner" bson:"owner"`
	Paused      bool                `json:"paused" bson:"paused"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
}

type CreatePayload struct {
	Name        string `json:"name" validate:"required"`
	Symbol      string `json:"symbol" validate:"required"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
	BannerImage string `json:"bannerImage"`
}

type findAllOptions struct {
	Owner  *domain.Address
	Offset *int32
	Limit  *int32
}

type FindAllOptions func(*findAllOptions) error

func GetFindAllOptions(opts ...FindAllOptions) (findAllOptions, error) {
	res := findAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithOwner(owner domain.Address) FindAllOptions {
	return func(options *findAllOptions) error {
		lower := owner.ToLower()
		options.Owner = &lower
		return nil
	}
}

func WithPagination(offset, limit int32) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Collection, error)
	FindOne(c ctx.Ctx, id domain.CollectionId) (*Collection, error)
	// NextId allocates the next sequential collection id, starting from 1
	NextId(c ctx.Ctx) (domain.CollectionId, error)
	Create(c ctx.Ctx, value *Collection) error
	SetOwner(c ctx.Ctx, id domain.CollectionId, owner domain.Address) error
	SetPaused(c ctx.Ctx, id domain.CollectionId, paused bool) error
}

// FactoryUsecase creates collections for the configured one-time fee and
// tracks their ids and owners.
type FactoryUsecase interface {
	// Create requires payment to equal the configured creation fee exactly;
	// the fee is moved from the caller's balance to the platform fee recipient
	Create(c ctx.Ctx, caller domain.Address, payment *big.Int, value CreatePayload) (*Collection, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Collection, error)
	FindOne(c ctx.Ctx, id domain.CollectionId) (*Collection, error)
	TransferOwnership(c ctx.Ctx, caller domain.Address, id domain.CollectionId, newOwner domain.Address) error
}
