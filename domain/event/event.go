package event

import (
	"time"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
)

type Type string

const (
	TypeCollectionCreated Type = "collectionCreated"
	TypeArtifactMinted    Type = "artifactMinted"
	TypeArtifactUpdated   Type = "artifactUpdated"
	TypeTransferred       Type = "transferred"
	TypeBurned            Type = "burned"
	TypeCreatorVerified   Type = "creatorVerified"
	TypeCreatorUnverified Type = "creatorUnverified"
	TypePaused            Type = "paused"
	TypeUnpaused          Type = "unpaused"
	TypeListed            Type = "listed"
	TypeListingCancelled  Type = "listingCancelled"
	TypeSold              Type = "sold"
	TypeOfferMade         Type = "offerMade"
	TypeOfferAccepted     Type = "offerAccepted"
	TypeOfferWithdrawn    Type = "offerWithdrawn"
)

// Event is one journal entry consumed by the off-chain display layer.
// Amounts are exact decimal strings; journal writes happen after commit and
// never change the outcome of the call that produced them.
type Event struct {
	Type         Type                `json:"type" bson:"type"`
	CollectionId domain.CollectionId `json:"collectionId" bson:"collectionId"`
	TokenId      *domain.TokenId     `json:"tokenId,omitempty" bson:"tokenId,omitempty"`
	OfferId      uint64              `json:"offerId,omitempty" bson:"offerId,omitempty"`
	Actor        domain.Address      `json:"actor" bson:"actor"`
	CounterParty domain.Address      `json:"counterParty,omitempty" bson:"counterParty,omitempty"`
	ArtifactName string              `json:"artifactName,omitempty" bson:"artifactName,omitempty"`
	Amount       string              `json:"amount,omitempty" bson:"amount,omitempty"`
	DisplayPrice string              `json:"displayPrice,omitempty" bson:"displayPrice,omitempty"`
	Time         time.Time           `json:"time" bson:"time"`
}

type findAllOptions struct {
	Types        []Type
	CollectionId *domain.CollectionId
	TokenId      *domain.TokenId
	Actor        *domain.Address
	Offset       *int32
	Limit        *int32
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

func WithTypes(types ...Type) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Types = types
		return nil
	}
}

func WithCollectionId(id domain.CollectionId) FindAllOptions {
	return func(options *findAllOptions) error {
		options.CollectionId = &id
		return nil
	}
}

func WithTokenId(id domain.TokenId) FindAllOptions {
	return func(options *findAllOptions) error {
		options.TokenId = &id
		return nil
	}
}

func WithActor(actor domain.Address) FindAllOptions {
	return func(options *findAllOptions) error {
		lower := actor.ToLower()
		options.Actor = &lower
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

// Match reports whether ev satisfies every filter set on the options.
// Pagination is not considered.
func (o findAllOptions) Match(ev *Event) bool {
	if len(o.Types) > 0 {
		found := false
		for _, t := range o.Types {
			if ev.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if o.CollectionId != nil && ev.CollectionId != *o.CollectionId {
		return false
	}
	if o.TokenId != nil && (ev.TokenId == nil || *ev.TokenId != *o.TokenId) {
		return false
	}
	if o.Actor != nil && !ev.Actor.Equals(*o.Actor) {
		return false
	}
	return true
}

type Repo interface {
	Insert(c ctx.Ctx, value *Event) error
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Event, error)
	Count(c ctx.Ctx, opts ...FindAllOptions) (int, error)
}
