package artifact

import (
	"math/big"
	"time"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
)

// MaxRoyaltyBps caps per-token royalty at 10% of the sale price.
const MaxRoyaltyBps = 1000

// Artifact is one tokenized record of a digitized cultural artifact.
// Creator is fixed at mint time and keeps provenance authorship even after
// the token changes hands; custody alone never grants edit rights.
type Artifact struct {
	CollectionId         domain.CollectionId `json:"collectionId" bson:"collectionId"`
	TokenId              domain.TokenId      `json:"tokenId" bson:"tokenId"`
	Owner                domain.Address      `json:"owner" bson:"owner"`
	Creator              domain.Address      `json:"creator" bson:"creator"`
	TokenURI             string              `json:"tokenUri" bson:"tokenUri"`
	ArtifactName         string              `json:"artifactName" bson:"artifactName"`
	OriginLocation       string              `json:"originLocation" bson:"originLocation"`
	HistoricalPeriod     string              `json:"historicalPeriod" bson:"historicalPeriod"`
	CulturalSignificance string              `json:"culturalSignificance" bson:"culturalSignificance"`
	RoyaltyRecipient     domain.Address      `json:"royaltyRecipient" bson:"royaltyRecipient"`
	RoyaltyBps           int64               `json:"royaltyBps" bson:"royaltyBps"`
	// Approved is the per-token approved operator, cleared on transfer
	Approved domain.Address `json:"approved" bson:"approved"`
	MintedAt time.Time      `json:"mintedAt" bson:"mintedAt"`
}

func (a *Artifact) Ref() domain.TokenRef {
	return domain.TokenRef{CollectionId: a.CollectionId, TokenId: a.TokenId}
}

type MintPayload struct {
	To                   domain.Address `json:"to" validate:"required"`
	TokenURI             string         `json:"tokenUri"`
	ArtifactName         string         `json:"artifactName"`
	OriginLocation       string         `json:"originLocation"`
	HistoricalPeriod     string         `json:"historicalPeriod"`
	CulturalSignificance string         `json:"culturalSignificance"`
	RoyaltyRecipient     domain.Address `json:"royaltyRecipient"`
	RoyaltyBps           int64          `json:"royaltyBps"`
}

// UpdatePayload carries a partial metadata update. An empty string means
// keep the stored value.
type UpdatePayload struct {
	ArtifactName         string `json:"artifactName"`
	OriginLocation       string `json:"originLocation"`
	HistoricalPeriod     string `json:"historicalPeriod"`
	CulturalSignificance string `json:"culturalSignificance"`
}

type findAllOptions struct {
	CollectionId *domain.CollectionId
	Owner        *domain.Address
	Creator      *domain.Address
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

func WithCollectionId(id domain.CollectionId) FindAllOptions {
	return func(options *findAllOptions) error {
		options.CollectionId = &id
		return nil
	}
}

func WithOwner(owner domain.Address) FindAllOptions {
	return func(options *findAllOptions) error {
		lower := owner.ToLower()
		options.Owner = &lower
		return nil
	}
}

func WithCreator(creator domain.Address) FindAllOptions {
	return func(options *findAllOptions) error {
		lower := creator.ToLower()
		options.Creator = &lower
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

// Repo stores minted tokens. FindOne fails with domain.ErrInvalidTokenId for
// ids that were never minted or were burned.
type Repo interface {
	FindOne(c ctx.Ctx, ref domain.TokenRef) (*Artifact, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Artifact, error)
	// NextTokenId allocates the next sequential token id for the collection,
	// starting from 0
	NextTokenId(c ctx.Ctx, id domain.CollectionId) (domain.TokenId, error)
	Insert(c ctx.Ctx, value *Artifact) error
	SetOwner(c ctx.Ctx, ref domain.TokenRef, owner domain.Address) error
	SetApproved(c ctx.Ctx, ref domain.TokenRef, operator domain.Address) error
	SetInfo(c ctx.Ctx, ref domain.TokenRef, value UpdatePayload) error
	Delete(c ctx.Ctx, ref domain.TokenRef) error
}

// OperatorRepo stores collection-wide operator approvals per owner.
type OperatorRepo interface {
	Set(c ctx.Ctx, id domain.CollectionId, owner, operator domain.Address, approved bool) error
	IsApproved(c ctx.Ctx, id domain.CollectionId, owner, operator domain.Address) (bool, error)
}

// VerifiedCreatorRepo stores the purely informational trust flags toggled by
// the collection owner. Verification never gates minting.
type VerifiedCreatorRepo interface {
	Set(c ctx.Ctx, id domain.CollectionId, addr domain.Address, verified bool) error
	Get(c ctx.Ctx, id domain.CollectionId, addr domain.Address) (bool, error)
}

type Usecase interface {
	Mint(c ctx.Ctx, caller domain.Address, id domain.CollectionId, value MintPayload) (*Artifact, error)
	BatchMint(c ctx.Ctx, caller domain.Address, id domain.CollectionId, to domain.Address, uris, names []string, royaltyRecipient domain.Address, royaltyBps int64) ([]*Artifact, error)
	UpdateInfo(c ctx.Ctx, caller domain.Address, ref domain.TokenRef, value UpdatePayload) (*Artifact, error)
	Transfer(c ctx.Ctx, caller, to domain.Address, ref domain.TokenRef) error
	Burn(c ctx.Ctx, caller domain.Address, ref domain.TokenRef) error
	Approve(c ctx.Ctx, caller, operator domain.Address, ref domain.TokenRef) error
	SetApprovalForAll(c ctx.Ctx, caller domain.Address, id domain.CollectionId, operator domain.Address, approved bool) error

	GetArtifactInfo(c ctx.Ctx, ref domain.TokenRef) (*Artifact, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Artifact, error)
	OwnerOf(c ctx.Ctx, ref domain.TokenRef) (domain.Address, error)
	TokenURI(c ctx.Ctx, ref domain.TokenRef) (string, error)
	RoyaltyInfo(c ctx.Ctx, ref domain.TokenRef, salePrice *big.Int) (domain.Address, *big.Int, error)

	VerifyCreator(c ctx.Ctx, caller domain.Address, id domain.CollectionId, addr domain.Address) error
	UnverifyCreator(c ctx.Ctx, caller domain.Address, id domain.CollectionId, addr domain.Address) error
	IsVerifiedCreator(c ctx.Ctx, id domain.CollectionId, addr domain.Address) (bool, error)

	Pause(c ctx.Ctx, caller domain.Address, id domain.CollectionId) error
	Unpause(c ctx.Ctx, caller domain.Address, id domain.CollectionId) error

	// TransferOwnership moves custody without caller authorization checks.
	// It exists for the marketplace settlement path only.
	TransferOwnership(c ctx.Ctx, ref domain.TokenRef, to domain.Address) error
}
