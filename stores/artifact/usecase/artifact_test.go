package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/base/sequencer"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/artifact"
	"github.com/heritage-x/goapi/domain/collection"
	"github.com/heritage-x/goapi/domain/event"
	artifactRepository "github.com/heritage-x/goapi/stores/artifact/repository"
	collectionRepository "github.com/heritage-x/goapi/stores/collection/repository"
	eventRepository "github.com/heritage-x/goapi/stores/event/repository"
)

var (
	collectionOwner = domain.Address("0x000000000000000000000000000000000000aaaa")
	creator         = domain.Address("0x000000000000000000000000000000000000bbbb")
	holder          = domain.Address("0x000000000000000000000000000000000000cccc")
	operator        = domain.Address("0x000000000000000000000000000000000000dddd")
	stranger        = domain.Address("0x000000000000000000000000000000000000eeee")
)

type artifactTestSuite struct {
	suite.Suite

	collectionRepo collection.Repo
	eventRepo      event.Repo
	uc             artifact.Usecase

	collectionId domain.CollectionId
}

func TestArtifactSuite(t *testing.T) {
	suite.Run(t, new(artifactTestSuite))
}

func (s *artifactTestSuite) SetupTest() {
	ctx := bCtx.Background()

	s.collectionRepo = collectionRepository.NewCollection()
	s.eventRepo = eventRepository.NewMemoryRepo()

	s.uc = New(&ArtifactUseCaseCfg{
		ArtifactRepo:        artifactRepository.NewArtifact(),
		OperatorRepo:        artifactRepository.NewOperator(),
		VerifiedCreatorRepo: artifactRepository.NewVerifiedCreator(),
		CollectionRepo:      s.collectionRepo,
		EventRepo:           s.eventRepo,
		Sequencer:           sequencer.New(),
	})

	id, err := s.collectionRepo.NextId(ctx)
	s.Require().NoError(err)
	s.collectionId = id
	s.Require().NoError(s.collectionRepo.Create(ctx, &collection.Collection{
		Id:     id,
		Name:   "Heritage",
		Symbol: "HRT",
		Owner:  collectionOwner,
	}))
}

func (s *artifactTestSuite) mintPayload() artifact.MintPayload {
	return artifact.MintPayload{
		To:               holder,
		TokenURI:         "ipfs://artifact/0",
		ArtifactName:     "Amphora",
		OriginLocation:   "Athens",
		HistoricalPeriod: "Classical",
		RoyaltyRecipient: creator,
		RoyaltyBps:       500,
	}
}

func (s *artifactTestSuite) mint() *artifact.Artifact {
	a, err := s.uc.Mint(bCtx.Background(), creator, s.collectionId, s.mintPayload())
	s.Require().NoError(err)
	return a
}

func (s *artifactTestSuite) TestMint() {
	minted := s.mint()

	s.Equal(domain.TokenId(0), minted.TokenId)
	s.Equal(holder, minted.Owner)
	s.Equal(creator, minted.Creator)

	got, err := s.uc.GetArtifactInfo(bCtx.Background(), minted.Ref())
	s.Require().NoError(err)
	s.Equal("Amphora", got.ArtifactName)
}

func (s *artifactTestSuite) TestMintIdsAreSequentialPerCollection() {
	first := s.mint()
	second := s.mint()

	s.Equal(domain.TokenId(0), first.TokenId)
	s.Equal(domain.TokenId(1), second.TokenId)
}

func (s *artifactTestSuite) TestMintValidations() {
	ctx := bCtx.Background()

	p := s.mintPayload()
	p.TokenURI = ""
	_, err := s.uc.Mint(ctx, creator, s.collectionId, p)
	s.ErrorIs(err, domain.ErrTokenURIEmpty)

	p = s.mintPayload()
	p.ArtifactName = ""
	_, err = s.uc.Mint(ctx, creator, s.collectionId, p)
	s.ErrorIs(err, domain.ErrArtifactNameEmpty)

	p = s.mintPayload()
	p.RoyaltyBps = 1500
	_, err = s.uc.Mint(ctx, creator, s.collectionId, p)
	s.ErrorIs(err, domain.ErrRoyaltyTooHigh)

	// a royalty rate with nobody to pay would lose the royalty share at
	// every sale
	p = s.mintPayload()
	p.RoyaltyRecipient = ""
	_, err = s.uc.Mint(ctx, creator, s.collectionId, p)
	s.ErrorIs(err, domain.ErrRoyaltyRecipientEmpty)

	// zero royalty needs no recipient
	p = s.mintPayload()
	p.RoyaltyRecipient = ""
	p.RoyaltyBps = 0
	_, err = s.uc.Mint(ctx, creator, s.collectionId, p)
	s.NoError(err)

	_, err = s.uc.Mint(ctx, creator, domain.CollectionId(99), s.mintPayload())
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *artifactTestSuite) TestBatchMintRequiresRoyaltyRecipient() {
	ctx := bCtx.Background()

	_, err := s.uc.BatchMint(ctx, creator, s.collectionId, holder, []string{"ipfs://a", "ipfs://b"}, []string{"Vase", "Krater"}, "", 300)
	s.ErrorIs(err, domain.ErrRoyaltyRecipientEmpty)

	res, err := s.uc.FindAll(ctx, artifact.WithCollectionId(s.collectionId))
	s.Require().NoError(err)
	s.Len(res, 0)
}

func (s *artifactTestSuite) TestMintWhilePaused() {
	ctx := bCtx.Background()

	s.Require().NoError(s.uc.Pause(ctx, collectionOwner, s.collectionId))

	_, err := s.uc.Mint(ctx, creator, s.collectionId, s.mintPayload())
	s.ErrorIs(err, domain.ErrMintingPaused)

	s.Require().NoError(s.uc.Unpause(ctx, collectionOwner, s.collectionId))

	_, err = s.uc.Mint(ctx, creator, s.collectionId, s.mintPayload())
	s.NoError(err)
}

func (s *artifactTestSuite) TestPauseRequiresCollectionOwner() {
	ctx := bCtx.Background()

	err := s.uc.Pause(ctx, stranger, s.collectionId)
	s.ErrorIs(err, domain.ErrNotCollectionOwner)
}

func (s *artifactTestSuite) TestBatchMint() {
	ctx := bCtx.Background()

	uris := []string{"ipfs://a", "ipfs://b", "ipfs://c"}
	names := []string{"Vase", "Coin", "Tablet"}

	minted, err := s.uc.BatchMint(ctx, creator, s.collectionId, holder, uris, names, creator, 300)
	s.Require().NoError(err)
	s.Require().Len(minted, 3)

	for i, a := range minted {
		s.Equal(domain.TokenId(i), a.TokenId)
		s.Equal(names[i], a.ArtifactName)
		s.Equal(holder, a.Owner)
	}
}

func (s *artifactTestSuite) TestBatchMintLengthMismatch() {
	ctx := bCtx.Background()

	_, err := s.uc.BatchMint(ctx, creator, s.collectionId, holder, []string{"ipfs://a", "ipfs://b"}, []string{"Vase"}, creator, 300)
	s.ErrorIs(err, domain.ErrArrayLengthMismatch)
}

func (s *artifactTestSuite) TestBatchMintAtomicValidation() {
	ctx := bCtx.Background()

	// a bad entry anywhere rejects the whole batch
	uris := []string{"ipfs://a", ""}
	names := []string{"Vase", "Coin"}
	_, err := s.uc.BatchMint(ctx, creator, s.collectionId, holder, uris, names, creator, 300)
	s.ErrorIs(err, domain.ErrTokenURIEmpty)

	res, err := s.uc.FindAll(ctx, artifact.WithCollectionId(s.collectionId))
	s.Require().NoError(err)
	s.Len(res, 0)
}

func (s *artifactTestSuite) TestUpdateInfoByCreator() {
	ctx := bCtx.Background()
	minted := s.mint()

	updated, err := s.uc.UpdateInfo(ctx, creator, minted.Ref(), artifact.UpdatePayload{
		OriginLocation: "Delphi",
	})
	s.Require().NoError(err)
	s.Equal("Delphi", updated.OriginLocation)
	// untouched fields keep their stored values
	s.Equal("Amphora", updated.ArtifactName)
	s.Equal("Classical", updated.HistoricalPeriod)
}

func (s *artifactTestSuite) TestUpdateInfoByCollectionOwner() {
	ctx := bCtx.Background()
	minted := s.mint()

	_, err := s.uc.UpdateInfo(ctx, collectionOwner, minted.Ref(), artifact.UpdatePayload{
		ArtifactName: "Krater",
	})
	s.NoError(err)
}

func (s *artifactTestSuite) TestUpdateInfoDeniedForHolder() {
	ctx := bCtx.Background()
	minted := s.mint()

	// custody does not grant edit rights
	_, err := s.uc.UpdateInfo(ctx, holder, minted.Ref(), artifact.UpdatePayload{
		ArtifactName: "Forged",
	})
	s.ErrorIs(err, domain.ErrNotAuthorizedUpdate)
}

func (s *artifactTestSuite) TestTransfer() {
	ctx := bCtx.Background()
	minted := s.mint()

	s.Require().NoError(s.uc.Transfer(ctx, holder, stranger, minted.Ref()))

	owner, err := s.uc.OwnerOf(ctx, minted.Ref())
	s.Require().NoError(err)
	s.Equal(stranger, owner)
}

func (s *artifactTestSuite) TestTransferDeniedForStranger() {
	ctx := bCtx.Background()
	minted := s.mint()

	err := s.uc.Transfer(ctx, stranger, stranger, minted.Ref())
	s.ErrorIs(err, domain.ErrNotOwnerNorApproved)
}

func (s *artifactTestSuite) TestTransferByApprovedOperator() {
	ctx := bCtx.Background()
	minted := s.mint()

	s.Require().NoError(s.uc.Approve(ctx, holder, operator, minted.Ref()))
	s.Require().NoError(s.uc.Transfer(ctx, operator, stranger, minted.Ref()))

	owner, err := s.uc.OwnerOf(ctx, minted.Ref())
	s.Require().NoError(err)
	s.Equal(stranger, owner)

	// the per-token approval does not survive the transfer
	err = s.uc.Transfer(ctx, operator, holder, minted.Ref())
	s.ErrorIs(err, domain.ErrNotOwnerNorApproved)
}

func (s *artifactTestSuite) TestTransferByOperatorForAll() {
	ctx := bCtx.Background()
	minted := s.mint()

	s.Require().NoError(s.uc.SetApprovalForAll(ctx, holder, s.collectionId, operator, true))
	s.Require().NoError(s.uc.Transfer(ctx, operator, stranger, minted.Ref()))

	owner, err := s.uc.OwnerOf(ctx, minted.Ref())
	s.Require().NoError(err)
	s.Equal(stranger, owner)
}

func (s *artifactTestSuite) TestBurn() {
	ctx := bCtx.Background()
	minted := s.mint()

	s.Require().NoError(s.uc.Burn(ctx, holder, minted.Ref()))

	_, err := s.uc.GetArtifactInfo(ctx, minted.Ref())
	s.ErrorIs(err, domain.ErrInvalidTokenId)

	_, err = s.uc.OwnerOf(ctx, minted.Ref())
	s.ErrorIs(err, domain.ErrInvalidTokenId)
}

func (s *artifactTestSuite) TestBurnDeniedForStranger() {
	ctx := bCtx.Background()
	minted := s.mint()

	err := s.uc.Burn(ctx, stranger, minted.Ref())
	s.ErrorIs(err, domain.ErrNotOwnerNorApproved)
}

func (s *artifactTestSuite) TestTokenURI() {
	ctx := bCtx.Background()
	minted := s.mint()

	uri, err := s.uc.TokenURI(ctx, minted.Ref())
	s.Require().NoError(err)
	s.Equal("ipfs://artifact/0", uri)

	_, err = s.uc.TokenURI(ctx, domain.TokenRef{CollectionId: s.collectionId, TokenId: 42})
	s.ErrorIs(err, domain.ErrInvalidTokenId)
}

func (s *artifactTestSuite) TestRoyaltyInfo() {
	ctx := bCtx.Background()
	minted := s.mint()

	price, ok := new(big.Int).SetString("1000000000000000000", 10)
	s.Require().True(ok)

	recipient, amount, err := s.uc.RoyaltyInfo(ctx, minted.Ref(), price)
	s.Require().NoError(err)
	s.Equal(creator, recipient)
	// 5% of 1 ether
	s.Equal("50000000000000000", amount.String())
}

func (s *artifactTestSuite) TestVerifyCreator() {
	ctx := bCtx.Background()

	verified, err := s.uc.IsVerifiedCreator(ctx, s.collectionId, creator)
	s.Require().NoError(err)
	s.False(verified)

	err = s.uc.VerifyCreator(ctx, stranger, s.collectionId, creator)
	s.ErrorIs(err, domain.ErrNotCollectionOwner)

	s.Require().NoError(s.uc.VerifyCreator(ctx, collectionOwner, s.collectionId, creator))

	verified, err = s.uc.IsVerifiedCreator(ctx, s.collectionId, creator)
	s.Require().NoError(err)
	s.True(verified)

	s.Require().NoError(s.uc.UnverifyCreator(ctx, collectionOwner, s.collectionId, creator))

	verified, err = s.uc.IsVerifiedCreator(ctx, s.collectionId, creator)
	s.Require().NoError(err)
	s.False(verified)
}

func (s *artifactTestSuite) TestMintWritesJournal() {
	ctx := bCtx.Background()
	s.mint()

	events, err := s.eventRepo.FindAll(ctx, event.WithTypes(event.TypeArtifactMinted))
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(creator, events[0].Actor)
	s.Equal(holder, events[0].CounterParty)
	s.Equal("Amphora", events[0].ArtifactName)
}
