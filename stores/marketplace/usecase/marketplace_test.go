package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/base/sequencer"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/artifact"
	"github.com/heritage-x/goapi/domain/collection"
	"github.com/heritage-x/goapi/domain/event"
	"github.com/heritage-x/goapi/domain/funds"
	"github.com/heritage-x/goapi/domain/marketplace"
	"github.com/heritage-x/goapi/domain/platform"
	artifactRepository "github.com/heritage-x/goapi/stores/artifact/repository"
	artifactUsecase "github.com/heritage-x/goapi/stores/artifact/usecase"
	collectionRepository "github.com/heritage-x/goapi/stores/collection/repository"
	eventRepository "github.com/heritage-x/goapi/stores/event/repository"
	fundsRepository "github.com/heritage-x/goapi/stores/funds/repository"
	marketplaceRepository "github.com/heritage-x/goapi/stores/marketplace/repository"
	platformRepository "github.com/heritage-x/goapi/stores/platform/repository"
	platformUsecase "github.com/heritage-x/goapi/stores/platform/usecase"
)

var (
	platformOwner = domain.Address("0x000000000000000000000000000000000000aaaa")
	feeRecipient  = domain.Address("0x000000000000000000000000000000000000bbbb")
	royaltyAddr   = domain.Address("0x000000000000000000000000000000000000cccc")
	seller        = domain.Address("0x000000000000000000000000000000000000dddd")
	buyer         = domain.Address("0x000000000000000000000000000000000000eeee")
	bidder        = domain.Address("0x000000000000000000000000000000000000ffff")
)

var oneEther, _ = new(big.Int).SetString("1000000000000000000", 10)

type marketplaceTestSuite struct {
	suite.Suite

	fundsRepo funds.Repo
	eventRepo event.Repo
	artifact  artifact.Usecase
	platform  platform.Usecase
	uc        marketplace.Usecase

	now time.Time
	ref domain.TokenRef
}

func TestMarketplaceSuite(t *testing.T) {
	suite.Run(t, new(marketplaceTestSuite))
}

func (s *marketplaceTestSuite) SetupTest() {
	ctx := bCtx.Background()

	seq := sequencer.New()
	collectionRepo := collectionRepository.NewCollection()
	s.fundsRepo = fundsRepository.New()
	s.eventRepo = eventRepository.NewMemoryRepo()

	// platform fee 2.5%
	s.platform = platformUsecase.New(platformRepository.New(platformOwner, feeRecipient, 250, big.NewInt(0)))

	s.artifact = artifactUsecase.New(&artifactUsecase.ArtifactUseCaseCfg{
		ArtifactRepo:        artifactRepository.NewArtifact(),
		OperatorRepo:        artifactRepository.NewOperator(),
		VerifiedCreatorRepo: artifactRepository.NewVerifiedCreator(),
		CollectionRepo:      collectionRepo,
		EventRepo:           s.eventRepo,
		Sequencer:           seq,
	})

	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	s.uc = New(&MarketplaceUseCaseCfg{
		ListingRepo:   marketplaceRepository.NewListingRepo(),
		OfferRepo:     marketplaceRepository.NewOfferRepo(),
		FundsRepo:     s.fundsRepo,
		PlatformUC:    s.platform,
		TokenLedger:   s.artifact,
		RoyaltySource: s.artifact,
		EventRepo:     s.eventRepo,
		Sequencer:     seq,
		OfferWindow:   7 * 24 * time.Hour,
		Now:           func() time.Time { return s.now },
	})

	id, err := collectionRepo.NextId(ctx)
	s.Require().NoError(err)
	s.Require().NoError(collectionRepo.Create(ctx, &collection.Collection{
		Id:     id,
		Name:   "Heritage",
		Symbol: "HRT",
		Owner:  seller,
	}))

	// royalty 5%
	minted, err := s.artifact.Mint(ctx, seller, id, artifact.MintPayload{
		To:               seller,
		TokenURI:         "ipfs://artifact/0",
		ArtifactName:     "Amphora",
		RoyaltyRecipient: royaltyAddr,
		RoyaltyBps:       500,
	})
	s.Require().NoError(err)
	s.ref = minted.Ref()

	s.Require().NoError(s.fundsRepo.Credit(ctx, buyer, new(big.Int).Set(oneEther)))
	s.Require().NoError(s.fundsRepo.Credit(ctx, bidder, new(big.Int).Set(oneEther)))
}

func (s *marketplaceTestSuite) balance(addr domain.Address) string {
	b, err := s.fundsRepo.BalanceOf(bCtx.Background(), addr)
	s.Require().NoError(err)
	return b.String()
}

func (s *marketplaceTestSuite) TestListRequiresOwner() {
	ctx := bCtx.Background()

	_, err := s.uc.List(ctx, buyer, s.ref, oneEther)
	s.ErrorIs(err, domain.ErrNotTokenOwner)
}

func (s *marketplaceTestSuite) TestListRequiresPositivePrice() {
	ctx := bCtx.Background()

	_, err := s.uc.List(ctx, seller, s.ref, big.NewInt(0))
	s.ErrorIs(err, domain.ErrInvalidPrice)

	_, err = s.uc.List(ctx, seller, s.ref, nil)
	s.ErrorIs(err, domain.ErrInvalidPrice)
}

func (s *marketplaceTestSuite) TestBuySettlementSplit() {
	ctx := bCtx.Background()

	_, err := s.uc.List(ctx, seller, s.ref, oneEther)
	s.Require().NoError(err)

	s.Require().NoError(s.uc.Buy(ctx, buyer, s.ref, oneEther))

	// royalty 5%, platform fee 2.5%, seller keeps the rest; the three
	// parts sum exactly to the price
	s.Equal("50000000000000000", s.balance(royaltyAddr))
	s.Equal("25000000000000000", s.balance(feeRecipient))
	s.Equal("925000000000000000", s.balance(seller))
	s.Equal("0", s.balance(buyer))

	owner, err := s.artifact.OwnerOf(ctx, s.ref)
	s.Require().NoError(err)
	s.Equal(buyer, owner)

	listing, err := s.uc.GetListing(ctx, s.ref)
	s.Require().NoError(err)
	s.Equal(marketplace.ListingStatusSold, listing.Status)
}

func (s *marketplaceTestSuite) TestBuyOwnListingRejected() {
	ctx := bCtx.Background()

	_, err := s.uc.List(ctx, seller, s.ref, oneEther)
	s.Require().NoError(err)

	s.Require().NoError(s.fundsRepo.Credit(ctx, seller, new(big.Int).Set(oneEther)))
	err = s.uc.Buy(ctx, seller, s.ref, oneEther)
	s.ErrorIs(err, domain.ErrSelfTrade)
	s.Equal(oneEther.String(), s.balance(seller))
}

func (s *marketplaceTestSuite) TestOfferOnOwnTokenRejected() {
	ctx := bCtx.Background()

	s.Require().NoError(s.fundsRepo.Credit(ctx, seller, new(big.Int).Set(oneEther)))
	_, err := s.uc.MakeOffer(ctx, seller, s.ref, oneEther)
	s.ErrorIs(err, domain.ErrSelfTrade)
	s.Equal(oneEther.String(), s.balance(seller))
}

func (s *marketplaceTestSuite) TestBuyFeesExceedingPriceRollsBack() {
	ctx := bCtx.Background()

	_, err := s.uc.List(ctx, seller, s.ref, oneEther)
	s.Require().NoError(err)

	// 100% platform fee on top of the 5% royalty overshoots the price
	s.Require().NoError(s.platform.SetFeeInfo(ctx, platformOwner, feeRecipient, 10000))

	err = s.uc.Buy(ctx, buyer, s.ref, oneEther)
	s.ErrorIs(err, domain.ErrFeesExceedPrice)

	// the payment came back and nothing changed hands
	s.Equal(oneEther.String(), s.balance(buyer))
	s.Equal("0", s.balance(seller))
	s.Equal("0", s.balance(royaltyAddr))
	s.Equal("0", s.balance(feeRecipient))

	owner, err := s.artifact.OwnerOf(ctx, s.ref)
	s.Require().NoError(err)
	s.Equal(seller, owner)

	listing, err := s.uc.GetListing(ctx, s.ref)
	s.Require().NoError(err)
	s.Equal(marketplace.ListingStatusActive, listing.Status)
}

func (s *marketplaceTestSuite) TestBuyRequiresExactPayment() {
	ctx := bCtx.Background()

	_, err := s.uc.List(ctx, seller, s.ref, oneEther)
	s.Require().NoError(err)

	err = s.uc.Buy(ctx, buyer, s.ref, big.NewInt(1))
	s.ErrorIs(err, domain.ErrIncorrectPayment)

	overpay := new(big.Int).Add(oneEther, big.NewInt(1))
	err = s.uc.Buy(ctx, buyer, s.ref, overpay)
	s.ErrorIs(err, domain.ErrIncorrectPayment)
}

func (s *marketplaceTestSuite) TestBuyRequiresFunds() {
	ctx := bCtx.Background()

	price := new(big.Int).Mul(oneEther, big.NewInt(2))
	_, err := s.uc.List(ctx, seller, s.ref, price)
	s.Require().NoError(err)

	err = s.uc.Buy(ctx, buyer, s.ref, price)
	s.ErrorIs(err, domain.ErrInsufficientFunds)

	// failed purchase leaves everything in place
	s.Equal(oneEther.String(), s.balance(buyer))
	owner, err := s.artifact.OwnerOf(ctx, s.ref)
	s.Require().NoError(err)
	s.Equal(seller, owner)
}

func (s *marketplaceTestSuite) TestBuyInactiveListing() {
	ctx := bCtx.Background()

	_, err := s.uc.List(ctx, seller, s.ref, oneEther)
	s.Require().NoError(err)
	s.Require().NoError(s.uc.CancelListing(ctx, seller, s.ref))

	err = s.uc.Buy(ctx, buyer, s.ref, oneEther)
	s.ErrorIs(err, domain.ErrListingNotActive)
}

func (s *marketplaceTestSuite) TestCancelListingRequiresSeller() {
	ctx := bCtx.Background()

	_, err := s.uc.List(ctx, seller, s.ref, oneEther)
	s.Require().NoError(err)

	err = s.uc.CancelListing(ctx, buyer, s.ref)
	s.ErrorIs(err, domain.ErrNotSeller)
}

func (s *marketplaceTestSuite) TestRelistReplacesListing() {
	ctx := bCtx.Background()

	_, err := s.uc.List(ctx, seller, s.ref, oneEther)
	s.Require().NoError(err)

	newPrice := new(big.Int).Mul(oneEther, big.NewInt(2))
	_, err = s.uc.List(ctx, seller, s.ref, newPrice)
	s.Require().NoError(err)

	listing, err := s.uc.GetListing(ctx, s.ref)
	s.Require().NoError(err)
	s.Equal(newPrice.String(), listing.Price.String())
	s.Equal(marketplace.ListingStatusActive, listing.Status)
}

func (s *marketplaceTestSuite) TestMakeOfferEscrowsFunds() {
	ctx := bCtx.Background()

	offer, err := s.uc.MakeOffer(ctx, bidder, s.ref, oneEther)
	s.Require().NoError(err)
	s.Equal(uint64(1), offer.Id)
	s.Equal(marketplace.OfferStatusOpen, offer.Status)

	// the bid left the bidder's balance immediately
	s.Equal("0", s.balance(bidder))
}

func (s *marketplaceTestSuite) TestMakeOfferRequiresFunds() {
	ctx := bCtx.Background()

	tooMuch := new(big.Int).Mul(oneEther, big.NewInt(2))
	_, err := s.uc.MakeOffer(ctx, bidder, s.ref, tooMuch)
	s.ErrorIs(err, domain.ErrInsufficientFunds)
}

func (s *marketplaceTestSuite) TestAcceptOfferSettlementSplit() {
	ctx := bCtx.Background()

	offer, err := s.uc.MakeOffer(ctx, bidder, s.ref, oneEther)
	s.Require().NoError(err)

	s.Require().NoError(s.uc.AcceptOffer(ctx, seller, s.ref, offer.Id))

	s.Equal("50000000000000000", s.balance(royaltyAddr))
	s.Equal("25000000000000000", s.balance(feeRecipient))
	s.Equal("925000000000000000", s.balance(seller))

	owner, err := s.artifact.OwnerOf(ctx, s.ref)
	s.Require().NoError(err)
	s.Equal(bidder, owner)

	got, err := s.uc.GetOffer(ctx, offer.Id)
	s.Require().NoError(err)
	s.Equal(marketplace.OfferStatusAccepted, got.Status)
}

func (s *marketplaceTestSuite) TestAcceptOfferRequiresTokenOwner() {
	ctx := bCtx.Background()

	offer, err := s.uc.MakeOffer(ctx, bidder, s.ref, oneEther)
	s.Require().NoError(err)

	err = s.uc.AcceptOffer(ctx, buyer, s.ref, offer.Id)
	s.ErrorIs(err, domain.ErrNotTokenOwner)
}

func (s *marketplaceTestSuite) TestAcceptExpiredOffer() {
	ctx := bCtx.Background()

	offer, err := s.uc.MakeOffer(ctx, bidder, s.ref, oneEther)
	s.Require().NoError(err)

	s.now = s.now.Add(8 * 24 * time.Hour)

	err = s.uc.AcceptOffer(ctx, seller, s.ref, offer.Id)
	s.ErrorIs(err, domain.ErrOfferExpired)

	// the escrow stays with the offer until the bidder withdraws it
	s.Equal("0", s.balance(bidder))

	s.Require().NoError(s.uc.WithdrawOffer(ctx, bidder, offer.Id))
	s.Equal(oneEther.String(), s.balance(bidder))
}

func (s *marketplaceTestSuite) TestWithdrawOffer() {
	ctx := bCtx.Background()

	offer, err := s.uc.MakeOffer(ctx, bidder, s.ref, oneEther)
	s.Require().NoError(err)

	err = s.uc.WithdrawOffer(ctx, buyer, offer.Id)
	s.ErrorIs(err, domain.ErrNotBidder)

	s.Require().NoError(s.uc.WithdrawOffer(ctx, bidder, offer.Id))
	s.Equal(oneEther.String(), s.balance(bidder))

	got, err := s.uc.GetOffer(ctx, offer.Id)
	s.Require().NoError(err)
	s.Equal(marketplace.OfferStatusWithdrawn, got.Status)

	// a withdrawn offer cannot be accepted or withdrawn again
	err = s.uc.AcceptOffer(ctx, seller, s.ref, offer.Id)
	s.ErrorIs(err, domain.ErrOfferNotOpen)
	err = s.uc.WithdrawOffer(ctx, bidder, offer.Id)
	s.ErrorIs(err, domain.ErrOfferNotOpen)
}

func (s *marketplaceTestSuite) TestAcceptOfferCancelsActiveListing() {
	ctx := bCtx.Background()

	_, err := s.uc.List(ctx, seller, s.ref, new(big.Int).Mul(oneEther, big.NewInt(2)))
	s.Require().NoError(err)

	offer, err := s.uc.MakeOffer(ctx, bidder, s.ref, oneEther)
	s.Require().NoError(err)
	s.Require().NoError(s.uc.AcceptOffer(ctx, seller, s.ref, offer.Id))

	listing, err := s.uc.GetListing(ctx, s.ref)
	s.Require().NoError(err)
	s.Equal(marketplace.ListingStatusCancelled, listing.Status)
}

func (s *marketplaceTestSuite) TestOtherOffersStayEscrowedAfterSale() {
	ctx := bCtx.Background()

	half := new(big.Int).Div(oneEther, big.NewInt(2))
	first, err := s.uc.MakeOffer(ctx, bidder, s.ref, half)
	s.Require().NoError(err)
	second, err := s.uc.MakeOffer(ctx, buyer, s.ref, half)
	s.Require().NoError(err)

	s.Require().NoError(s.uc.AcceptOffer(ctx, seller, s.ref, first.Id))

	// the losing offer stays open and escrowed
	got, err := s.uc.GetOffer(ctx, second.Id)
	s.Require().NoError(err)
	s.Equal(marketplace.OfferStatusOpen, got.Status)

	s.Require().NoError(s.uc.WithdrawOffer(ctx, buyer, second.Id))
}

func (s *marketplaceTestSuite) TestJournalRecordsSale() {
	ctx := bCtx.Background()

	_, err := s.uc.List(ctx, seller, s.ref, oneEther)
	s.Require().NoError(err)
	s.Require().NoError(s.uc.Buy(ctx, buyer, s.ref, oneEther))

	events, err := s.eventRepo.FindAll(ctx, event.WithTypes(event.TypeSold))
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(seller, events[0].Actor)
	s.Equal(buyer, events[0].CounterParty)
	s.Equal(oneEther.String(), events[0].Amount)
	s.Equal("1", events[0].DisplayPrice)
}
