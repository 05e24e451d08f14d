package usecase

import (
	"math/big"
	"time"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/base/log"
	"github.com/heritage-x/goapi/base/metrics"
	"github.com/heritage-x/goapi/base/sequencer"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/event"
	"github.com/heritage-x/goapi/domain/funds"
	"github.com/heritage-x/goapi/domain/marketplace"
	"github.com/heritage-x/goapi/domain/platform"
)

type MarketplaceUseCaseCfg struct {
	ListingRepo   marketplace.ListingRepo
	OfferRepo     marketplace.OfferRepo
	FundsRepo     funds.Repo
	PlatformUC    platform.Usecase
	TokenLedger   marketplace.TokenLedger
	RoyaltySource marketplace.RoyaltySource
	EventRepo     event.Repo
	Sequencer     *sequencer.Sequencer
	// OfferWindow is how long a new offer stays acceptable
	OfferWindow time.Duration
	// Now is swappable for tests
	Now func() time.Time
}

type impl struct {
	listingRepo   marketplace.ListingRepo
	offerRepo     marketplace.OfferRepo
	fundsRepo     funds.Repo
	platformUC    platform.Usecase
	tokenLedger   marketplace.TokenLedger
	royaltySource marketplace.RoyaltySource
	eventRepo     event.Repo
	seq           *sequencer.Sequencer
	offerWindow   time.Duration
	now           func() time.Time
	met           metrics.Service
}

func New(cfg *MarketplaceUseCaseCfg) marketplace.Usecase {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	window := cfg.OfferWindow
	if window == 0 {
		window = 7 * 24 * time.Hour
	}
	return &impl{
		listingRepo:   cfg.ListingRepo,
		offerRepo:     cfg.OfferRepo,
		fundsRepo:     cfg.FundsRepo,
		platformUC:    cfg.PlatformUC,
		tokenLedger:   cfg.TokenLedger,
		royaltySource: cfg.RoyaltySource,
		eventRepo:     cfg.EventRepo,
		seq:           cfg.Sequencer,
		offerWindow:   window,
		now:           now,
		met:           metrics.New("marketplace"),
	}
}

func (im *impl) List(c ctx.Ctx, caller domain.Address, ref domain.TokenRef, price *big.Int) (*marketplace.Listing, error) {
	if price == nil || price.Sign() <= 0 {
		return nil, domain.ErrInvalidPrice
	}

	var listing *marketplace.Listing
	err := im.seq.Do(c, func() error {
		owner, err := im.tokenLedger.OwnerOf(c, ref)
		if err != nil {
			return err
		}
		if !owner.Equals(caller) {
			return domain.ErrNotTokenOwner
		}

		now := im.now()
		listing = &marketplace.Listing{
			TokenRef:  ref,
			Seller:    owner,
			Price:     new(big.Int).Set(price),
			Status:    marketplace.ListingStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return im.listingRepo.Upsert(c, listing)
	})
	if err != nil {
		return nil, err
	}

	im.met.BumpSum("listed", 1)
	im.journal(c, &event.Event{
		Type:         event.TypeListed,
		CollectionId: ref.CollectionId,
		TokenId:      &ref.TokenId,
		Actor:        listing.Seller,
		Amount:       price.String(),
		DisplayPrice: domain.DisplayAmount(price),
		Time:         listing.CreatedAt,
	})
	return listing, nil
}

func (im *impl) Buy(c ctx.Ctx, caller domain.Address, ref domain.TokenRef, payment *big.Int) error {
	var sold *marketplace.Listing
	err := im.seq.Do(c, func() error {
		listing, err := im.listingRepo.FindOne(c, ref)
		if err != nil {
			return err
		}
		if listing.Status != marketplace.ListingStatusActive {
			return domain.ErrListingNotActive
		}
		if listing.Seller.Equals(caller) {
			return domain.ErrSelfTrade
		}
		if payment == nil || payment.Cmp(listing.Price) != 0 {
			return domain.ErrIncorrectPayment
		}
		if err := im.fundsRepo.Debit(c, caller.ToLower(), payment); err != nil {
			return err
		}
		// listing leaves the active state before any value moves out
		if err := im.listingRepo.SetStatus(c, ref, marketplace.ListingStatusSold); err != nil {
			return err
		}
		if err := im.settle(c, ref, listing.Seller, caller.ToLower(), listing.Price); err != nil {
			// nothing was transferred, put the listing and payment back
			if serr := im.listingRepo.SetStatus(c, ref, marketplace.ListingStatusActive); serr != nil {
				c.WithFields(log.Fields{"err": serr}).Error("restoring listing after failed settlement failed")
			}
			if cerr := im.fundsRepo.Credit(c, caller.ToLower(), payment); cerr != nil {
				c.WithFields(log.Fields{"err": cerr}).Error("refund after failed settlement failed")
			}
			return err
		}
		sold = listing
		return nil
	})
	if err != nil {
		return err
	}

	im.met.BumpSum("sold", 1)
	im.journal(c, &event.Event{
		Type:         event.TypeSold,
		CollectionId: ref.CollectionId,
		TokenId:      &ref.TokenId,
		Actor:        sold.Seller,
		CounterParty: caller.ToLower(),
		Amount:       sold.Price.String(),
		DisplayPrice: domain.DisplayAmount(sold.Price),
		Time:         im.now(),
	})
	return nil
}

// settle runs the three-way split for a sale of token ref from seller to
// buyer at price. The buyer's payment has already been debited. Custody
// moves before any fund credit goes out.
func (im *impl) settle(c ctx.Ctx, ref domain.TokenRef, seller, buyer domain.Address, price *big.Int) error {
	royaltyRecipient, royaltyAmount, err := im.royaltySource.RoyaltyInfo(c, ref, price)
	if err != nil {
		return err
	}
	feeRecipient, feeAmount, err := im.platformUC.FeeFor(c, price)
	if err != nil {
		return err
	}

	deductions := new(big.Int).Add(royaltyAmount, feeAmount)
	if deductions.Cmp(price) > 0 {
		return domain.ErrFeesExceedPrice
	}
	proceeds := new(big.Int).Sub(price, deductions)

	if err := im.tokenLedger.TransferOwnership(c, ref, buyer); err != nil {
		return err
	}

	if royaltyAmount.Sign() > 0 && !royaltyRecipient.IsEmpty() {
		if err := im.fundsRepo.Credit(c, royaltyRecipient, royaltyAmount); err != nil {
			return err
		}
	}
	if feeAmount.Sign() > 0 && !feeRecipient.IsEmpty() {
		if err := im.fundsRepo.Credit(c, feeRecipient, feeAmount); err != nil {
			return err
		}
	}
	return im.fundsRepo.Credit(c, seller, proceeds)
}

func (im *impl) CancelListing(c ctx.Ctx, caller domain.Address, ref domain.TokenRef) error {
	var seller domain.Address
	err := im.seq.Do(c, func() error {
		listing, err := im.listingRepo.FindOne(c, ref)
		if err != nil {
			return err
		}
		if listing.Status != marketplace.ListingStatusActive {
			return domain.ErrListingNotActive
		}
		if !listing.Seller.Equals(caller) {
			return domain.ErrNotSeller
		}
		seller = listing.Seller
		return im.listingRepo.SetStatus(c, ref, marketplace.ListingStatusCancelled)
	})
	if err != nil {
		return err
	}

	im.journal(c, &event.Event{
		Type:         event.TypeListingCancelled,
		CollectionId: ref.CollectionId,
		TokenId:      &ref.TokenId,
		Actor:        seller,
		Time:         im.now(),
	})
	return nil
}

func (im *impl) GetListing(c ctx.Ctx, ref domain.TokenRef) (*marketplace.Listing, error) {
	return im.listingRepo.FindOne(c, ref)
}

func (im *impl) FindListings(c ctx.Ctx, opts ...marketplace.ListingFindAllOptions) ([]*marketplace.Listing, error) {
	return im.listingRepo.FindAll(c, opts...)
}

func (im *impl) MakeOffer(c ctx.Ctx, caller domain.Address, ref domain.TokenRef, amount *big.Int) (*marketplace.Offer, error) {
	if amount == nil || amount.Sign() <= 0 {
		return nil, domain.ErrInvalidPrice
	}

	var offer *marketplace.Offer
	err := im.seq.Do(c, func() error {
		owner, err := im.tokenLedger.OwnerOf(c, ref)
		if err != nil {
			return err
		}
		if owner.Equals(caller) {
			return domain.ErrSelfTrade
		}

		// escrow: the bid leaves the bidder's balance immediately
		if err := im.fundsRepo.Debit(c, caller.ToLower(), amount); err != nil {
			return err
		}

		id, err := im.offerRepo.NextId(c)
		if err != nil {
			return err
		}
		now := im.now()
		offer = &marketplace.Offer{
			Id:        id,
			TokenRef:  ref,
			Bidder:    caller.ToLower(),
			Amount:    new(big.Int).Set(amount),
			Expiry:    now.Add(im.offerWindow),
			Status:    marketplace.OfferStatusOpen,
			CreatedAt: now,
		}
		if err := im.offerRepo.Insert(c, offer); err != nil {
			if cerr := im.fundsRepo.Credit(c, caller.ToLower(), amount); cerr != nil {
				c.WithFields(log.Fields{"err": cerr}).Error("escrow refund after failed insert failed")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	im.met.BumpSum("offerMade", 1)
	im.journal(c, &event.Event{
		Type:         event.TypeOfferMade,
		CollectionId: ref.CollectionId,
		TokenId:      &ref.TokenId,
		OfferId:      offer.Id,
		Actor:        offer.Bidder,
		Amount:       amount.String(),
		DisplayPrice: domain.DisplayAmount(amount),
		Time:         offer.CreatedAt,
	})
	return offer, nil
}

func (im *impl) AcceptOffer(c ctx.Ctx, caller domain.Address, ref domain.TokenRef, offerId uint64) error {
	var accepted *marketplace.Offer
	err := im.seq.Do(c, func() error {
		offer, err := im.offerRepo.FindOne(c, offerId)
		if err != nil {
			return err
		}
		if offer.TokenRef != ref {
			return domain.ErrBadParamInput
		}
		if offer.Status != marketplace.OfferStatusOpen {
			return domain.ErrOfferNotOpen
		}
		if offer.ExpiredAt(im.now()) {
			// the escrow stays with the offer until the bidder withdraws
			if serr := im.offerRepo.SetStatus(c, offerId, marketplace.OfferStatusExpired); serr != nil {
				c.WithFields(log.Fields{"err": serr, "offerId": offerId}).Warn("marking expired offer failed")
			}
			return domain.ErrOfferExpired
		}

		owner, err := im.tokenLedger.OwnerOf(c, ref)
		if err != nil {
			return err
		}
		if !owner.Equals(caller) {
			return domain.ErrNotTokenOwner
		}

		// the escrowed amount is already out of the bidder's balance, so
		// settlement here only distributes it
		if err := im.offerRepo.SetStatus(c, offerId, marketplace.OfferStatusAccepted); err != nil {
			return err
		}
		if err := im.settle(c, ref, owner, offer.Bidder, offer.Amount); err != nil {
			if serr := im.offerRepo.SetStatus(c, offerId, marketplace.OfferStatusOpen); serr != nil {
				c.WithFields(log.Fields{"err": serr}).Error("restoring offer after failed settlement failed")
			}
			return err
		}
		// a live listing for a token that just changed hands is stale
		if listing, lerr := im.listingRepo.FindOne(c, ref); lerr == nil && listing.Status == marketplace.ListingStatusActive {
			if serr := im.listingRepo.SetStatus(c, ref, marketplace.ListingStatusCancelled); serr != nil {
				c.WithFields(log.Fields{"err": serr, "token": ref.String()}).Warn("cancelling stale listing failed")
			}
		}
		accepted = offer
		return nil
	})
	if err != nil {
		return err
	}

	im.met.BumpSum("offerAccepted", 1)
	im.journal(c, &event.Event{
		Type:         event.TypeOfferAccepted,
		CollectionId: ref.CollectionId,
		TokenId:      &ref.TokenId,
		OfferId:      accepted.Id,
		Actor:        caller.ToLower(),
		CounterParty: accepted.Bidder,
		Amount:       accepted.Amount.String(),
		DisplayPrice: domain.DisplayAmount(accepted.Amount),
		Time:         im.now(),
	})
	return nil
}

func (im *impl) WithdrawOffer(c ctx.Ctx, caller domain.Address, offerId uint64) error {
	var withdrawn *marketplace.Offer
	err := im.seq.Do(c, func() error {
		offer, err := im.offerRepo.FindOne(c, offerId)
		if err != nil {
			return err
		}
		if !offer.Bidder.Equals(caller) {
			return domain.ErrNotBidder
		}
		// open and expired offers both still hold escrow
		if offer.Status != marketplace.OfferStatusOpen && offer.Status != marketplace.OfferStatusExpired {
			return domain.ErrOfferNotOpen
		}
		if err := im.offerRepo.SetStatus(c, offerId, marketplace.OfferStatusWithdrawn); err != nil {
			return err
		}
		if err := im.fundsRepo.Credit(c, offer.Bidder, offer.Amount); err != nil {
			return err
		}
		withdrawn = offer
		return nil
	})
	if err != nil {
		return err
	}

	im.journal(c, &event.Event{
		Type:         event.TypeOfferWithdrawn,
		CollectionId: withdrawn.TokenRef.CollectionId,
		TokenId:      &withdrawn.TokenRef.TokenId,
		OfferId:      withdrawn.Id,
		Actor:        withdrawn.Bidder,
		Amount:       withdrawn.Amount.String(),
		DisplayPrice: domain.DisplayAmount(withdrawn.Amount),
		Time:         im.now(),
	})
	return nil
}

func (im *impl) GetOffer(c ctx.Ctx, offerId uint64) (*marketplace.Offer, error) {
	return im.offerRepo.FindOne(c, offerId)
}

func (im *impl) FindOffers(c ctx.Ctx, opts ...marketplace.OfferFindAllOptions) ([]*marketplace.Offer, error) {
	return im.offerRepo.FindAll(c, opts...)
}

func (im *impl) journal(c ctx.Ctx, ev *event.Event) {
	if err := im.eventRepo.Insert(c, ev); err != nil {
		c.WithFields(log.Fields{"err": err, "type": ev.Type}).Warn("eventRepo.Insert failed")
	}
}
