package usecase

import (
	"math/big"
	"time"

	"github.com/heritage-x/goapi/base/bps"
	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/base/log"
	"github.com/heritage-x/goapi/base/metrics"
	"github.com/heritage-x/goapi/base/sequencer"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/artifact"
	"github.com/heritage-x/goapi/domain/collection"
	"github.com/heritage-x/goapi/domain/event"
)

type ArtifactUseCaseCfg struct {
	ArtifactRepo        artifact.Repo
	OperatorRepo        artifact.OperatorRepo
	VerifiedCreatorRepo artifact.VerifiedCreatorRepo
	CollectionRepo      collection.Repo
	EventRepo           event.Repo
	Sequencer           *sequencer.Sequencer
}

type impl struct {
	artifactRepo        artifact.Repo
	operatorRepo        artifact.OperatorRepo
	verifiedCreatorRepo artifact.VerifiedCreatorRepo
	collectionRepo      collection.Repo
	eventRepo           event.Repo
	seq                 *sequencer.Sequencer
	met                 metrics.Service
}

func New(cfg *ArtifactUseCaseCfg) artifact.Usecase {
	return &impl{
		artifactRepo:        cfg.ArtifactRepo,
		operatorRepo:        cfg.OperatorRepo,
		verifiedCreatorRepo: cfg.VerifiedCreatorRepo,
		collectionRepo:      cfg.CollectionRepo,
		eventRepo:           cfg.EventRepo,
		seq:                 cfg.Sequencer,
		met:                 metrics.New("artifact"),
	}
}

func validateMintFields(uri, name string, royaltyRecipient domain.Address, royaltyBps int64) error {
	if uri == "" {
		return domain.ErrTokenURIEmpty
	}
	if name == "" {
		return domain.ErrArtifactNameEmpty
	}
	if !bps.Valid(royaltyBps, artifact.MaxRoyaltyBps) {
		return domain.ErrRoyaltyTooHigh
	}
	// a royalty rate without a recipient would strand the royalty share
	// at settlement time
	if royaltyBps > 0 && royaltyRecipient.IsEmpty() {
		return domain.ErrRoyaltyRecipientEmpty
	}
	return nil
}

func (im *impl) Mint(c ctx.Ctx, caller domain.Address, id domain.CollectionId, value artifact.MintPayload) (*artifact.Artifact, error) {
	var minted *artifact.Artifact
	err := im.seq.Do(c, func() error {
		col, err := im.collectionRepo.FindOne(c, id)
		if err != nil {
			return err
		}
		if col.Paused {
			return domain.ErrMintingPaused
		}
		if value.To.IsEmpty() {
			return domain.ErrInvalidAddress
		}
		if err := validateMintFields(value.TokenURI, value.ArtifactName, value.RoyaltyRecipient, value.RoyaltyBps); err != nil {
			return err
		}

		minted, err = im.mint(c, caller, id, value)
		return err
	})
	if err != nil {
		return nil, err
	}

	im.met.BumpSum("minted", 1)
	im.journal(c, &event.Event{
		Type:         event.TypeArtifactMinted,
		CollectionId: minted.CollectionId,
		TokenId:      &minted.TokenId,
		Actor:        minted.Creator,
		CounterParty: minted.Owner,
		ArtifactName: minted.ArtifactName,
		Time:         minted.MintedAt,
	})

	return minted, nil
}

func (im *impl) BatchMint(c ctx.Ctx, caller domain.Address, id domain.CollectionId, to domain.Address, uris, names []string, royaltyRecipient domain.Address, royaltyBps int64) ([]*artifact.Artifact, error) {
	var minted []*artifact.Artifact
	err := im.seq.Do(c, func() error {
		col, err := im.collectionRepo.FindOne(c, id)
		if err != nil {
			return err
		}
		if col.Paused {
			return domain.ErrMintingPaused
		}
		if to.IsEmpty() {
			return domain.ErrInvalidAddress
		}
		if len(uris) != len(names) {
			return domain.ErrArrayLengthMismatch
		}

		// validate every entry before the first mint so a bad entry
		// rejects the whole batch with no tokens created
		for i := range uris {
			if err := validateMintFields(uris[i], names[i], royaltyRecipient, royaltyBps); err != nil {
				return err
			}
		}

		minted = make([]*artifact.Artifact, 0, len(uris))
		for i := range uris {
			a, err := im.mint(c, caller, id, artifact.MintPayload{
				To:               to,
				TokenURI:         uris[i],
				ArtifactName:     names[i],
				RoyaltyRecipient: royaltyRecipient,
				RoyaltyBps:       royaltyBps,
			})
			if err != nil {
				c.WithFields(log.Fields{"err": err, "index": i}).Error("mint failed mid batch")
				return err
			}
			minted = append(minted, a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	im.met.BumpSum("minted", float64(len(minted)))
	for _, a := range minted {
		im.journal(c, &event.Event{
			Type:         event.TypeArtifactMinted,
			CollectionId: a.CollectionId,
			TokenId:      &a.TokenId,
			Actor:        a.Creator,
			CounterParty: a.Owner,
			ArtifactName: a.ArtifactName,
			Time:         a.MintedAt,
		})
	}

	return minted, nil
}

// mint allocates the next id and stores the token. Validations are the
// caller's responsibility.
func (im *impl) mint(c ctx.Ctx, caller domain.Address, id domain.CollectionId, value artifact.MintPayload) (*artifact.Artifact, error) {
	tokenId, err := im.artifactRepo.NextTokenId(c, id)
	if err != nil {
		c.WithFields(log.Fields{"err": err, "collectionId": id}).Error("artifactRepo.NextTokenId failed")
		return nil, err
	}

	a := &artifact.Artifact{
		CollectionId:         id,
		TokenId:              tokenId,
		Owner:                value.To.ToLower(),
		Creator:              caller.ToLower(),
		TokenURI:             value.TokenURI,
		ArtifactName:         value.ArtifactName,
		OriginLocation:       value.OriginLocation,
		HistoricalPeriod:     value.HistoricalPeriod,
		CulturalSignificance: value.CulturalSignificance,
		RoyaltyRecipient:     value.RoyaltyRecipient.ToLower(),
		RoyaltyBps:           value.RoyaltyBps,
		Approved:             domain.EmptyAddress,
		MintedAt:             time.Now(),
	}
	if err := im.artifactRepo.Insert(c, a); err != nil {
		c.WithFields(log.Fields{"err": err, "collectionId": id, "tokenId": tokenId}).Error("artifactRepo.Insert failed")
		return nil, err
	}
	return a, nil
}

func (im *impl) UpdateInfo(c ctx.Ctx, caller domain.Address, ref domain.TokenRef, value artifact.UpdatePayload) (*artifact.Artifact, error) {
	var updated *artifact.Artifact
	err := im.seq.Do(c, func() error {
		a, err := im.artifactRepo.FindOne(c, ref)
		if err != nil {
			return err
		}
		col, err := im.collectionRepo.FindOne(c, ref.CollectionId)
		if err != nil {
			return err
		}
		// token custody does not grant edit rights; provenance authorship
		// stays with the creator and the collection owner
		if !a.Creator.Equals(caller) && !col.Owner.Equals(caller) {
			return domain.ErrNotAuthorizedUpdate
		}
		if err := im.artifactRepo.SetInfo(c, ref, value); err != nil {
			return err
		}
		updated, err = im.artifactRepo.FindOne(c, ref)
		return err
	})
	if err != nil {
		return nil, err
	}

	im.journal(c, &event.Event{
		Type:         event.TypeArtifactUpdated,
		CollectionId: ref.CollectionId,
		TokenId:      &ref.TokenId,
		Actor:        caller.ToLower(),
		ArtifactName: updated.ArtifactName,
		Time:         time.Now(),
	})

	return updated, nil
}

// canOperate reports whether caller may move or burn the token.
func (im *impl) canOperate(c ctx.Ctx, caller domain.Address, a *artifact.Artifact) (bool, error) {
	if a.Owner.Equals(caller) {
		return true, nil
	}
	if !a.Approved.IsEmpty() && a.Approved.Equals(caller) {
		return true, nil
	}
	approved, err := im.operatorRepo.IsApproved(c, a.CollectionId, a.Owner, caller)
	if err != nil {
		return false, err
	}
	return approved, nil
}

func (im *impl) Transfer(c ctx.Ctx, caller, to domain.Address, ref domain.TokenRef) error {
	if to.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	var from domain.Address
	err := im.seq.Do(c, func() error {
		a, err := im.artifactRepo.FindOne(c, ref)
		if err != nil {
			return err
		}
		ok, err := im.canOperate(c, caller, a)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotOwnerNorApproved
		}
		from = a.Owner
		return im.artifactRepo.SetOwner(c, ref, to)
	})
	if err != nil {
		return err
	}

	im.journal(c, &event.Event{
		Type:         event.TypeTransferred,
		CollectionId: ref.CollectionId,
		TokenId:      &ref.TokenId,
		Actor:        from,
		CounterParty: to.ToLower(),
		Time:         time.Now(),
	})
	return nil
}

func (im *impl) Burn(c ctx.Ctx, caller domain.Address, ref domain.TokenRef) error {
	err := im.seq.Do(c, func() error {
		a, err := im.artifactRepo.FindOne(c, ref)
		if err != nil {
			return err
		}
		ok, err := im.canOperate(c, caller, a)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotOwnerNorApproved
		}
		// terminal: the id can never be referenced again
		return im.artifactRepo.Delete(c, ref)
	})
	if err != nil {
		return err
	}

	im.met.BumpSum("burned", 1)
	im.journal(c, &event.Event{
		Type:         event.TypeBurned,
		CollectionId: ref.CollectionId,
		TokenId:      &ref.TokenId,
		Actor:        caller.ToLower(),
		Time:         time.Now(),
	})
	return nil
}

func (im *impl) Approve(c ctx.Ctx, caller, operator domain.Address, ref domain.TokenRef) error {
	return im.seq.Do(c, func() error {
		a, err := im.artifactRepo.FindOne(c, ref)
		if err != nil {
			return err
		}
		ok, err := im.canOperate(c, caller, a)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotOwnerNorApproved
		}
		return im.artifactRepo.SetApproved(c, ref, operator)
	})
}

func (im *impl) SetApprovalForAll(c ctx.Ctx, caller domain.Address, id domain.CollectionId, operator domain.Address, approved bool) error {
	if operator.IsEmpty() || caller.Equals(operator) {
		return domain.ErrInvalidAddress
	}
	return im.seq.Do(c, func() error {
		return im.operatorRepo.Set(c, id, caller, operator, approved)
	})
}

func (im *impl) GetArtifactInfo(c ctx.Ctx, ref domain.TokenRef) (*artifact.Artifact, error) {
	return im.artifactRepo.FindOne(c, ref)
}

func (im *impl) FindAll(c ctx.Ctx, opts ...artifact.FindAllOptions) ([]*artifact.Artifact, error) {
	res, err := im.artifactRepo.FindAll(c, opts...)
	if err != nil {
		c.WithFields(log.Fields{"err": err}).Error("artifactRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) OwnerOf(c ctx.Ctx, ref domain.TokenRef) (domain.Address, error) {
	a, err := im.artifactRepo.FindOne(c, ref)
	if err != nil {
		return domain.EmptyAddress, err
	}
	return a.Owner, nil
}

func (im *impl) TokenURI(c ctx.Ctx, ref domain.TokenRef) (string, error) {
	a, err := im.artifactRepo.FindOne(c, ref)
	if err != nil {
		return "", err
	}
	return a.TokenURI, nil
}

func (im *impl) RoyaltyInfo(c ctx.Ctx, ref domain.TokenRef, salePrice *big.Int) (domain.Address, *big.Int, error) {
	a, err := im.artifactRepo.FindOne(c, ref)
	if err != nil {
		return domain.EmptyAddress, nil, err
	}
	return a.RoyaltyRecipient, bps.Cut(salePrice, a.RoyaltyBps), nil
}

func (im *impl) VerifyCreator(c ctx.Ctx, caller domain.Address, id domain.CollectionId, addr domain.Address) error {
	return im.setVerified(c, caller, id, addr, true)
}

func (im *impl) UnverifyCreator(c ctx.Ctx, caller domain.Address, id domain.CollectionId, addr domain.Address) error {
	return im.setVerified(c, caller, id, addr, false)
}

func (im *impl) setVerified(c ctx.Ctx, caller domain.Address, id domain.CollectionId, addr domain.Address, verified bool) error {
	err := im.seq.Do(c, func() error {
		col, err := im.collectionRepo.FindOne(c, id)
		if err != nil {
			return err
		}
		if !col.Owner.Equals(caller) {
			return domain.ErrNotCollectionOwner
		}
		return im.verifiedCreatorRepo.Set(c, id, addr, verified)
	})
	if err != nil {
		return err
	}

	typ := event.TypeCreatorVerified
	if !verified {
		typ = event.TypeCreatorUnverified
	}
	im.journal(c, &event.Event{
		Type:         typ,
		CollectionId: id,
		Actor:        caller.ToLower(),
		CounterParty: addr.ToLower(),
		Time:         time.Now(),
	})
	return nil
}

func (im *impl) IsVerifiedCreator(c ctx.Ctx, id domain.CollectionId, addr domain.Address) (bool, error) {
	return im.verifiedCreatorRepo.Get(c, id, addr)
}

func (im *impl) Pause(c ctx.Ctx, caller domain.Address, id domain.CollectionId) error {
	return im.setPaused(c, caller, id, true)
}

func (im *impl) Unpause(c ctx.Ctx, caller domain.Address, id domain.CollectionId) error {
	return im.setPaused(c, caller, id, false)
}

func (im *impl) setPaused(c ctx.Ctx, caller domain.Address, id domain.CollectionId, paused bool) error {
	err := im.seq.Do(c, func() error {
		col, err := im.collectionRepo.FindOne(c, id)
		if err != nil {
			return err
		}
		if !col.Owner.Equals(caller) {
			return domain.ErrNotCollectionOwner
		}
		return im.collectionRepo.SetPaused(c, id, paused)
	})
	if err != nil {
		return err
	}

	typ := event.TypePaused
	if !paused {
		typ = event.TypeUnpaused
	}
	im.journal(c, &event.Event{
		Type:         typ,
		CollectionId: id,
		Actor:        caller.ToLower(),
		Time:         time.Now(),
	})
	return nil
}

// TransferOwnership moves custody without authorization checks. It exists
// for the marketplace settlement path, which already holds the mutation
// stream; taking the sequencer here again would deadlock it.
func (im *impl) TransferOwnership(c ctx.Ctx, ref domain.TokenRef, to domain.Address) error {
	return im.artifactRepo.SetOwner(c, ref, to)
}

func (im *impl) journal(c ctx.Ctx, ev *event.Event) {
	if err := im.eventRepo.Insert(c, ev); err != nil {
		c.WithFields(log.Fields{"err": err, "type": ev.Type}).Warn("eventRepo.Insert failed")
	}
}
