package usecase

import (
	"math/big"
	"time"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/base/log"
	"github.com/heritage-x/goapi/base/metrics"
	"github.com/heritage-x/goapi/base/sequencer"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/collection"
	"github.com/heritage-x/goapi/domain/event"
	"github.com/heritage-x/goapi/domain/funds"
	"github.com/heritage-x/goapi/domain/platform"
)

type FactoryUseCaseCfg struct {
	CollectionRepo collection.Repo
	FundsRepo      funds.Repo
	PlatformUC     platform.Usecase
	EventRepo      event.Repo
	Sequencer      *sequencer.Sequencer
}

type impl struct {
	collectionRepo collection.Repo
	fundsRepo      funds.Repo
	platformUC     platform.Usecase
	eventRepo      event.Repo
	seq            *sequencer.Sequencer
	met            metrics.Service
}

func New(cfg *FactoryUseCaseCfg) collection.FactoryUsecase {
	return &impl{
		collectionRepo: cfg.CollectionRepo,
		fundsRepo:      cfg.FundsRepo,
		platformUC:     cfg.PlatformUC,
		eventRepo:      cfg.EventRepo,
		seq:            cfg.Sequencer,
		met:            metrics.New("factory"),
	}
}

func (im *impl) Create(c ctx.Ctx, caller domain.Address, payment *big.Int, value collection.CreatePayload) (*collection.Collection, error) {
	if value.Name == "" || value.Symbol == "" {
		return nil, domain.ErrBadParamInput
	}

	var created *collection.Collection
	var fee *big.Int
	err := im.seq.Do(c, func() error {
		var err error
		fee, err = im.platformUC.CreationFee(c)
		if err != nil {
			c.WithFields(log.Fields{"err": err}).Error("platformUC.CreationFee failed")
			return err
		}
		if payment == nil || payment.Cmp(fee) != 0 {
			return domain.ErrIncorrectPayment
		}

		feeInfo, err := im.platformUC.GetFeeInfo(c)
		if err != nil {
			c.WithFields(log.Fields{"err": err}).Error("platformUC.GetFeeInfo failed")
			return err
		}

		// the attached fee leaves the caller's balance first; an uncovered
		// balance fails the whole call before any state is allocated
		if err := im.fundsRepo.Debit(c, caller.ToLower(), fee); err != nil {
			return err
		}

		id, err := im.collectionRepo.NextId(c)
		if err != nil {
			c.WithFields(log.Fields{"err": err}).Error("collectionRepo.NextId failed")
			return err
		}

		created = &collection.Collection{
			Id:          id,
			Name:        value.Name,
			Symbol:      value.Symbol,
			Description: value.Description,
			CoverImage:  value.CoverImage,
			BannerImage: value.BannerImage,
			Owner:       caller.ToLower(),
			CreatedAt:   time.Now(),
		}
		if err := im.collectionRepo.Create(c, created); err != nil {
			c.WithFields(log.Fields{"err": err, "id": id}).Error("collectionRepo.Create failed")
			return err
		}

		if err := im.fundsRepo.Credit(c, feeInfo.Recipient, fee); err != nil {
			c.WithFields(log.Fields{"err": err}).Error("fundsRepo.Credit failed")
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	im.met.BumpSum("collection.created", 1)
	im.journal(c, &event.Event{
		Type:         event.TypeCollectionCreated,
		CollectionId: created.Id,
		Actor:        caller.ToLower(),
		ArtifactName: created.Name,
		Amount:       fee.String(),
		DisplayPrice: domain.DisplayAmount(fee),
		Time:         created.CreatedAt,
	})

	return created, nil
}

func (im *impl) FindAll(c ctx.Ctx, opts ...collection.FindAllOptions) ([]*collection.Collection, error) {
	res, err := im.collectionRepo.FindAll(c, opts...)
	if err != nil {
		c.WithFields(log.Fields{"err": err}).Error("collectionRepo.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindOne(c ctx.Ctx, id domain.CollectionId) (*collection.Collection, error) {
	res, err := im.collectionRepo.FindOne(c, id)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *impl) TransferOwnership(c ctx.Ctx, caller domain.Address, id domain.CollectionId, newOwner domain.Address) error {
	if newOwner.IsEmpty() {
		return domain.ErrInvalidAddress
	}
	return im.seq.Do(c, func() error {
		col, err := im.collectionRepo.FindOne(c, id)
		if err != nil {
			return err
		}
		if !col.Owner.Equals(caller) {
			return domain.ErrNotCollectionOwner
		}
		return im.collectionRepo.SetOwner(c, id, newOwner)
	})
}

func (im *impl) journal(c ctx.Ctx, ev *event.Event) {
	if err := im.eventRepo.Insert(c, ev); err != nil {
		c.WithFields(log.Fields{"err": err, "type": ev.Type}).Warn("eventRepo.Insert failed")
	}
}
