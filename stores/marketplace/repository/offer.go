package repository

import (
	"math/big"
	"sort"
	"sync"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/marketplace"
)

type offerRepo struct {
	mu     sync.RWMutex
	nextId uint64
	items  map[uint64]*marketplace.Offer
}

func NewOfferRepo() marketplace.OfferRepo {
	return &offerRepo{nextId: 1, items: map[uint64]*marketplace.Offer{}}
}

func cloneOffer(o *marketplace.Offer) *marketplace.Offer {
	cp := *o
	if o.Amount != nil {
		cp.Amount = new(big.Int).Set(o.Amount)
	}
	return &cp
}

func (r *offerRepo) FindOne(c ctx.Ctx, id uint64) (*marketplace.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneOffer(o), nil
}

func (r *offerRepo) FindAll(c ctx.Ctx, opts ...marketplace.OfferFindAllOptions) ([]*marketplace.Offer, error) {
	opt, err := marketplace.GetOfferFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	res := []*marketplace.Offer{}
	for _, o := range r.items {
		if opt.TokenRef != nil && o.TokenRef != *opt.TokenRef {
			continue
		}
		if opt.Bidder != nil && !o.Bidder.Equals(*opt.Bidder) {
			continue
		}
		if opt.Status != nil && o.Status != *opt.Status {
			continue
		}
		res = append(res, cloneOffer(o))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Id < res[j].Id })
	return res, nil
}

func (r *offerRepo) NextId(c ctx.Ctx) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextId
	r.nextId++
	return id, nil
}

func (r *offerRepo) Insert(c ctx.Ctx, value *marketplace.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[value.Id] = cloneOffer(value)
	return nil
}

func (r *offerRepo) SetStatus(c ctx.Ctx, id uint64, status marketplace.OfferStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}
