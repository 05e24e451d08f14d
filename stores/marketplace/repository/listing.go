package repository

import (
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/marketplace"
)

type listingRepo struct {
	mu    sync.RWMutex
	items map[domain.TokenRef]*marketplace.Listing
}

func NewListingRepo() marketplace.ListingRepo {
	return &listingRepo{items: map[domain.TokenRef]*marketplace.Listing{}}
}

func cloneListing(l *marketplace.Listing) *marketplace.Listing {
	cp := *l
	if l.Price != nil {
		cp.Price = new(big.Int).Set(l.Price)
	}
	return &cp
}

func (r *listingRepo) FindOne(c ctx.Ctx, ref domain.TokenRef) (*marketplace.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.items[ref]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneListing(l), nil
}

func (r *listingRepo) FindAll(c ctx.Ctx, opts ...marketplace.ListingFindAllOptions) ([]*marketplace.Listing, error) {
	opt, err := marketplace.GetListingFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	res := []*marketplace.Listing{}
	for _, l := range r.items {
		if opt.CollectionId != nil && l.TokenRef.CollectionId != *opt.CollectionId {
			continue
		}
		if opt.Seller != nil && !l.Seller.Equals(*opt.Seller) {
			continue
		}
		if opt.Status != nil && l.Status != *opt.Status {
			continue
		}
		res = append(res, cloneListing(l))
	}

	sort.Slice(res, func(i, j int) bool {
		a, b := res[i].TokenRef, res[j].TokenRef
		if a.CollectionId != b.CollectionId {
			return a.CollectionId < b.CollectionId
		}
		return a.TokenId < b.TokenId
	})

	if opt.Offset != nil && opt.Limit != nil {
		res = paginateListings(res, int(*opt.Offset), int(*opt.Limit))
	}
	return res, nil
}

func paginateListings(in []*marketplace.Listing, offset, limit int) []*marketplace.Listing {
	if offset >= len(in) {
		return []*marketplace.Listing{}
	}
	end := offset + limit
	if end > len(in) {
		end = len(in)
	}
	return in[offset:end]
}

func (r *listingRepo) Upsert(c ctx.Ctx, value *marketplace.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[value.TokenRef] = cloneListing(value)
	return nil
}

func (r *listingRepo) SetStatus(c ctx.Ctx, ref domain.TokenRef, status marketplace.ListingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.items[ref]
	if !ok {
		return domain.ErrNotFound
	}
	l.Status = status
	l.UpdatedAt = time.Now()
	return nil
}
