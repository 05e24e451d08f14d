package repository

import (
	"sort"
	"sync"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/collection"
)

type collectionRepo struct {
	mu     sync.RWMutex
	nextId domain.CollectionId
	items  map[domain.CollectionId]*collection.Collection
}

// NewCollection creates the in-process collection registry. Ids are
// allocated sequentially starting from 1.
func NewCollection() collection.Repo {
	return &collectionRepo{
		nextId: 1,
		items:  map[domain.CollectionId]*collection.Collection{},
	}
}

func clone(v *collection.Collection) *collection.Collection {
	cp := *v
	return &cp
}

func (r *collectionRepo) FindAll(c ctx.Ctx, optFns ...collection.FindAllOptions) ([]*collection.Collection, error) {
	opts, err := collection.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	res := make([]*collection.Collection, 0, len(r.items))
	for _, v := range r.items {
		if opts.Owner != nil && !v.Owner.Equals(*opts.Owner) {
			continue
		}
		res = append(res, clone(v))
	}
	r.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool { return res[i].Id < res[j].Id })

	if opts.Offset != nil && opts.Limit != nil {
		off, lim := int(*opts.Offset), int(*opts.Limit)
		if off > len(res) {
			off = len(res)
		}
		end := off + lim
		if end > len(res) {
			end = len(res)
		}
		res = res[off:end]
	}

	return res, nil
}

func (r *collectionRepo) FindOne(c ctx.Ctx, id domain.CollectionId) (*collection.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.items[id]; ok {
		return clone(v), nil
	}
	return nil, domain.ErrNotFound
}

func (r *collectionRepo) NextId(c ctx.Ctx) (domain.CollectionId, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextId
	r.nextId++
	return id, nil
}

func (r *collectionRepo) Create(c ctx.Ctx, value *collection.Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[value.Id] = clone(value)
	return nil
}

func (r *collectionRepo) SetOwner(c ctx.Ctx, id domain.CollectionId, owner domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Owner = owner.ToLower()
	return nil
}

func (r *collectionRepo) SetPaused(c ctx.Ctx, id domain.CollectionId, paused bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Paused = paused
	return nil
}
