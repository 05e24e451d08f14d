package repository

import (
	"sort"
	"sync"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/artifact"
)

type artifactRepo struct {
	mu      sync.RWMutex
	nextIds map[domain.CollectionId]domain.TokenId
	items   map[domain.TokenRef]*artifact.Artifact
}

// NewArtifact creates the in-process token store. Burned tokens are removed
// outright; a removed id is indistinguishable from one never minted, which
// is exactly the "invalid token ID" contract.
func NewArtifact() artifact.Repo {
	return &artifactRepo{
		nextIds: map[domain.CollectionId]domain.TokenId{},
		items:   map[domain.TokenRef]*artifact.Artifact{},
	}
}

func clone(v *artifact.Artifact) *artifact.Artifact {
	cp := *v
	return &cp
}

func (r *artifactRepo) FindOne(c ctx.Ctx, ref domain.TokenRef) (*artifact.Artifact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.items[ref]; ok {
		return clone(v), nil
	}
	return nil, domain.ErrInvalidTokenId
}

func (r *artifactRepo) FindAll(c ctx.Ctx, optFns ...artifact.FindAllOptions) ([]*artifact.Artifact, error) {
	opts, err := artifact.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	res := make([]*artifact.Artifact, 0)
	for _, v := range r.items {
		if opts.CollectionId != nil && v.CollectionId != *opts.CollectionId {
			continue
		}
		if opts.Owner != nil && !v.Owner.Equals(*opts.Owner) {
			continue
		}
		if opts.Creator != nil && !v.Creator.Equals(*opts.Creator) {
			continue
		}
		res = append(res, clone(v))
	}
	r.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool {
		if res[i].CollectionId != res[j].CollectionId {
			return res[i].CollectionId < res[j].CollectionId
		}
		return res[i].TokenId < res[j].TokenId
	})

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

func (r *artifactRepo) NextTokenId(c ctx.Ctx, id domain.CollectionId) (domain.TokenId, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := r.nextIds[id]
	r.nextIds[id] = next + 1
	return next, nil
}

func (r *artifactRepo) Insert(c ctx.Ctx, value *artifact.Artifact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[value.Ref()] = clone(value)
	return nil
}

func (r *artifactRepo) SetOwner(c ctx.Ctx, ref domain.TokenRef, owner domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[ref]
	if !ok {
		return domain.ErrInvalidTokenId
	}
	v.Owner = owner.ToLower()
	// a transfer always voids the per-token approval
	v.Approved = domain.EmptyAddress
	return nil
}

func (r *artifactRepo) SetApproved(c ctx.Ctx, ref domain.TokenRef, operator domain.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[ref]
	if !ok {
		return domain.ErrInvalidTokenId
	}
	v.Approved = operator.ToLower()
	return nil
}

func (r *artifactRepo) SetInfo(c ctx.Ctx, ref domain.TokenRef, value artifact.UpdatePayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[ref]
	if !ok {
		return domain.ErrInvalidTokenId
	}
	// empty strings are "keep" sentinels enabling partial updates
	if value.ArtifactName != "" {
		v.ArtifactName = value.ArtifactName
	}
	if value.OriginLocation != "" {
		v.OriginLocation = value.OriginLocation
	}
	if value.HistoricalPeriod != "" {
		v.HistoricalPeriod = value.HistoricalPeriod
	}
	if value.CulturalSignificance != "" {
		v.CulturalSignificance = value.CulturalSignificance
	}
	return nil
}

func (r *artifactRepo) Delete(c ctx.Ctx, ref domain.TokenRef) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[ref]; !ok {
		return domain.ErrInvalidTokenId
	}
	delete(r.items, ref)
	return nil
}
