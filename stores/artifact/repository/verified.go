package repository

import (
	"sync"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/artifact"
)

type verifiedKey struct {
	collectionId domain.CollectionId
	addr         domain.Address
}

type verifiedCreatorRepo struct {
	mu    sync.RWMutex
	flags map[verifiedKey]bool
}

// NewVerifiedCreator stores the informational creator trust flags.
func NewVerifiedCreator() artifact.VerifiedCreatorRepo {
	return &verifiedCreatorRepo{flags: map[verifiedKey]bool{}}
}

func (r *verifiedCreatorRepo) Set(c ctx.Ctx, id domain.CollectionId, addr domain.Address, verified bool) error {
	key := verifiedKey{id, addr.ToLower()}
	r.mu.Lock()
	defer r.mu.Unlock()
	if verified {
		r.flags[key] = true
	} else {
		delete(r.flags, key)
	}
	return nil
}

func (r *verifiedCreatorRepo) Get(c ctx.Ctx, id domain.CollectionId, addr domain.Address) (bool, error) {
	key := verifiedKey{id, addr.ToLower()}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.flags[key], nil
}
