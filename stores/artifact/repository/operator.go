package repository

import (
	"sync"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/artifact"
)

type operatorKey struct {
	collectionId domain.CollectionId
	owner        domain.Address
	operator     domain.Address
}

type operatorRepo struct {
	mu        sync.RWMutex
	approvals map[operatorKey]bool
}

// NewOperator stores collection-wide operator approvals.
func NewOperator() artifact.OperatorRepo {
	return &operatorRepo{approvals: map[operatorKey]bool{}}
}

func (r *operatorRepo) Set(c ctx.Ctx, id domain.CollectionId, owner, operator domain.Address, approved bool) error {
	key := operatorKey{id, owner.ToLower(), operator.ToLower()}
	r.mu.Lock()
	defer r.mu.Unlock()
	if approved {
		r.approvals[key] = true
	} else {
		delete(r.approvals, key)
	}
	return nil
}

func (r *operatorRepo) IsApproved(c ctx.Ctx, id domain.CollectionId, owner, operator domain.Address) (bool, error) {
	key := operatorKey{id, owner.ToLower(), operator.ToLower()}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.approvals[key], nil
}
