package repository

import (
	"sync"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain/event"
)

// memoryRepo keeps the journal in insertion order. It is the default when no
// mongo backend is configured.
type memoryRepo struct {
	mu     sync.RWMutex
	events []*event.Event
}

func NewMemoryRepo() event.Repo {
	return &memoryRepo{}
}

func (r *memoryRepo) Insert(c ctx.Ctx, value *event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *value
	r.events = append(r.events, &cp)
	return nil
}

func (r *memoryRepo) FindAll(c ctx.Ctx, opts ...event.FindAllOptions) ([]*event.Event, error) {
	opt, err := event.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	res := []*event.Event{}
	for _, ev := range r.events {
		if !opt.Match(ev) {
			continue
		}
		cp := *ev
		res = append(res, &cp)
	}

	if opt.Offset != nil && opt.Limit != nil {
		offset, limit := int(*opt.Offset), int(*opt.Limit)
		if offset >= len(res) {
			return []*event.Event{}, nil
		}
		end := offset + limit
		if end > len(res) {
			end = len(res)
		}
		res = res[offset:end]
	}
	return res, nil
}

func (r *memoryRepo) Count(c ctx.Ctx, opts ...event.FindAllOptions) (int, error) {
	opt, err := event.GetFindAllOptions(opts...)
	if err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, ev := range r.events {
		if opt.Match(ev) {
			n++
		}
	}
	return n, nil
}
