package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/base/log"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/event"
	"github.com/heritage-x/goapi/service/query"
)

type mongoRepo struct {
	q query.Mongo
}

// NewMongoRepo persists the journal to mongo for deployments that want it to
// survive restarts.
func NewMongoRepo(q query.Mongo) event.Repo {
	return &mongoRepo{q: q}
}

func (r *mongoRepo) Insert(c ctx.Ctx, value *event.Event) error {
	if err := r.q.Insert(c, domain.TableEvents, value); err != nil {
		c.WithFields(log.Fields{"err": err, "type": value.Type}).Error("q.Insert failed")
		return err
	}
	return nil
}

func buildQuery(c ctx.Ctx, opts ...event.FindAllOptions) (bson.M, int, int, error) {
	opt, err := event.GetFindAllOptions(opts...)
	if err != nil {
		return nil, 0, 0, err
	}

	qry := bson.M{}
	if len(opt.Types) > 0 {
		qry["type"] = bson.M{"$in": opt.Types}
	}
	if opt.CollectionId != nil {
		qry["collectionId"] = *opt.CollectionId
	}
	if opt.TokenId != nil {
		qry["tokenId"] = *opt.TokenId
	}
	if opt.Actor != nil {
		qry["actor"] = *opt.Actor
	}

	offset, limit := 0, 0
	if opt.Offset != nil && opt.Limit != nil {
		offset, limit = int(*opt.Offset), int(*opt.Limit)
	}
	return qry, offset, limit, nil
}

func (r *mongoRepo) FindAll(c ctx.Ctx, opts ...event.FindAllOptions) ([]*event.Event, error) {
	qry, offset, limit, err := buildQuery(c, opts...)
	if err != nil {
		return nil, err
	}

	res := []*event.Event{}
	if err := r.q.Search(c, domain.TableEvents, offset, limit, "time", qry, &res); err != nil {
		c.WithFields(log.Fields{"err": err}).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *mongoRepo) Count(c ctx.Ctx, opts ...event.FindAllOptions) (int, error) {
	qry, _, _, err := buildQuery(c, opts...)
	if err != nil {
		return 0, err
	}

	n, err := r.q.Count(c, domain.TableEvents, qry)
	if err != nil {
		c.WithFields(log.Fields{"err": err}).Error("q.Count failed")
		return 0, err
	}
	return n, nil
}
