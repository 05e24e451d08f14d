package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/base/database/mongoclient"
	"github.com/heritage-x/goapi/domain/healthcheck"
)

type impl struct {
	mongo *mongoclient.Client
}

// New builds the health repo. A nil mongo client means the journal runs
// in memory and there is no backend to probe.
func New(mongo *mongoclient.Client) healthcheck.Repo {
	return &impl{mongo: mongo}
}

func (im *impl) Check(c ctx.Ctx) error {
	if im.mongo == nil {
		return nil
	}
	pctx, cancel := ctx.WithTimeout(c, 3*time.Second)
	defer cancel()
	return im.mongo.Ping(pctx, readpref.Primary())
}
