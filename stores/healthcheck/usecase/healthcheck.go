package usecase

import (
	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain/healthcheck"
)

type impl struct {
	repo healthcheck.Repo
}

func New(repo healthcheck.Repo) healthcheck.Usecase {
	return &impl{repo: repo}
}

func (im *impl) Check(c ctx.Ctx) error {
	return im.repo.Check(c)
}
