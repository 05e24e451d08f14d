package healthcheck

import "github.com/heritage-x/goapi/base/ctx"

type Repo interface {
	Check(c ctx.Ctx) error
}

type Usecase interface {
	Check(c ctx.Ctx) error
}
