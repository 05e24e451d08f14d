package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/base/delivery"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/event"
	"github.com/heritage-x/goapi/middleware"
)

type handler struct {
	event event.Repo
}

func New(e *echo.Echo, event event.Repo) {
	h := &handler{event}

	g := e.Group("/events")

	g.GET("", h.getAll, middleware.CacheHttp(15*time.Second))

	g.GET("/count", h.count)
}

func buildOpts(c echo.Context) ([]event.FindAllOptions, error) {
	type params struct {
		Types        string               `query:"types"`
		CollectionId *domain.CollectionId `query:"collectionId"`
		TokenId      *domain.TokenId      `query:"tokenId"`
		Actor        *domain.Address      `query:"actor"`
		Offset       int32                `query:"offset"`
		Limit        int32                `query:"limit"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return nil, err
	}

	opts := []event.FindAllOptions{}

	if p.Types != "" {
		types := []event.Type{}
		for _, t := range strings.Split(p.Types, ",") {
			types = append(types, event.Type(t))
		}
		opts = append(opts, event.WithTypes(types...))
	}

	if p.CollectionId != nil {
		opts = append(opts, event.WithCollectionId(*p.CollectionId))
	}

	if p.TokenId != nil {
		opts = append(opts, event.WithTokenId(*p.TokenId))
	}

	if p.Actor != nil {
		opts = append(opts, event.WithActor(*p.Actor))
	}

	if p.Offset != 0 || p.Limit != 0 {
		opts = append(opts, event.WithPagination(p.Offset, p.Limit))
	}

	return opts, nil
}

func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	opts, err := buildOpts(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if res, err := h.event.FindAll(ctx, opts...); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) count(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	opts, err := buildOpts(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if res, err := h.event.Count(ctx, opts...); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
