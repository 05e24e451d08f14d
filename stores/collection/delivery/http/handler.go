package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/base/delivery"
	"github.com/heritage-x/goapi/base/validator"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/collection"
	"github.com/heritage-x/goapi/middleware"
)

type handler struct {
	factory collection.FactoryUsecase
}

func New(e *echo.Echo, factory collection.FactoryUsecase) {
	h := &handler{factory}

	gs := e.Group("/collections")

	gs.GET("", h.getAll, middleware.CacheHttp(30*time.Second))

	gs.POST("", h.create)

	g := e.Group("/collection/:collectionId")

	g.GET("", h.get, middleware.CacheHttp(1*time.Minute))

	g.POST("/transfer-ownership", h.transferOwnership)
}

func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Owner  *domain.Address `query:"owner"`
		Offset int32           `query:"offset"`
		Limit  int32           `query:"limit"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []collection.FindAllOptions{}

	if p.Owner != nil {
		opts = append(opts, collection.WithOwner(*p.Owner))
	}

	if p.Offset != 0 || p.Limit != 0 {
		opts = append(opts, collection.WithPagination(p.Offset, p.Limit))
	}

	if res, err := h.factory.FindAll(ctx, opts...); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Caller  domain.Address `json:"caller"`
		Payment string         `json:"payment"`
		collection.CreatePayload
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err.Error())
	}

	if !validator.IsValidAddress(p.Caller.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid caller address")
	}

	payment, err := domain.ParseAmount(p.Payment)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if res, err := h.factory.Create(ctx, p.Caller, payment, p.CreatePayload); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if res, err := h.factory.FindOne(ctx, p.CollectionId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) transferOwnership(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
		Caller       domain.Address      `json:"caller"`
		NewOwner     domain.Address      `json:"newOwner"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Caller.ToLowerStr()) || !validator.IsValidAddress(p.NewOwner.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid address")
	}

	if err := h.factory.TransferOwnership(ctx, p.Caller, p.CollectionId, p.NewOwner); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
