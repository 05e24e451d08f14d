package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/base/delivery"
	"github.com/heritage-x/goapi/base/validator"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/platform"
)

type handler struct {
	platform platform.Usecase
}

func New(e *echo.Echo, platform platform.Usecase) {
	h := &handler{platform}

	g := e.Group("/platform")

	g.GET("/fee", h.getFeeInfo)

	g.PUT("/fee", h.setFeeInfo)

	g.GET("/owner", h.getOwner)

	g.GET("/creation-fee", h.getCreationFee)
}

func (h *handler) getFeeInfo(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if res, err := h.platform.GetFeeInfo(ctx); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) setFeeInfo(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Caller    domain.Address `json:"caller"`
		Recipient domain.Address `json:"recipient"`
		Numerator int64          `json:"numerator"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Caller.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid caller address")
	}

	if err := h.platform.SetFeeInfo(ctx, p.Caller, p.Recipient, p.Numerator); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) getOwner(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	if res, err := h.platform.Owner(ctx); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) getCreationFee(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	fee, err := h.platform.CreationFee(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	type resp struct {
		Amount       string `json:"amount"`
		DisplayPrice string `json:"displayPrice"`
	}

	return delivery.MakeJsonResp(c, http.StatusOK, resp{
		Amount:       fee.String(),
		DisplayPrice: domain.DisplayAmount(fee),
	})
}
