package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/base/delivery"
	"github.com/heritage-x/goapi/base/validator"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/funds"
)

type handler struct {
	funds funds.Usecase
}

func New(e *echo.Echo, funds funds.Usecase) {
	h := &handler{funds}

	g := e.Group("/funds")

	g.GET("/:address/balance", h.getBalance)

	g.POST("/deposit", h.deposit)

	g.POST("/withdraw", h.withdraw)

	g.POST("/transfer", h.transfer)
}

func (h *handler) getBalance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := c.Param("address")

	if !validator.IsValidAddress(address) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid address")
	}

	balance, err := h.funds.BalanceOf(ctx, domain.Address(address).ToLower())
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	type resp struct {
		Address domain.Address `json:"address"`
		Balance string         `json:"balance"`
		Display string         `json:"display"`
	}

	return delivery.MakeJsonResp(c, http.StatusOK, resp{
		Address: domain.Address(address).ToLower(),
		Balance: balance.String(),
		Display: domain.DisplayAmount(balance),
	})
}

type movePayload struct {
	Address domain.Address `json:"address"`
	Amount  string         `json:"amount"`
}

func (h *handler) deposit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &movePayload{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Address.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid address")
	}

	amount, err := domain.ParseAmount(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.funds.Deposit(ctx, p.Address.ToLower(), amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) withdraw(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := &movePayload{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Address.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid address")
	}

	amount, err := domain.ParseAmount(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.funds.Withdraw(ctx, p.Address.ToLower(), amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) transfer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		From   domain.Address `json:"from"`
		To     domain.Address `json:"to"`
		Amount string         `json:"amount"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.From.ToLowerStr()) || !validator.IsValidAddress(p.To.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid address")
	}

	amount, err := domain.ParseAmount(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.funds.Transfer(ctx, p.From.ToLower(), p.To.ToLower(), amount); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}
