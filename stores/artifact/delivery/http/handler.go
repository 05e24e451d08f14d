package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/base/delivery"
	"github.com/heritage-x/goapi/base/validator"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/artifact"
	"github.com/heritage-x/goapi/middleware"
)

type handler struct {
	artifact artifact.Usecase
}

func New(e *echo.Echo, artifact artifact.Usecase) {
	h := &handler{artifact}

	gc := e.Group("/collection/:collectionId")

	gc.GET("/artifacts", h.getAll, middleware.CacheHttp(30*time.Second))

	gc.POST("/artifacts", h.mint)

	gc.POST("/artifacts/batch", h.batchMint)

	gc.POST("/approval-for-all", h.setApprovalForAll)

	gc.POST("/pause", h.pause)

	gc.POST("/unpause", h.unpause)

	gc.POST("/verified-creators", h.verifyCreator)

	gc.DELETE("/verified-creators/:address", h.unverifyCreator)

	gc.GET("/verified-creators/:address", h.isVerifiedCreator)

	g := e.Group("/collection/:collectionId/artifact/:tokenId")

	g.GET("", h.get, middleware.CacheHttp(30*time.Second))

	g.PUT("/info", h.updateInfo)

	g.POST("/transfer", h.transfer)

	g.DELETE("", h.burn)

	g.POST("/approve", h.approve)

	g.GET("/royalty-info", h.getRoyaltyInfo)
}

func (h *handler) getAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
		Owner        *domain.Address     `query:"owner"`
		Creator      *domain.Address     `query:"creator"`
		Offset       int32               `query:"offset"`
		Limit        int32               `query:"limit"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []artifact.FindAllOptions{
		artifact.WithCollectionId(p.CollectionId),
	}

	if p.Owner != nil {
		opts = append(opts, artifact.WithOwner(*p.Owner))
	}

	if p.Creator != nil {
		opts = append(opts, artifact.WithCreator(*p.Creator))
	}

	if p.Offset != 0 || p.Limit != 0 {
		opts = append(opts, artifact.WithPagination(p.Offset, p.Limit))
	}

	if res, err := h.artifact.FindAll(ctx, opts...); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) mint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
		Caller       domain.Address      `json:"caller"`
		artifact.MintPayload
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Caller.ToLowerStr()) || !validator.IsValidAddress(p.To.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid address")
	}

	if res, err := h.artifact.Mint(ctx, p.Caller, p.CollectionId, p.MintPayload); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, res)
	}
}

func (h *handler) batchMint(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId     domain.CollectionId `param:"collectionId"`
		Caller           domain.Address      `json:"caller"`
		To               domain.Address      `json:"to"`
		TokenURIs        []string            `json:"tokenUris"`
		ArtifactNames    []string            `json:"artifactNames"`
		RoyaltyRecipient domain.Address      `json:"royaltyRecipient"`
		RoyaltyBps       int64               `json:"royaltyBps"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Caller.ToLowerStr()) || !validator.IsValidAddress(p.To.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid address")
	}

	res, err := h.artifact.BatchMint(ctx, p.Caller, p.CollectionId, p.To, p.TokenURIs, p.ArtifactNames, p.RoyaltyRecipient, p.RoyaltyBps)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	ref := domain.TokenRef{}

	if err := c.Bind(&ref); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if res, err := h.artifact.GetArtifactInfo(ctx, ref); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) updateInfo(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
		TokenId      domain.TokenId      `param:"tokenId"`
		Caller       domain.Address      `json:"caller"`
		artifact.UpdatePayload
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Caller.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid caller address")
	}

	ref := domain.TokenRef{CollectionId: p.CollectionId, TokenId: p.TokenId}

	if res, err := h.artifact.UpdateInfo(ctx, p.Caller, ref, p.UpdatePayload); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) transfer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
		TokenId      domain.TokenId      `param:"tokenId"`
		Caller       domain.Address      `json:"caller"`
		To           domain.Address      `json:"to"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Caller.ToLowerStr()) || !validator.IsValidAddress(p.To.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid address")
	}

	ref := domain.TokenRef{CollectionId: p.CollectionId, TokenId: p.TokenId}

	if err := h.artifact.Transfer(ctx, p.Caller, p.To, ref); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) burn(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
		TokenId      domain.TokenId      `param:"tokenId"`
		Caller       domain.Address      `json:"caller"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Caller.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid caller address")
	}

	ref := domain.TokenRef{CollectionId: p.CollectionId, TokenId: p.TokenId}

	if err := h.artifact.Burn(ctx, p.Caller, ref); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) approve(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
		TokenId      domain.TokenId      `param:"tokenId"`
		Caller       domain.Address      `json:"caller"`
		Operator     domain.Address      `json:"operator"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Caller.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid caller address")
	}

	ref := domain.TokenRef{CollectionId: p.CollectionId, TokenId: p.TokenId}

	if err := h.artifact.Approve(ctx, p.Caller, p.Operator, ref); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) setApprovalForAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
		Caller       domain.Address      `json:"caller"`
		Operator     domain.Address      `json:"operator"`
		Approved     bool                `json:"approved"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Caller.ToLowerStr()) || !validator.IsValidAddress(p.Operator.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid address")
	}

	if err := h.artifact.SetApprovalForAll(ctx, p.Caller, p.CollectionId, p.Operator, p.Approved); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) getRoyaltyInfo(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
		TokenId      domain.TokenId      `param:"tokenId"`
		SalePrice    string              `query:"salePrice"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	salePrice, err := domain.ParseAmount(p.SalePrice)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	ref := domain.TokenRef{CollectionId: p.CollectionId, TokenId: p.TokenId}

	recipient, amount, err := h.artifact.RoyaltyInfo(ctx, ref, salePrice)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	type resp struct {
		Recipient    domain.Address `json:"recipient"`
		Amount       string         `json:"amount"`
		DisplayPrice string         `json:"displayPrice"`
	}

	return delivery.MakeJsonResp(c, http.StatusOK, resp{
		Recipient:    recipient,
		Amount:       amount.String(),
		DisplayPrice: domain.DisplayAmount(amount),
	})
}

func (h *handler) pause(c echo.Context) error {
	return h.setPaused(c, true)
}

func (h *handler) unpause(c echo.Context) error {
	return h.setPaused(c, false)
}

func (h *handler) setPaused(c echo.Context, paused bool) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
		Caller       domain.Address      `json:"caller"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Caller.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid caller address")
	}

	var err error
	if paused {
		err = h.artifact.Pause(ctx, p.Caller, p.CollectionId)
	} else {
		err = h.artifact.Unpause(ctx, p.Caller, p.CollectionId)
	}
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) verifyCreator(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
		Caller       domain.Address      `json:"caller"`
		Address      domain.Address      `json:"address"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Caller.ToLowerStr()) || !validator.IsValidAddress(p.Address.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid address")
	}

	if err := h.artifact.VerifyCreator(ctx, p.Caller, p.CollectionId, p.Address); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) unverifyCreator(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
		Address      domain.Address      `param:"address"`
		Caller       domain.Address      `query:"caller"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Caller.ToLowerStr()) || !validator.IsValidAddress(p.Address.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid address")
	}

	if err := h.artifact.UnverifyCreator(ctx, p.Caller, p.CollectionId, p.Address); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) isVerifiedCreator(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
		Address      domain.Address      `param:"address"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if res, err := h.artifact.IsVerifiedCreator(ctx, p.CollectionId, p.Address); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
