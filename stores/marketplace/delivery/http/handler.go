package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/base/delivery"
	"github.com/heritage-x/goapi/base/validator"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/marketplace"
	"github.com/heritage-x/goapi/middleware"
)

type handler struct {
	marketplace marketplace.Usecase
}

func New(e *echo.Echo, marketplace marketplace.Usecase) {
	h := &handler{marketplace}

	g := e.Group("/marketplace")

	g.GET("/listings", h.getListings, middleware.CacheHttp(15*time.Second))

	g.GET("/offers", h.getOffers)

	g.GET("/offer/:offerId", h.getOffer)

	g.POST("/offer/:offerId/withdraw", h.withdrawOffer)

	gt := g.Group("/collection/:collectionId/token/:tokenId")

	gt.GET("/listing", h.getListing)

	gt.POST("/listing", h.list)

	gt.DELETE("/listing", h.cancelListing)

	gt.POST("/buy", h.buy)

	gt.POST("/offers", h.makeOffer)

	gt.POST("/offer/:offerId/accept", h.acceptOffer)
}

// listingView exposes the integer price alongside its display form; the
// entity keeps *big.Int out of json.
type listingView struct {
	*marketplace.Listing
	Price        string `json:"price"`
	DisplayPrice string `json:"displayPrice"`
}

func toListingView(l *marketplace.Listing) *listingView {
	return &listingView{
		Listing:      l,
		Price:        l.Price.String(),
		DisplayPrice: domain.DisplayAmount(l.Price),
	}
}

type offerView struct {
	*marketplace.Offer
	Amount       string `json:"amount"`
	DisplayPrice string `json:"displayPrice"`
}

func toOfferView(o *marketplace.Offer) *offerView {
	return &offerView{
		Offer:        o,
		Amount:       o.Amount.String(),
		DisplayPrice: domain.DisplayAmount(o.Amount),
	}
}

func bindTokenRef(c echo.Context) (domain.TokenRef, error) {
	ref := domain.TokenRef{}
	if err := (&echo.DefaultBinder{}).BindPathParams(c, &ref); err != nil {
		return ref, err
	}
	return ref, nil
}

func (h *handler) getListings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId *domain.CollectionId       `query:"collectionId"`
		Seller       *domain.Address            `query:"seller"`
		Status       *marketplace.ListingStatus `query:"status"`
		Offset       int32                      `query:"offset"`
		Limit        int32                      `query:"limit"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []marketplace.ListingFindAllOptions{}

	if p.CollectionId != nil {
		opts = append(opts, marketplace.ListingWithCollectionId(*p.CollectionId))
	}

	if p.Seller != nil {
		opts = append(opts, marketplace.ListingWithSeller(*p.Seller))
	}

	if p.Status != nil {
		opts = append(opts, marketplace.ListingWithStatus(*p.Status))
	}

	if p.Offset != 0 || p.Limit != 0 {
		opts = append(opts, marketplace.ListingWithPagination(p.Offset, p.Limit))
	}

	res, err := h.marketplace.FindListings(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	views := make([]*listingView, 0, len(res))
	for _, l := range res {
		views = append(views, toListingView(l))
	}
	return delivery.MakeJsonResp(c, http.StatusOK, views)
}

func (h *handler) getListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	ref, err := bindTokenRef(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.marketplace.GetListing(ctx, ref)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, toListingView(res))
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
		TokenId      domain.TokenId      `param:"tokenId"`
		Caller       domain.Address      `json:"caller"`
		Price        string              `json:"price"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Caller.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid caller address")
	}

	price, err := domain.ParseAmount(p.Price)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	ref := domain.TokenRef{CollectionId: p.CollectionId, TokenId: p.TokenId}

	res, err := h.marketplace.List(ctx, p.Caller, ref, price)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, toListingView(res))
}

func (h *handler) cancelListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
		TokenId      domain.TokenId      `param:"tokenId"`
		Caller       domain.Address      `query:"caller"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Caller.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid caller address")
	}

	ref := domain.TokenRef{CollectionId: p.CollectionId, TokenId: p.TokenId}

	if err := h.marketplace.CancelListing(ctx, p.Caller, ref); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
		TokenId      domain.TokenId      `param:"tokenId"`
		Caller       domain.Address      `json:"caller"`
		Payment      string              `json:"payment"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Caller.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid caller address")
	}

	payment, err := domain.ParseAmount(p.Payment)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	ref := domain.TokenRef{CollectionId: p.CollectionId, TokenId: p.TokenId}

	if err := h.marketplace.Buy(ctx, p.Caller, ref, payment); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) makeOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
		TokenId      domain.TokenId      `param:"tokenId"`
		Caller       domain.Address      `json:"caller"`
		Amount       string              `json:"amount"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Caller.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid caller address")
	}

	amount, err := domain.ParseAmount(p.Amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	ref := domain.TokenRef{CollectionId: p.CollectionId, TokenId: p.TokenId}

	res, err := h.marketplace.MakeOffer(ctx, p.Caller, ref, amount)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, toOfferView(res))
}

func (h *handler) acceptOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId domain.CollectionId `param:"collectionId"`
		TokenId      domain.TokenId      `param:"tokenId"`
		OfferId      uint64              `param:"offerId"`
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

	if err := h.marketplace.AcceptOffer(ctx, p.Caller, ref, p.OfferId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) withdrawOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		OfferId uint64         `param:"offerId"`
		Caller  domain.Address `json:"caller"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if !validator.IsValidAddress(p.Caller.ToLowerStr()) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid caller address")
	}

	if err := h.marketplace.WithdrawOffer(ctx, p.Caller, p.OfferId); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) getOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		OfferId uint64 `param:"offerId"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	res, err := h.marketplace.GetOffer(ctx, p.OfferId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, toOfferView(res))
}

func (h *handler) getOffers(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		CollectionId *domain.CollectionId     `query:"collectionId"`
		TokenId      *domain.TokenId          `query:"tokenId"`
		Bidder       *domain.Address          `query:"bidder"`
		Status       *marketplace.OfferStatus `query:"status"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []marketplace.OfferFindAllOptions{}

	if p.CollectionId != nil && p.TokenId != nil {
		opts = append(opts, marketplace.OfferWithTokenRef(domain.TokenRef{
			CollectionId: *p.CollectionId,
			TokenId:      *p.TokenId,
		}))
	}

	if p.Bidder != nil {
		opts = append(opts, marketplace.OfferWithBidder(*p.Bidder))
	}

	if p.Status != nil {
		opts = append(opts, marketplace.OfferWithStatus(*p.Status))
	}

	res, err := h.marketplace.FindOffers(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	views := make([]*offerView, 0, len(res))
	for _, o := range res {
		views = append(views, toOfferView(o))
	}
	return delivery.MakeJsonResp(c, http.StatusOK, views)
}
