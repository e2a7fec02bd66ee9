package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/delivery"
	"github.com/x-xyz/marketcore/domain/listing"
	authMiddleware "github.com/x-xyz/marketcore/stores/auth/delivery/http/middleware"
)

type handler struct {
	listing listing.Usecase
}

func New(e *echo.Echo, listing listing.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{listing}

	e.GET("/list/:nftId", h.findActive)
	e.POST("/list", h.putOnSale, authMiddleware.Auth())
	e.DELETE("/list/:nftId", h.cancel, authMiddleware.Auth())
	e.POST("/buy", h.buy, authMiddleware.Auth())
}

func (h *handler) findActive(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.listing.FindActive(ctx, c.Param("nftId"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) putOnSale(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	actor := authMiddleware.Actor(c)

	type params struct {
		NftId string          `json:"nftId" validate:"required"`
		Price decimal.Decimal `json:"price" validate:"positive"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id, err := h.listing.PutOnSale(ctx, p.NftId, p.Price, actor)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, map[string]string{"listingId": id})
}

func (h *handler) cancel(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	actor := authMiddleware.Actor(c)

	if err := h.listing.CancelListing(ctx, c.Param("nftId"), actor); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	actor := authMiddleware.Actor(c)

	type params struct {
		NftId     string  `json:"nftId" validate:"required"`
		ListingId *string `json:"listingId"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.listing.Buy(ctx, p.NftId, p.ListingId, actor)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
