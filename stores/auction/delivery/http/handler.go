package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/delivery"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/auction"
	authMiddleware "github.com/x-xyz/marketcore/stores/auth/delivery/http/middleware"
)

type handler struct {
	auction auction.Usecase
}

func New(e *echo.Echo, auction auction.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{auction}

	e.POST("/auction", h.createAuction, authMiddleware.Auth())

	g := e.Group("/bid")
	g.GET("/:nftId", h.listBids)
	g.GET("/:nftId/highest", h.getHighestBid)
	g.POST("", h.placeBid, authMiddleware.Auth())
	g.POST("/accept", h.acceptBid, authMiddleware.Auth())

	// chain confirmation listener
	g.PUT("/finalize", h.finalizeBid, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

func (h *handler) createAuction(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	actor := authMiddleware.Actor(c)

	// times in unix milliseconds
	type params struct {
		NftId     string          `json:"nftId" validate:"required"`
		Price     decimal.Decimal `json:"price" validate:"positive"`
		StartTime int64           `json:"startTime" validate:"gt=0"`
		EndTime   int64           `json:"endTime" validate:"gtfield=StartTime"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.CreateAuction(ctx, auction.CreateAuctionParams{
		NftId:      p.NftId,
		StartPrice: p.Price,
		StartTime:  time.UnixMilli(p.StartTime),
		EndTime:    time.UnixMilli(p.EndTime),
	}, actor)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) placeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	actor := authMiddleware.Actor(c)

	type params struct {
		NftId         string          `json:"nftId" validate:"required"`
		BidAmount     decimal.Decimal `json:"bidAmount" validate:"positive"`
		ExpiryTime    int64           `json:"expiryTime" validate:"gt=0"`
		BidderAddress domain.Address  `json:"bidderAddress" validate:"address"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.PlaceBid(ctx, auction.PlaceBidParams{
		NftId:         p.NftId,
		BidderAddress: p.BidderAddress,
		BidAmount:     p.BidAmount,
		ExpiryTime:    time.UnixMilli(p.ExpiryTime),
	}, actor)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

type settleParams struct {
	BidId  string        `json:"bidId" validate:"required"`
	TxHash domain.TxHash `json:"txHash" validate:"required"`
}

func (h *handler) finalizeBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p := settleParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.FinalizeBid(ctx, p.BidId, p.TxHash)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) acceptBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	actor := authMiddleware.Actor(c)

	type params struct {
		BidId  string        `json:"bidId" validate:"required"`
		TxHash domain.TxHash `json:"txHash"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.auction.AcceptBid(ctx, p.BidId, p.TxHash, actor)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) listBids(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.auction.ListBids(ctx, c.Param("nftId"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getHighestBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.auction.GetHighestBid(ctx, c.Param("nftId"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
