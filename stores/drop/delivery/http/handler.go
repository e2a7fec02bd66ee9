package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/delivery"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/drop"
	"github.com/x-xyz/marketcore/domain/listing"
	"github.com/x-xyz/marketcore/middleware"
	authMiddleware "github.com/x-xyz/marketcore/stores/auth/delivery/http/middleware"
)

type handler struct {
	drop drop.Usecase
}

func New(e *echo.Echo, dropUC drop.Usecase, authMiddleware *authMiddleware.AuthMiddleware, httpCache *middleware.HttpCache) {
	h := &handler{dropUC}

	g := e.Group("/drop")
	g.GET("", h.findAll, httpCache.CacheHttp(10*time.Second))
	g.GET("/:dropId", h.findOne)
	g.GET("/featured/:owner", h.findFeatured, middleware.IsValidAddress("owner"))

	g.POST("", h.create, authMiddleware.Auth())
	g.DELETE("/:dropId", h.delete, authMiddleware.Auth())
	g.PUT("/nft", h.addAsset, authMiddleware.Auth())
	g.PATCH("/nft", h.updateAsset, authMiddleware.Auth())
	g.DELETE("/nft/:nftId", h.removeAsset, authMiddleware.Auth())
	g.PUT("/status/pending", h.toPending, authMiddleware.Auth())
	g.PATCH("/feature", h.feature, authMiddleware.Auth())

	// chain confirmation listener
	g.PUT("/status/live", h.advance(drop.StatusLive), authMiddleware.Auth(), authMiddleware.IsAdmin())
	g.PUT("/status/closed", h.advance(drop.StatusClosed), authMiddleware.Auth(), authMiddleware.IsAdmin())
	g.PUT("/txHash", h.attachTxHash, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

type dropIdParams struct {
	DropId string `json:"dropId" validate:"required"`
}

type memberParams struct {
	DropId string          `json:"dropId" validate:"required"`
	NftId  string          `json:"nftId" validate:"required"`
	Price  decimal.Decimal `json:"price" validate:"positive"`
	Supply int             `json:"supply" validate:"gte=1"`
}

func (p memberParams) toDomain() drop.MemberParams {
	return drop.MemberParams{
		DropId: p.DropId,
		NftId:  p.NftId,
		Price:  p.Price,
		Supply: p.Supply,
	}
}

func (h *handler) findAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Owner  string `query:"owner"`
		Status string `query:"status" validate:"omitempty,oneof=draft pending live closed"`
		Offset int    `query:"offset" validate:"gte=0"`
		Limit  int    `query:"limit" validate:"gte=0,lte=100"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	opts := []drop.FindAllOptionsFunc{}
	if p.Owner != "" {
		opts = append(opts, drop.WithOwner(domain.Address(p.Owner)))
	}
	if p.Status != "" {
		opts = append(opts, drop.WithStatus(drop.Status(p.Status)))
	}
	if p.Limit > 0 {
		opts = append(opts, drop.WithPagination(p.Offset, p.Limit))
	}

	res, err := h.drop.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) findOne(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.drop.FindOne(ctx, c.Param("dropId"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) findFeatured(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.drop.FindFeatured(ctx, domain.Address(c.Param("owner")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	actor := authMiddleware.Actor(c)

	// times in unix milliseconds
	type params struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
		SaleType    string `json:"saleType" validate:"oneof=fixed-price auction"`
		DropType    string `json:"dropType" validate:"oneof=normal premium"`
		StartTime   int64  `json:"startTime" validate:"gt=0"`
		EndTime     int64  `json:"endTime" validate:"gtfield=StartTime"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.drop.Create(ctx, drop.CreateParams{
		Title:       p.Title,
		Description: p.Description,
		SaleType:    listing.SaleType(p.SaleType),
		DropType:    drop.DropType(p.DropType),
		StartTime:   time.UnixMilli(p.StartTime),
		EndTime:     time.UnixMilli(p.EndTime),
	}, actor)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	actor := authMiddleware.Actor(c)

	if err := h.drop.Delete(ctx, c.Param("dropId"), actor); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) addAsset(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	actor := authMiddleware.Actor(c)

	p := memberParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.drop.AddAsset(ctx, p.toDomain(), actor)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) updateAsset(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	actor := authMiddleware.Actor(c)

	p := memberParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.drop.UpdateAsset(ctx, p.toDomain(), actor)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) removeAsset(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	actor := authMiddleware.Actor(c)

	if err := h.drop.RemoveAsset(ctx, c.Param("nftId"), actor); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) toPending(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	actor := authMiddleware.Actor(c)

	p := dropIdParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.drop.TransitionStatus(ctx, p.DropId, drop.StatusPending, actor)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) advance(to drop.Status) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Get("ctx").(ctx.Ctx)

		p := dropIdParams{}
		if err := c.Bind(&p); err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}
		if err := c.Validate(p); err != nil {
			return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
		}

		res, err := h.drop.AdvanceStatus(ctx, p.DropId, to)
		if err != nil {
			return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
		}
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}

func (h *handler) attachTxHash(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		DropId string        `json:"dropId" validate:"required"`
		TxHash domain.TxHash `json:"txHash" validate:"required"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.drop.AttachTxHash(ctx, p.DropId, p.TxHash)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) feature(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	actor := authMiddleware.Actor(c)

	p := dropIdParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.drop.Feature(ctx, p.DropId, actor)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
