package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/delivery"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/asset"
	authMiddleware "github.com/x-xyz/marketcore/stores/auth/delivery/http/middleware"
)

type handler struct {
	asset asset.Usecase
}

func New(e *echo.Echo, asset asset.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{asset}

	g := e.Group("/assets")
	g.GET("", h.findAll)
	g.GET("/:nftId", h.findOne)

	// admin, used by the minting service
	g.POST("", h.register, authMiddleware.Auth(), authMiddleware.IsAdmin())
}

func (h *handler) findOne(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.asset.FindOne(ctx, c.Param("nftId"))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) findAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Owner  string `query:"owner"`
		DropId string `query:"dropId"`
		OnSale string `query:"onSale" validate:"omitempty,oneof=true false"`
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

	opts := []asset.FindAllOptionsFunc{}
	if p.Owner != "" {
		opts = append(opts, asset.WithOwner(domain.Address(p.Owner)))
	}
	if p.DropId != "" {
		opts = append(opts, asset.WithDropId(p.DropId))
	}
	if p.OnSale != "" {
		opts = append(opts, asset.WithOnSale(p.OnSale == "true"))
	}
	if p.Limit > 0 {
		opts = append(opts, asset.WithPagination(p.Offset, p.Limit))
	}

	res, err := h.asset.FindAll(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) register(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Name  string         `json:"name" validate:"required"`
		Owner domain.Address `json:"owner" validate:"address"`
	}

	p := params{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.asset.Register(ctx, p.Name, p.Owner)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}
