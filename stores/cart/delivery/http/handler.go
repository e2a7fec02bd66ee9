package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/delivery"
	"github.com/x-xyz/marketcore/domain/cart"
	authMiddleware "github.com/x-xyz/marketcore/stores/auth/delivery/http/middleware"
)

type handler struct {
	cart cart.Usecase
}

func New(e *echo.Echo, cart cart.Usecase, authMiddleware *authMiddleware.AuthMiddleware) {
	h := &handler{cart}

	g := e.Group("/add-to-cart", authMiddleware.Auth())
	g.GET("", h.findAll)
	g.POST("", h.add)
	g.DELETE("", h.remove)
	g.POST("/buy", h.checkout)
}

type nftParams struct {
	NftId string `json:"nftId" query:"nftId" validate:"required"`
}

func (h *handler) findAll(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	actor := authMiddleware.Actor(c)

	res, err := h.cart.FindAll(ctx, actor)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) add(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	actor := authMiddleware.Actor(c)

	p := nftParams{}
	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	res, err := h.cart.Add(ctx, p.NftId, actor)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, res)
}

func (h *handler) remove(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	actor := authMiddleware.Actor(c)

	nftId := c.QueryParam("nftId")
	if nftId == "" {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "nftId is required")
	}

	if err := h.cart.Remove(ctx, nftId, actor); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, nil)
}

func (h *handler) checkout(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	actor := authMiddleware.Actor(c)

	res, err := h.cart.Checkout(ctx, actor)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
