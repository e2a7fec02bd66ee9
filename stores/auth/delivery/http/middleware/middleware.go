package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/delivery"
	"github.com/x-xyz/marketcore/base/log"
	"github.com/x-xyz/marketcore/domain"
)

// ActorKey is the echo context key holding the domain.Actor of an authenticated request
const ActorKey = "actor"

type AuthMiddleware struct {
	auth domain.AuthUsecase
}

func New(auth domain.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

// Auth requires a valid bearer token and stores the caller under ActorKey
func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: m.validateAuthToken,
		ErrorHandler: func(err error, c echo.Context) error {
			return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrUnauthorized)
		},
	})
}

// IsAdmin must run after Auth
func (m *AuthMiddleware) IsAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := c.Get(ActorKey).(domain.Actor)
			if !ok || !actor.IsAdmin() {
				return delivery.MakeJsonResp(c, http.StatusForbidden, "require admin privilege")
			}
			return next(c)
		}
	}
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	cont := c.Get("ctx").(ctx.Ctx)
	if actor, err := m.auth.ParseToken(cont, key); err != nil {
		return false, err
	} else {
		c.Set(ActorKey, actor)
		c.Set("ctx", ctx.WithFields(cont, log.Fields{"actor": actor.Address}))
		return true, nil
	}
}

// Actor returns the caller stored by Auth
func Actor(c echo.Context) domain.Actor {
	actor, _ := c.Get(ActorKey).(domain.Actor)
	return actor
}
