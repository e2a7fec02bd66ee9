package domain

import (
	"github.com/golang-jwt/jwt"
	"github.com/x-xyz/marketcore/base/ctx"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Actor is the resolved identity of the caller of an operation
type Actor struct {
	Address Address `json:"address"`
	Role    Role    `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Is reports whether the actor is the holder of address
func (a Actor) Is(address Address) bool {
	return !a.Address.IsEmpty() && a.Address.Equals(address)
}

type JwtCustomClaims struct {
	Address string `json:"data"` // name data for backward compatibility
	jwt.StandardClaims
}

type AuthUsecase interface {
	SignToken(ctx ctx.Ctx, address Address) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (Actor, error)
}
