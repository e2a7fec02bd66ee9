package usecase

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/validator"
	"github.com/x-xyz/marketcore/domain"
)

const tokenLifetime = 24 * time.Hour

type impl struct {
	jwtSecret []byte
	admins    map[domain.Address]struct{}
	clock     clock.Clock
}

// New validates tokens signed with jwtSecret. Holders of an admin address get the admin role.
func New(jwtSecret string, admins []domain.Address, clock clock.Clock) domain.AuthUsecase {
	set := map[domain.Address]struct{}{}
	for _, a := range admins {
		set[a.ToLower()] = struct{}{}
	}
	return &impl{
		jwtSecret: []byte(jwtSecret),
		admins:    set,
		clock:     clock,
	}
}

// SignToken issues a token for address, real issuance lives in the account service
func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address) (string, error) {
	claims := domain.JwtCustomClaims{
		Address: string(address),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: im.clock.Now().Add(tokenLifetime).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (domain.Actor, error) {
	// expiry is checked below against the injected clock
	parser := &jwt.Parser{SkipClaimsValidation: true}
	token, err := parser.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		ctx.WithField("err", err).Warn("jwt.ParseWithClaims failed")
		return domain.Actor{}, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*domain.JwtCustomClaims)
	if !ok || !token.Valid || !claims.VerifyExpiresAt(im.clock.Now().Unix(), true) || !validator.IsValidAddress(claims.Address) {
		return domain.Actor{}, domain.ErrUnauthorized
	}

	actor := domain.Actor{
		Address: domain.Address(claims.Address).ToLower(),
		Role:    domain.RoleUser,
	}
	if _, ok := im.admins[actor.Address]; ok {
		actor.Role = domain.RoleAdmin
	}
	return actor, nil
}
