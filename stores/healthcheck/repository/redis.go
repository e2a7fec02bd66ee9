package repository

import (
	"time"

	"github.com/x-xyz/marketcore/base/ctx"
	hcdomain "github.com/x-xyz/marketcore/domain/healthcheck"
	"github.com/x-xyz/marketcore/domain/keys"
	"github.com/x-xyz/marketcore/service/redis"
)

type redisPinger struct {
	redis redis.Service
}

func NewRedisPinger(r redis.Service) hcdomain.Pinger {
	return &redisPinger{redis: r}
}

func (p *redisPinger) Name() string {
	return "redis"
}

func (p *redisPinger) Ping(context ctx.Ctx) error {
	if err := p.redis.Set(context, keys.RedisKey(keys.PfxHealthCheck, "testset"), []byte("1"), 30*time.Second); err != nil {
		context.WithField("err", err).Error("test redis set failed")
		return err
	}
	return nil
}
