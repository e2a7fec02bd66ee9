package locker

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/marketcore/base/backoff"
	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/log"
	"github.com/x-xyz/marketcore/base/metrics"
	"github.com/x-xyz/marketcore/service/redis"
)

// releaseScript deletes the key only if it still holds our token
var releaseScript = redis.NewScript(1, `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

const maxRetryInterval = 200 * time.Millisecond

type redisLocker struct {
	redis redis.Service
	met   metrics.Service
	cfg   Config
}

// NewRedis returns a locker shared by every instance using the same redis
func NewRedis(r redis.Service, met metrics.Service, cfg Config) Locker {
	return &redisLocker{
		redis: r,
		met:   met,
		cfg:   cfg.withDefaults(),
	}
}

func (l *redisLocker) Lock(c ctx.Ctx, key string) (func(), error) {
	defer l.met.BumpTime("lock.time").End()

	token := []byte(uuid.NewString())
	deadline := time.Now().Add(l.cfg.Wait)
	bo := backoff.NewExponential(l.cfg.RetryInterval, maxRetryInterval)
	for {
		ok, err := l.redis.SetNX(c, key, token, l.cfg.TTL)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "key": key}).Error("redis.SetNX failed")
			return nil, err
		}
		if ok {
			break
		}

		if time.Now().After(deadline) {
			l.met.BumpSum("lock.timeout", 1)
			return nil, ErrLockTimeout
		}
		if err := bo.Wait(c); err != nil {
			return nil, err
		}
	}

	once := sync.Once{}
	return func() {
		once.Do(func() {
			if _, err := l.redis.ScriptDo(c, releaseScript, key, token); err != nil {
				// the key expires by its ttl anyway
				c.WithFields(log.Fields{"err": err, "key": key}).Warn("failed to release lock")
			}
		})
	}, nil
}
