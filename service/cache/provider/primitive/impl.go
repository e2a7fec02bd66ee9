package primitive

import (
	"time"

	"github.com/coocood/freecache"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/log"
	"github.com/x-xyz/marketcore/service/cache/provider"
)

type impl struct {
	name  string
	cache *freecache.Cache
}

// NewPrimitive creates an in-process cache of `size` MB
func NewPrimitive(name string, size int) provider.Provider {
	return &impl{name, freecache.NewCache(size * 1024 * 1024)}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, expireAt, err := im.cache.GetWithExpiration([]byte(key))
	if err == freecache.ErrNotFound {
		return nil, time.Duration(0), provider.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"cache": im.name, "key": key, "err": err}).Error("cache.Get failed")
		return nil, time.Duration(0), err
	}

	if expireAt == 0 {
		return val, time.Duration(0), nil
	}
	ttl := time.Until(time.Unix(int64(expireAt), 0)).Truncate(time.Second)
	if ttl < time.Second {
		ttl = time.Second
	}
	return val, ttl, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if err := im.cache.Set([]byte(key), value, int(ttl.Seconds())); err != nil {
		c.WithFields(log.Fields{"cache": im.name, "key": key, "err": err}).Error("cache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	im.cache.Del([]byte(key))
	return nil
}
