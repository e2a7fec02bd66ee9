package compound

import (
	"time"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/service/cache/provider"
)

type impl struct {
	layers []provider.Provider
}

// order of layers is matter, compound cache only handle forward filling
// and return immediately once cache hit
func NewCompound(layers []provider.Provider) provider.Provider {
	return &impl{layers}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	var (
		val    []byte
		ttl    time.Duration
		err    error
		hitIdx = -1
	)

	for idx, lyr := range im.layers {
		if val, ttl, err = lyr.Get(c, key); err == provider.ErrNotFound {
			continue
		} else if err != nil {
			return nil, time.Duration(0), err
		}
		hitIdx = idx
		break
	}

	if hitIdx == -1 {
		return nil, time.Duration(0), provider.ErrNotFound
	}

	// fill layers which missing cache
	for idx := 0; idx < hitIdx; idx++ {
		if err := im.layers[idx].Set(c, key, val, ttl); err != nil {
			return nil, time.Duration(0), err
		}
	}

	return val, ttl, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	for _, lyr := range im.layers {
		if err := lyr.Set(c, key, value, ttl); err != nil {
			return err
		}
	}
	return nil
}

// Del removes from the outermost layer inwards so a concurrent Get can not
// refill an inner layer from a stale outer one
func (im *impl) Del(c ctx.Ctx, key string) error {
	for idx := len(im.layers) - 1; idx >= 0; idx-- {
		if err := im.layers[idx].Del(c, key); err != nil {
			return err
		}
	}
	return nil
}
