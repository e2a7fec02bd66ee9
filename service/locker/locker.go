package locker

import (
	"time"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain"
)

var (
	// ErrLockTimeout is returned when the key stays held by others longer than the wait time
	ErrLockTimeout = domain.NewError(domain.ErrConflict, "Another request on this NFT is in progress, please retry.")
)

// Locker serializes work on a key across requests
type Locker interface {
	// Lock blocks until key is held, the wait time passes or c is done.
	// The returned func releases the key and is safe to call more than once.
	Lock(c ctx.Ctx, key string) (unlock func(), err error)
}

type Config struct {
	// TTL bounds how long a crashed holder keeps the key
	TTL time.Duration
	// Wait bounds how long Lock blocks
	Wait time.Duration
	// RetryInterval is the first polling interval of the redis locker, it doubles up to 200ms
	RetryInterval time.Duration
}

func (cfg Config) withDefaults() Config {
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Second
	}
	if cfg.Wait <= 0 {
		cfg.Wait = 5 * time.Second
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 20 * time.Millisecond
	}
	return cfg
}
