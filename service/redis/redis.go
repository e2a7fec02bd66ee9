package redis

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/metrics"
	"github.com/x-xyz/marketcore/domain/keys"
)

const (
	// Forever is the expire value of a key without ttl
	Forever = time.Duration(-1)
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis key not found")
	// ErrNoTTL is returned by TTL for a key without expire
	ErrNoTTL = errors.New("redis key has no ttl")
)

// Service is the subset of redis commands used by locks, caches and health checks
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	// SetNX sets key only if it does not exist, ok reports whether it was set
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) (ok bool, err error)
	Del(context ctx.Ctx, keys ...string) (int, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	// TTL returns the remaining seconds of key
	TTL(context ctx.Ctx, key string) (int, error)
	ScriptDo(context ctx.Ctx, hdl *ScriptHdl, keysAndArgs ...interface{}) (interface{}, error)
	Ping(context ctx.Ctx) error
	Name() string
}

// ScriptHdl is a lua script loaded by EVALSHA, falling back to EVAL
type ScriptHdl struct {
	keyCount int
	script   *redis.Script
}

func NewScript(keyCount int, src string) *ScriptHdl {
	return &ScriptHdl{
		keyCount: keyCount,
		script:   redis.NewScript(keyCount, src),
	}
}

func (h *ScriptHdl) Do(conn redis.Conn, keysAndArgs ...interface{}) (interface{}, error) {
	return h.script.Do(conn, keysAndArgs...)
}

func (h *ScriptHdl) prefix(keysAndArgs ...interface{}) string {
	if h.keyCount == 0 || len(keysAndArgs) == 0 {
		return metrics.TagValueNA
	}
	if k, ok := keysAndArgs[0].(string); ok {
		return keys.GetPrefix(k)
	}
	return metrics.TagValueNA
}
