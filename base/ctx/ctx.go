package ctx

import (
	"context"
	"time"

	log "github.com/x-xyz/marketcore/base/log"
)

// Ctx is the request scoped context passed through every layer: it cancels like a context.Context
// and logs with the fields collected along the way.
type Ctx struct {
	context.Context
	log.Logger
}

func Background() Ctx {
	return Ctx{
		Context: context.Background(),
		Logger:  log.Log(),
	}
}

func Todo() Ctx {
	return Ctx{
		Context: context.TODO(),
		Logger:  log.Log(),
	}
}

// WithValue stores val in the context and also attaches it to the logger
func WithValue(parent Ctx, key string, val interface{}) Ctx {
	return Ctx{
		Context: context.WithValue(parent, key, val),
		Logger:  parent.Logger.WithField(key, val),
	}
}

func WithValues(parent Ctx, kvs map[string]interface{}) Ctx {
	c := parent
	for k, v := range kvs {
		c = WithValue(c, k, v)
	}
	return c
}

// WithFields only extends the logger, the context values stay untouched
func WithFields(parent Ctx, fields log.Fields) Ctx {
	return Ctx{
		Context: parent.Context,
		Logger:  parent.Logger.WithFields(fields),
	}
}

// WithContext swaps the underlying context.Context (e.g. a storage session) and keeps the logger
func WithContext(parent Ctx, c context.Context) Ctx {
	return Ctx{
		Context: c,
		Logger:  parent.Logger,
	}
}

func WithCancel(parent Ctx) (Ctx, context.CancelFunc) {
	c, cancel := context.WithCancel(parent)
	return WithContext(parent, c), cancel
}

func WithTimeout(parent Ctx, timeout time.Duration) (Ctx, context.CancelFunc) {
	c, cancel := context.WithTimeout(parent, timeout)
	return WithContext(parent, c), cancel
}
