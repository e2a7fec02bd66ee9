package locker

import (
	"sync"
	"time"

	"github.com/x-xyz/marketcore/base/ctx"
)

type keyLock struct {
	ch   chan struct{}
	refs int
}

type memoryLocker struct {
	wait  time.Duration
	mu    sync.Mutex
	locks map[string]*keyLock
}

// NewMemory returns an in-process keyed mutex, for single instance deployments and tests
func NewMemory(cfg Config) Locker {
	cfg = cfg.withDefaults()
	return &memoryLocker{
		wait:  cfg.Wait,
		locks: map[string]*keyLock{},
	}
}

func (l *memoryLocker) acquire(key string) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[key] = kl
	}
	kl.refs++
	return kl
}

func (l *memoryLocker) release(key string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
}

func (l *memoryLocker) Lock(c ctx.Ctx, key string) (func(), error) {
	kl := l.acquire(key)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case kl.ch <- struct{}{}:
	case <-timer.C:
		l.release(key, kl)
		return nil, ErrLockTimeout
	case <-c.Done():
		l.release(key, kl)
		return nil, c.Err()
	}

	once := sync.Once{}
	return func() {
		once.Do(func() {
			<-kl.ch
			l.release(key, kl)
		})
	}, nil
}
