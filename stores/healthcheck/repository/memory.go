package repository

import (
	"github.com/x-xyz/marketcore/base/ctx"
	hcdomain "github.com/x-xyz/marketcore/domain/healthcheck"
	"github.com/x-xyz/marketcore/service/memstore"
)

type memoryPinger struct {
	store *memstore.Store
}

func NewMemoryPinger(store *memstore.Store) hcdomain.Pinger {
	return &memoryPinger{store: store}
}

func (p *memoryPinger) Name() string {
	return "memory"
}

func (p *memoryPinger) Ping(context ctx.Ctx) error {
	return p.store.Ping(context)
}
