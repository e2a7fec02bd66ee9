package healthcheck

import (
	"github.com/x-xyz/marketcore/base/ctx"
)

// Report maps each backend name to "ok" or its failure
type Report map[string]string

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) (Report, error)
}

// Pinger is one backend probed by the health check
type Pinger interface {
	Name() string
	Ping(context ctx.Ctx) error
}
