package usecase

import (
	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/log"
	"github.com/x-xyz/marketcore/domain"
	hcdomain "github.com/x-xyz/marketcore/domain/healthcheck"
)

const statusOK = "ok"

type impl struct {
	pingers []hcdomain.Pinger
}

// New creates new healthCheckUsecase object representation of HealthCheckUsecase interface
func New(pingers ...hcdomain.Pinger) hcdomain.HealthCheckUsecase {
	return &impl{
		pingers: pingers,
	}
}

// Check pings every backend and fails if any of them is unhealthy
func (im *impl) Check(context ctx.Ctx) (hcdomain.Report, error) {
	report := hcdomain.Report{}
	var failed error
	for _, p := range im.pingers {
		if err := p.Ping(context); err != nil {
			context.WithFields(log.Fields{"err": err, "backend": p.Name()}).Warn("health check failed")
			report[p.Name()] = err.Error()
			failed = domain.ErrInternalServerError
			continue
		}
		report[p.Name()] = statusOK
	}
	return report, failed
}
