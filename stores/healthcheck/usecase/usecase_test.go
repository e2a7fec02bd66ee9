package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain"
	hcdomain "github.com/x-xyz/marketcore/domain/healthcheck"
)

type fakePinger struct {
	name string
	err  error
}

func (p *fakePinger) Name() string {
	return p.name
}

func (p *fakePinger) Ping(ctx.Ctx) error {
	return p.err
}

type testsuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestAllHealthy() {
	im := New(&fakePinger{name: "mongo"}, &fakePinger{name: "redis"})
	report, err := im.Check(ctx.Background())
	ts.NoError(err)
	ts.Equal(hcdomain.Report{"mongo": "ok", "redis": "ok"}, report)
}

func (ts *testsuite) TestOneUnhealthy() {
	im := New(&fakePinger{name: "mongo"}, &fakePinger{name: "redis", err: errors.New("connection refused")})
	report, err := im.Check(ctx.Background())
	ts.ErrorIs(err, domain.ErrInternalServerError)
	ts.Equal("ok", report["mongo"])
	ts.Equal("connection refused", report["redis"])
}
