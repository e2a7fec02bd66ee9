package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/database/mongoclient"
	hcdomain "github.com/x-xyz/marketcore/domain/healthcheck"
)

const pingTimeout = 2 * time.Second

type mongoPinger struct {
	client *mongoclient.Client
}

func NewMongoPinger(client *mongoclient.Client) hcdomain.Pinger {
	return &mongoPinger{client: client}
}

func (p *mongoPinger) Name() string {
	return "mongo"
}

func (p *mongoPinger) Ping(context ctx.Ctx) error {
	c, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if err := p.client.Ping(c, readpref.Primary()); err != nil {
		context.WithField("err", err).Error("ping mongo error")
		return err
	}
	return nil
}
