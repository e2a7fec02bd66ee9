package repository

import (
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/database/mongoclient"
	"github.com/x-xyz/marketcore/base/log"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/cart"
	"github.com/x-xyz/marketcore/service/query"
)

type cartRepo struct {
	q query.Mongo
}

func NewCartRepo(q query.Mongo) cart.Repo {
	return &cartRepo{q: q}
}

func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.CreateIndexes(c, domain.TableCartEntries, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "nftId", Value: 1}},
			Options: options.Index().SetName("user_nftId_unique").SetUnique(true),
		},
		{Keys: bson.D{{Key: "nftId", Value: 1}}},
	})
}

func (r *cartRepo) FindAll(c ctx.Ctx, optFns ...cart.FindAllOptionsFunc) ([]cart.Entry, error) {
	opts, err := cart.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("cart.GetFindAllOptions failed")
		return nil, err
	}
	sel, err := mongoclient.MakeBsonM(opts)
	if err != nil {
		c.WithFields(log.Fields{"opts": opts, "err": err}).Error("MakeBsonM failed")
		return nil, err
	}
	res := []cart.Entry{}
	if err := r.q.Search(c, domain.TableCartEntries, 0, 0, "createdAt", sel, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *cartRepo) Create(c ctx.Ctx, e *cart.Entry) error {
	if e.Id == "" {
		e.Id = uuid.NewString()
	}
	if err := r.q.Insert(c, domain.TableCartEntries, e); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{"entry": e, "err": err}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *cartRepo) Remove(c ctx.Ctx, id string) error {
	if err := r.q.Remove(c, domain.TableCartEntries, bson.M{"_id": id}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"id": id, "err": err}).Error("q.Remove failed")
		return err
	}
	return nil
}
