package repository

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/database/mongoclient"
	"github.com/x-xyz/marketcore/base/log"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/drop"
	"github.com/x-xyz/marketcore/service/query"
)

type dropRepo struct {
	q query.Mongo
}

func NewDropRepo(q query.Mongo) drop.Repo {
	return &dropRepo{q: q}
}

func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.CreateIndexes(c, domain.TableDrops, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "isFeatured", Value: 1}, {Key: "updatedAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "updatedAt", Value: -1}}},
	})
}

func (r *dropRepo) FindOne(c ctx.Ctx, id string) (*drop.Drop, error) {
	res := &drop.Drop{}
	if err := r.q.FindOne(c, domain.TableDrops, bson.M{"_id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"id": id, "err": err}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (r *dropRepo) FindAll(c ctx.Ctx, optFns ...drop.FindAllOptionsFunc) ([]drop.Drop, error) {
	opts, err := drop.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("drop.GetFindAllOptions failed")
		return nil, err
	}
	offset, limit := 0, 0
	if opts.Offset != nil {
		offset = *opts.Offset
	}
	if opts.Limit != nil {
		limit = *opts.Limit
	}
	sel, err := mongoclient.MakeBsonM(opts)
	if err != nil {
		c.WithFields(log.Fields{"opts": opts, "err": err}).Error("MakeBsonM failed")
		return nil, err
	}
	res := []drop.Drop{}
	if err := r.q.Search(c, domain.TableDrops, offset, limit, "-updatedAt", sel, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *dropRepo) Create(c ctx.Ctx, d *drop.Drop) error {
	if d.Id == "" {
		d.Id = uuid.NewString()
	}
	// $push fails on a null array
	if d.Members == nil {
		d.Members = []drop.Member{}
	}
	if err := r.q.Insert(c, domain.TableDrops, d); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{"drop": d, "err": err}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *dropRepo) customPatch(c ctx.Ctx, sel, update bson.M) error {
	if err := r.q.CustomPatch(c, domain.TableDrops, sel, update, false); err == query.ErrNotFound {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{"selector": sel, "err": err}).Error("q.CustomPatch failed")
		return err
	}
	return nil
}

func (r *dropRepo) AddMember(c ctx.Ctx, id string, m drop.Member, at time.Time) error {
	return r.customPatch(c,
		bson.M{"_id": id, "status": drop.StatusDraft, "members.nftId": bson.M{"$ne": m.NftId}},
		bson.M{"$push": bson.M{"members": m}, "$set": bson.M{"updatedAt": at}},
	)
}

func (r *dropRepo) UpdateMember(c ctx.Ctx, id string, m drop.Member, at time.Time) error {
	return r.customPatch(c,
		bson.M{"_id": id, "status": drop.StatusDraft, "members.nftId": m.NftId},
		bson.M{"$set": bson.M{
			"members.$.price":  m.Price,
			"members.$.supply": m.Supply,
			"updatedAt":        at,
		}},
	)
}

func (r *dropRepo) RemoveMember(c ctx.Ctx, id, nftId string, at time.Time) error {
	return r.customPatch(c,
		bson.M{"_id": id, "status": drop.StatusDraft, "members.nftId": nftId},
		bson.M{"$pull": bson.M{"members": bson.M{"nftId": nftId}}, "$set": bson.M{"updatedAt": at}},
	)
}

func (r *dropRepo) SetStatus(c ctx.Ctx, id string, from, to drop.Status, at time.Time) error {
	return r.customPatch(c,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": at}},
	)
}

func (r *dropRepo) SetTxHash(c ctx.Ctx, id string, txHash domain.TxHash, at time.Time) error {
	return r.customPatch(c,
		bson.M{"_id": id, "status": bson.M{"$ne": drop.StatusDraft}},
		bson.M{"$set": bson.M{"txHash": txHash, "updatedAt": at}},
	)
}

func (r *dropRepo) SetFeatured(c ctx.Ctx, id string, at time.Time) error {
	return r.customPatch(c,
		bson.M{"_id": id, "isFeatured": false},
		bson.M{"$set": bson.M{"isFeatured": true, "updatedAt": at}},
	)
}

func (r *dropRepo) Remove(c ctx.Ctx, id string) error {
	if err := r.q.Remove(c, domain.TableDrops, bson.M{"_id": id, "status": drop.StatusDraft}); err == query.ErrNotFound {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{"id": id, "err": err}).Error("q.Remove failed")
		return err
	}
	return nil
}
