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
	"github.com/x-xyz/marketcore/domain/asset"
	"github.com/x-xyz/marketcore/service/query"
)

type assetRepo struct {
	q query.Mongo
}

func NewAssetRepo(q query.Mongo) asset.Repo {
	return &assetRepo{q: q}
}

// EnsureIndexes creates the indexes asset queries rely on
func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.CreateIndexes(c, domain.TableAssets, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "dropId", Value: 1}}},
	})
}

func (r *assetRepo) FindOne(c ctx.Ctx, id string) (*asset.Asset, error) {
	res := &asset.Asset{}
	if err := r.q.FindOne(c, domain.TableAssets, bson.M{"_id": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"id": id, "err": err}).Error("q.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (r *assetRepo) FindAll(c ctx.Ctx, optFns ...asset.FindAllOptionsFunc) ([]asset.Asset, error) {
	opts, err := asset.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("asset.GetFindAllOptions failed")
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
	res := []asset.Asset{}
	if err := r.q.Search(c, domain.TableAssets, offset, limit, "-createdAt", sel, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *assetRepo) Create(c ctx.Ctx, a *asset.Asset) error {
	if a.Id == "" {
		a.Id = uuid.NewString()
	}
	if err := r.q.Insert(c, domain.TableAssets, a); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{"asset": a, "err": err}).Error("q.Insert failed")
		return err
	}
	return nil
}

// patch runs a conditional update, a selector miss means the asset is not in the expected state
func (r *assetRepo) patch(c ctx.Ctx, sel, update bson.M) error {
	if err := r.q.Patch(c, domain.TableAssets, sel, update); err == query.ErrNotFound {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{"selector": sel, "err": err}).Error("q.Patch failed")
		return err
	}
	return nil
}

func (r *assetRepo) MarkOnSale(c ctx.Ctx, id string, owner domain.Address, listingId string, at time.Time) error {
	return r.patch(c,
		bson.M{"_id": id, "owner": owner.ToLower(), "isOnSale": false},
		bson.M{"isOnSale": true, "currentListingId": listingId, "updatedAt": at},
	)
}

func (r *assetRepo) ClearSale(c ctx.Ctx, id, listingId string, at time.Time) error {
	return r.patch(c,
		bson.M{"_id": id, "currentListingId": listingId},
		bson.M{"isOnSale": false, "currentListingId": nil, "updatedAt": at},
	)
}

func (r *assetRepo) TransferOwnership(c ctx.Ctx, id, listingId string, newOwner domain.Address, at time.Time) error {
	return r.patch(c,
		bson.M{"_id": id, "currentListingId": listingId},
		bson.M{"owner": newOwner.ToLower(), "isOnSale": false, "currentListingId": nil, "updatedAt": at},
	)
}

func (r *assetRepo) AttachDrop(c ctx.Ctx, id string, owner domain.Address, dropId string, at time.Time) error {
	return r.patch(c,
		bson.M{"_id": id, "owner": owner.ToLower(), "dropId": nil},
		bson.M{"dropId": dropId, "updatedAt": at},
	)
}

func (r *assetRepo) DetachDrop(c ctx.Ctx, id, dropId string, at time.Time) error {
	return r.patch(c,
		bson.M{"_id": id, "dropId": dropId},
		bson.M{"dropId": nil, "updatedAt": at},
	)
}

func (r *assetRepo) DetachAllFromDrop(c ctx.Ctx, dropId string, at time.Time) (int, error) {
	n, err := r.q.PatchMany(c, domain.TableAssets, bson.M{"dropId": dropId}, bson.M{"dropId": nil, "updatedAt": at})
	if err != nil {
		c.WithFields(log.Fields{"dropId": dropId, "err": err}).Error("q.PatchMany failed")
		return 0, err
	}
	return int(n), nil
}
