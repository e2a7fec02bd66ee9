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
	"github.com/x-xyz/marketcore/domain/auction"
	"github.com/x-xyz/marketcore/service/query"
)

type bidRepo struct {
	q query.Mongo
}

func NewBidRepo(q query.Mongo) auction.BidRepo {
	return &bidRepo{q: q}
}

func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.CreateIndexes(c, domain.TableBids, []mongo.IndexModel{
		{Keys: bson.D{{Key: "listingId", Value: 1}, {Key: "status", Value: 1}, {Key: "bidAmount", Value: -1}}},
		{Keys: bson.D{{Key: "nftId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
}

func (r *bidRepo) findOne(c ctx.Ctx, sel bson.M, sortFields ...string) (*auction.Bid, error) {
	res := &auction.Bid{}
	if err := r.q.FindOneSorted(c, domain.TableBids, sortFields, sel, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"selector": sel, "err": err}).Error("q.FindOneSorted failed")
		return nil, err
	}
	return res, nil
}

func (r *bidRepo) FindOne(c ctx.Ctx, id string) (*auction.Bid, error) {
	return r.findOne(c, bson.M{"_id": id})
}

func (r *bidRepo) FindHighest(c ctx.Ctx, listingId string) (*auction.Bid, error) {
	return r.findOne(c, bson.M{"listingId": listingId, "status": auction.BidStatusActive}, "-bidAmount", "createdAt")
}

func (r *bidRepo) FindAll(c ctx.Ctx, optFns ...auction.BidFindAllOptionsFunc) ([]auction.Bid, error) {
	opts, err := auction.GetBidFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("auction.GetBidFindAllOptions failed")
		return nil, err
	}
	sel, err := mongoclient.MakeBsonM(opts)
	if err != nil {
		c.WithFields(log.Fields{"opts": opts, "err": err}).Error("MakeBsonM failed")
		return nil, err
	}
	res := []auction.Bid{}
	if err := r.q.Search(c, domain.TableBids, 0, 0, "-createdAt", sel, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	return res, nil
}

func (r *bidRepo) Create(c ctx.Ctx, b *auction.Bid) error {
	if b.Id == "" {
		b.Id = uuid.NewString()
	}
	if err := r.q.Insert(c, domain.TableBids, b); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{"bid": b, "err": err}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *bidRepo) Settle(c ctx.Ctx, id string, to auction.BidStatus, txHash domain.TxHash, at time.Time) error {
	update := bson.M{"status": to, "settledAt": at}
	if !txHash.IsEmpty() {
		update["txHash"] = txHash
	}
	sel := bson.M{"_id": id, "status": auction.BidStatusActive}
	if err := r.q.Patch(c, domain.TableBids, sel, update); err == query.ErrNotFound {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{"id": id, "to": to, "err": err}).Error("q.Patch failed")
		return err
	}
	return nil
}

func (r *bidRepo) ExpireOthers(c ctx.Ctx, listingId, exceptId string, at time.Time) (int, error) {
	sel := bson.M{
		"listingId": listingId,
		"status":    auction.BidStatusActive,
		"_id":       bson.M{"$ne": exceptId},
	}
	n, err := r.q.PatchMany(c, domain.TableBids, sel, bson.M{"status": auction.BidStatusExpired, "settledAt": at})
	if err != nil {
		c.WithFields(log.Fields{"listingId": listingId, "err": err}).Error("q.PatchMany failed")
		return 0, err
	}
	return int(n), nil
}
