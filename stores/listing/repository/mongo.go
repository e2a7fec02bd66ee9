package repository

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/database/mongoclient"
	"github.com/x-xyz/marketcore/base/log"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/listing"
	"github.com/x-xyz/marketcore/service/query"
)

// listingDoc persists the derived active flag so the partial unique index
// can hold at most one active listing per nft
type listingDoc struct {
	listing.Listing `bson:",inline"`
	Active          bool `bson:"active"`
}

type listingRepo struct {
	q query.Mongo
}

func NewListingRepo(q query.Mongo) listing.Repo {
	return &listingRepo{q: q}
}

func EnsureIndexes(c ctx.Ctx, q query.Mongo) error {
	return q.CreateIndexes(c, domain.TableListings, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "nftId", Value: 1}},
			Options: options.Index().
				SetName("nftId_active_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"active": true}),
		},
		{Keys: bson.D{{Key: "nftId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "seller", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
}

func (r *listingRepo) findOne(c ctx.Ctx, sel bson.M, sortFields ...string) (*listing.Listing, error) {
	doc := &listingDoc{}
	if err := r.q.FindOneSorted(c, domain.TableListings, sortFields, sel, doc); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"selector": sel, "err": err}).Error("q.FindOneSorted failed")
		return nil, err
	}
	return &doc.Listing, nil
}

func (r *listingRepo) FindOne(c ctx.Ctx, id string) (*listing.Listing, error) {
	return r.findOne(c, bson.M{"_id": id})
}

func (r *listingRepo) FindActiveByNft(c ctx.Ctx, nftId string) (*listing.Listing, error) {
	return r.findOne(c, bson.M{"nftId": nftId, "active": true})
}

func (r *listingRepo) FindLatestByNft(c ctx.Ctx, nftId string) (*listing.Listing, error) {
	return r.findOne(c, bson.M{"nftId": nftId}, "-createdAt")
}

func (r *listingRepo) FindAll(c ctx.Ctx, optFns ...listing.FindAllOptionsFunc) ([]listing.Listing, error) {
	opts, err := listing.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("listing.GetFindAllOptions failed")
		return nil, err
	}
	sel, err := mongoclient.MakeBsonM(opts)
	if err != nil {
		c.WithFields(log.Fields{"opts": opts, "err": err}).Error("MakeBsonM failed")
		return nil, err
	}
	docs := []listingDoc{}
	if err := r.q.Search(c, domain.TableListings, 0, 0, "-createdAt", sel, &docs); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}
	res := make([]listing.Listing, 0, len(docs))
	for _, d := range docs {
		res = append(res, d.Listing)
	}
	return res, nil
}

func (r *listingRepo) Create(c ctx.Ctx, l *listing.Listing) error {
	if l.Id == "" {
		l.Id = uuid.NewString()
	}
	doc := listingDoc{Listing: *l, Active: l.IsActive()}
	if err := r.q.Insert(c, domain.TableListings, doc); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{"listing": l, "err": err}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (r *listingRepo) close(c ctx.Ctx, id string, update bson.M) error {
	update["active"] = false
	sel := bson.M{"_id": id, "active": true}
	if err := r.q.Patch(c, domain.TableListings, sel, update); err == query.ErrNotFound {
		return domain.ErrConflict
	} else if err != nil {
		c.WithFields(log.Fields{"id": id, "err": err}).Error("q.Patch failed")
		return err
	}
	return nil
}

func (r *listingRepo) MarkSold(c ctx.Ctx, id string, buyer domain.Address, at time.Time) error {
	return r.close(c, id, bson.M{"isSold": true, "soldAt": at, "buyer": buyer.ToLower(), "updatedAt": at})
}

func (r *listingRepo) Cancel(c ctx.Ctx, id string, at time.Time) error {
	return r.close(c, id, bson.M{"cancelledAt": at, "updatedAt": at})
}
