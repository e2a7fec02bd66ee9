package repository

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/listing"
	"github.com/x-xyz/marketcore/service/memstore"
)

type memoryRepo struct {
	s *memstore.Store
}

func NewMemoryRepo(s *memstore.Store) listing.Repo {
	return &memoryRepo{s: s}
}

func (r *memoryRepo) FindOne(c ctx.Ctx, id string) (*listing.Listing, error) {
	v, err := r.s.Get(c, domain.TableListings, id)
	if err == memstore.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	l := v.(listing.Listing)
	return &l, nil
}

func (r *memoryRepo) first(c ctx.Ctx, optFns ...listing.FindAllOptionsFunc) (*listing.Listing, error) {
	res, err := r.FindAll(c, optFns...)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, domain.ErrNotFound
	}
	return &res[0], nil
}

func (r *memoryRepo) FindActiveByNft(c ctx.Ctx, nftId string) (*listing.Listing, error) {
	return r.first(c, listing.WithNftId(nftId), listing.WithActive(true))
}

func (r *memoryRepo) FindLatestByNft(c ctx.Ctx, nftId string) (*listing.Listing, error) {
	return r.first(c, listing.WithNftId(nftId))
}

func (r *memoryRepo) FindAll(c ctx.Ctx, optFns ...listing.FindAllOptionsFunc) ([]listing.Listing, error) {
	opts, err := listing.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("listing.GetFindAllOptions failed")
		return nil, err
	}
	rows := r.s.Find(c, domain.TableListings, func(v interface{}) bool {
		l := v.(listing.Listing)
		if opts.NftId != nil && l.NftId != *opts.NftId {
			return false
		}
		if opts.Seller != nil && l.Seller != *opts.Seller {
			return false
		}
		if opts.SaleType != nil && l.SaleType != *opts.SaleType {
			return false
		}
		if opts.IsActive != nil && l.IsActive() != *opts.IsActive {
			return false
		}
		return true
	})
	res := make([]listing.Listing, 0, len(rows))
	for _, v := range rows {
		res = append(res, v.(listing.Listing))
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].Id > res[j].Id
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func (r *memoryRepo) Create(c ctx.Ctx, l *listing.Listing) error {
	if l.Id == "" {
		l.Id = uuid.NewString()
	}
	var uniques []func(interface{}) bool
	if l.IsActive() {
		nftId := l.NftId
		uniques = append(uniques, func(existing interface{}) bool {
			e := existing.(listing.Listing)
			return e.NftId == nftId && e.IsActive()
		})
	}
	if err := r.s.Insert(c, domain.TableListings, l.Id, *l, uniques...); err == memstore.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		return err
	}
	return nil
}

func (r *memoryRepo) close(c ctx.Ctx, id string, fn func(*listing.Listing)) error {
	err := r.s.Update(c, domain.TableListings, id, func(cur interface{}) (interface{}, error) {
		l := cur.(listing.Listing)
		if !l.IsActive() {
			return nil, domain.ErrConflict
		}
		fn(&l)
		return l, nil
	})
	if err == memstore.ErrNotFound {
		return domain.ErrNotFound
	}
	return err
}

func (r *memoryRepo) MarkSold(c ctx.Ctx, id string, buyer domain.Address, at time.Time) error {
	b := buyer.ToLower()
	return r.close(c, id, func(l *listing.Listing) {
		l.IsSold = true
		l.SoldAt = &at
		l.Buyer = &b
		l.UpdatedAt = at
	})
}

func (r *memoryRepo) Cancel(c ctx.Ctx, id string, at time.Time) error {
	return r.close(c, id, func(l *listing.Listing) {
		l.CancelledAt = &at
		l.UpdatedAt = at
	})
}
