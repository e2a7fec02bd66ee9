package repository

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/auction"
	"github.com/x-xyz/marketcore/service/memstore"
)

type memoryRepo struct {
	s *memstore.Store
}

func NewMemoryRepo(s *memstore.Store) auction.BidRepo {
	return &memoryRepo{s: s}
}

func (r *memoryRepo) FindOne(c ctx.Ctx, id string) (*auction.Bid, error) {
	v, err := r.s.Get(c, domain.TableBids, id)
	if err == memstore.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	b := v.(auction.Bid)
	return &b, nil
}

func (r *memoryRepo) FindHighest(c ctx.Ctx, listingId string) (*auction.Bid, error) {
	bids, err := r.FindAll(c, auction.BidWithListingId(listingId), auction.BidWithStatus(auction.BidStatusActive))
	if err != nil {
		return nil, err
	}
	var highest *auction.Bid
	for i := range bids {
		b := &bids[i]
		if highest == nil ||
			b.BidAmount.GreaterThan(highest.BidAmount) ||
			b.BidAmount.Equal(highest.BidAmount) && b.CreatedAt.Before(highest.CreatedAt) {
			highest = b
		}
	}
	if highest == nil {
		return nil, domain.ErrNotFound
	}
	return highest, nil
}

func (r *memoryRepo) FindAll(c ctx.Ctx, optFns ...auction.BidFindAllOptionsFunc) ([]auction.Bid, error) {
	opts, err := auction.GetBidFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("auction.GetBidFindAllOptions failed")
		return nil, err
	}
	rows := r.s.Find(c, domain.TableBids, func(v interface{}) bool {
		b := v.(auction.Bid)
		if opts.NftId != nil && b.NftId != *opts.NftId {
			return false
		}
		if opts.ListingId != nil && b.ListingId != *opts.ListingId {
			return false
		}
		if opts.Bidder != nil && b.Bidder != *opts.Bidder {
			return false
		}
		if opts.Status != nil && b.Status != *opts.Status {
			return false
		}
		return true
	})
	res := make([]auction.Bid, 0, len(rows))
	for _, v := range rows {
		res = append(res, v.(auction.Bid))
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func (r *memoryRepo) Create(c ctx.Ctx, b *auction.Bid) error {
	if b.Id == "" {
		b.Id = uuid.NewString()
	}
	if err := r.s.Insert(c, domain.TableBids, b.Id, *b); err == memstore.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		return err
	}
	return nil
}

func (r *memoryRepo) Settle(c ctx.Ctx, id string, to auction.BidStatus, txHash domain.TxHash, at time.Time) error {
	err := r.s.Update(c, domain.TableBids, id, func(cur interface{}) (interface{}, error) {
		b := cur.(auction.Bid)
		if b.Status != auction.BidStatusActive {
			return nil, domain.ErrConflict
		}
		b.Status = to
		b.SettledAt = &at
		if !txHash.IsEmpty() {
			b.TxHash = txHash
		}
		return b, nil
	})
	if err == memstore.ErrNotFound {
		return domain.ErrNotFound
	}
	return err
}

func (r *memoryRepo) ExpireOthers(c ctx.Ctx, listingId, exceptId string, at time.Time) (int, error) {
	n := r.s.UpdateAll(c, domain.TableBids, func(cur interface{}) (interface{}, bool) {
		b := cur.(auction.Bid)
		if b.ListingId != listingId || b.Id == exceptId || b.Status != auction.BidStatusActive {
			return nil, false
		}
		b.Status = auction.BidStatusExpired
		b.SettledAt = &at
		return b, true
	})
	return n, nil
}
