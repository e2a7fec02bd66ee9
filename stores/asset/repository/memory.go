package repository

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/asset"
	"github.com/x-xyz/marketcore/service/memstore"
)

type memoryRepo struct {
	s *memstore.Store
}

func NewMemoryRepo(s *memstore.Store) asset.Repo {
	return &memoryRepo{s: s}
}

func (r *memoryRepo) FindOne(c ctx.Ctx, id string) (*asset.Asset, error) {
	v, err := r.s.Get(c, domain.TableAssets, id)
	if err == memstore.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	a := v.(asset.Asset)
	return &a, nil
}

func (r *memoryRepo) FindAll(c ctx.Ctx, optFns ...asset.FindAllOptionsFunc) ([]asset.Asset, error) {
	opts, err := asset.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("asset.GetFindAllOptions failed")
		return nil, err
	}
	rows := r.s.Find(c, domain.TableAssets, func(v interface{}) bool {
		a := v.(asset.Asset)
		if opts.Owner != nil && a.Owner != *opts.Owner {
			return false
		}
		if opts.DropId != nil && (a.DropId == nil || *a.DropId != *opts.DropId) {
			return false
		}
		if opts.IsOnSale != nil && a.IsOnSale != *opts.IsOnSale {
			return false
		}
		return true
	})
	res := make([]asset.Asset, 0, len(rows))
	for _, v := range rows {
		res = append(res, v.(asset.Asset))
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].Id < res[j].Id
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return paginate(res, opts.Offset, opts.Limit), nil
}

func paginate(res []asset.Asset, offset, limit *int) []asset.Asset {
	if offset != nil {
		if *offset >= len(res) {
			return []asset.Asset{}
		}
		res = res[*offset:]
	}
	if limit != nil && *limit > 0 && *limit < len(res) {
		res = res[:*limit]
	}
	return res
}

func (r *memoryRepo) Create(c ctx.Ctx, a *asset.Asset) error {
	if a.Id == "" {
		a.Id = uuid.NewString()
	}
	if err := r.s.Insert(c, domain.TableAssets, a.Id, *a); err == memstore.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		return err
	}
	return nil
}

// update applies fn when cond holds on the current asset, domain.ErrConflict otherwise
func (r *memoryRepo) update(c ctx.Ctx, id string, cond func(asset.Asset) bool, fn func(*asset.Asset)) error {
	err := r.s.Update(c, domain.TableAssets, id, func(cur interface{}) (interface{}, error) {
		a := cur.(asset.Asset)
		if !cond(a) {
			return nil, domain.ErrConflict
		}
		fn(&a)
		return a, nil
	})
	if err == memstore.ErrNotFound {
		return domain.ErrNotFound
	}
	return err
}

func holdsSlot(a asset.Asset, listingId string) bool {
	return a.CurrentListingId != nil && *a.CurrentListingId == listingId
}

func (r *memoryRepo) MarkOnSale(c ctx.Ctx, id string, owner domain.Address, listingId string, at time.Time) error {
	return r.update(c, id,
		func(a asset.Asset) bool { return a.Owner.Equals(owner) && !a.IsOnSale },
		func(a *asset.Asset) {
			a.IsOnSale = true
			a.CurrentListingId = &listingId
			a.UpdatedAt = at
		},
	)
}

func (r *memoryRepo) ClearSale(c ctx.Ctx, id, listingId string, at time.Time) error {
	return r.update(c, id,
		func(a asset.Asset) bool { return holdsSlot(a, listingId) },
		func(a *asset.Asset) {
			a.IsOnSale = false
			a.CurrentListingId = nil
			a.UpdatedAt = at
		},
	)
}

func (r *memoryRepo) TransferOwnership(c ctx.Ctx, id, listingId string, newOwner domain.Address, at time.Time) error {
	return r.update(c, id,
		func(a asset.Asset) bool { return holdsSlot(a, listingId) },
		func(a *asset.Asset) {
			a.Owner = newOwner.ToLower()
			a.IsOnSale = false
			a.CurrentListingId = nil
			a.UpdatedAt = at
		},
	)
}

func (r *memoryRepo) AttachDrop(c ctx.Ctx, id string, owner domain.Address, dropId string, at time.Time) error {
	return r.update(c, id,
		func(a asset.Asset) bool { return a.Owner.Equals(owner) && a.DropId == nil },
		func(a *asset.Asset) {
			a.DropId = &dropId
			a.UpdatedAt = at
		},
	)
}

func (r *memoryRepo) DetachDrop(c ctx.Ctx, id, dropId string, at time.Time) error {
	return r.update(c, id,
		func(a asset.Asset) bool { return a.DropId != nil && *a.DropId == dropId },
		func(a *asset.Asset) {
			a.DropId = nil
			a.UpdatedAt = at
		},
	)
}

func (r *memoryRepo) DetachAllFromDrop(c ctx.Ctx, dropId string, at time.Time) (int, error) {
	n := r.s.UpdateAll(c, domain.TableAssets, func(cur interface{}) (interface{}, bool) {
		a := cur.(asset.Asset)
		if a.DropId == nil || *a.DropId != dropId {
			return nil, false
		}
		a.DropId = nil
		a.UpdatedAt = at
		return a, true
	})
	return n, nil
}
