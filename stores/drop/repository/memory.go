package repository

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/drop"
	"github.com/x-xyz/marketcore/service/memstore"
)

type memoryRepo struct {
	s *memstore.Store
}

func NewMemoryRepo(s *memstore.Store) drop.Repo {
	return &memoryRepo{s: s}
}

// copyMembers keeps stored values immutable, members are never edited in place
func copyMembers(ms []drop.Member) []drop.Member {
	res := make([]drop.Member, len(ms))
	copy(res, ms)
	return res
}

func (r *memoryRepo) FindOne(c ctx.Ctx, id string) (*drop.Drop, error) {
	v, err := r.s.Get(c, domain.TableDrops, id)
	if err == memstore.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	d := v.(drop.Drop)
	d.Members = copyMembers(d.Members)
	return &d, nil
}

func (r *memoryRepo) FindAll(c ctx.Ctx, optFns ...drop.FindAllOptionsFunc) ([]drop.Drop, error) {
	opts, err := drop.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("drop.GetFindAllOptions failed")
		return nil, err
	}
	rows := r.s.Find(c, domain.TableDrops, func(v interface{}) bool {
		d := v.(drop.Drop)
		if opts.Owner != nil && d.Owner != *opts.Owner {
			return false
		}
		if opts.Status != nil && d.Status != *opts.Status {
			return false
		}
		if opts.IsFeatured != nil && d.IsFeatured != *opts.IsFeatured {
			return false
		}
		return true
	})
	res := make([]drop.Drop, 0, len(rows))
	for _, v := range rows {
		d := v.(drop.Drop)
		d.Members = copyMembers(d.Members)
		res = append(res, d)
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].UpdatedAt.Equal(res[j].UpdatedAt) {
			return res[i].Id < res[j].Id
		}
		return res[i].UpdatedAt.After(res[j].UpdatedAt)
	})
	if opts.Offset != nil {
		if *opts.Offset >= len(res) {
			return []drop.Drop{}, nil
		}
		res = res[*opts.Offset:]
	}
	if opts.Limit != nil && *opts.Limit > 0 && *opts.Limit < len(res) {
		res = res[:*opts.Limit]
	}
	return res, nil
}

func (r *memoryRepo) Create(c ctx.Ctx, d *drop.Drop) error {
	if d.Id == "" {
		d.Id = uuid.NewString()
	}
	if d.Members == nil {
		d.Members = []drop.Member{}
	}
	v := *d
	v.Members = copyMembers(d.Members)
	if err := r.s.Insert(c, domain.TableDrops, d.Id, v); err == memstore.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		return err
	}
	return nil
}

func (r *memoryRepo) update(c ctx.Ctx, id string, cond func(drop.Drop) bool, fn func(*drop.Drop)) error {
	err := r.s.Update(c, domain.TableDrops, id, func(cur interface{}) (interface{}, error) {
		d := cur.(drop.Drop)
		if !cond(d) {
			return nil, domain.ErrConflict
		}
		d.Members = copyMembers(d.Members)
		fn(&d)
		return d, nil
	})
	if err == memstore.ErrNotFound {
		return domain.ErrNotFound
	}
	return err
}

func hasMember(d drop.Drop, nftId string) bool {
	_, ok := d.Member(nftId)
	return ok
}

func (r *memoryRepo) AddMember(c ctx.Ctx, id string, m drop.Member, at time.Time) error {
	return r.update(c, id,
		func(d drop.Drop) bool { return d.IsDraft() && !hasMember(d, m.NftId) },
		func(d *drop.Drop) {
			d.Members = append(d.Members, m)
			d.UpdatedAt = at
		},
	)
}

func (r *memoryRepo) UpdateMember(c ctx.Ctx, id string, m drop.Member, at time.Time) error {
	return r.update(c, id,
		func(d drop.Drop) bool { return d.IsDraft() && hasMember(d, m.NftId) },
		func(d *drop.Drop) {
			for i := range d.Members {
				if d.Members[i].NftId == m.NftId {
					d.Members[i].Price = m.Price
					d.Members[i].Supply = m.Supply
				}
			}
			d.UpdatedAt = at
		},
	)
}

func (r *memoryRepo) RemoveMember(c ctx.Ctx, id, nftId string, at time.Time) error {
	return r.update(c, id,
		func(d drop.Drop) bool { return d.IsDraft() && hasMember(d, nftId) },
		func(d *drop.Drop) {
			members := d.Members[:0]
			for _, m := range d.Members {
				if m.NftId != nftId {
					members = append(members, m)
				}
			}
			d.Members = members
			d.UpdatedAt = at
		},
	)
}

func (r *memoryRepo) SetStatus(c ctx.Ctx, id string, from, to drop.Status, at time.Time) error {
	return r.update(c, id,
		func(d drop.Drop) bool { return d.Status == from },
		func(d *drop.Drop) {
			d.Status = to
			d.UpdatedAt = at
		},
	)
}

func (r *memoryRepo) SetTxHash(c ctx.Ctx, id string, txHash domain.TxHash, at time.Time) error {
	return r.update(c, id,
		func(d drop.Drop) bool { return !d.IsDraft() },
		func(d *drop.Drop) {
			d.TxHash = txHash
			d.UpdatedAt = at
		},
	)
}

func (r *memoryRepo) SetFeatured(c ctx.Ctx, id string, at time.Time) error {
	return r.update(c, id,
		func(d drop.Drop) bool { return !d.IsFeatured },
		func(d *drop.Drop) {
			d.IsFeatured = true
			d.UpdatedAt = at
		},
	)
}

func (r *memoryRepo) Remove(c ctx.Ctx, id string) error {
	err := r.s.Delete(c, domain.TableDrops, id, func(cur interface{}) error {
		if !cur.(drop.Drop).IsDraft() {
			return domain.ErrConflict
		}
		return nil
	})
	if err == memstore.ErrNotFound {
		return domain.ErrNotFound
	}
	return err
}
