package repository

import (
	"sort"

	"github.com/google/uuid"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/cart"
	"github.com/x-xyz/marketcore/service/memstore"
)

type memoryRepo struct {
	s *memstore.Store
}

func NewMemoryRepo(s *memstore.Store) cart.Repo {
	return &memoryRepo{s: s}
}

func (r *memoryRepo) FindAll(c ctx.Ctx, optFns ...cart.FindAllOptionsFunc) ([]cart.Entry, error) {
	opts, err := cart.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("cart.GetFindAllOptions failed")
		return nil, err
	}
	rows := r.s.Find(c, domain.TableCartEntries, func(v interface{}) bool {
		e := v.(cart.Entry)
		if opts.User != nil && e.User != *opts.User {
			return false
		}
		if opts.NftId != nil && e.NftId != *opts.NftId {
			return false
		}
		return true
	})
	res := make([]cart.Entry, 0, len(rows))
	for _, v := range rows {
		res = append(res, v.(cart.Entry))
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].NftId < res[j].NftId
		}
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}

func (r *memoryRepo) Create(c ctx.Ctx, e *cart.Entry) error {
	if e.Id == "" {
		e.Id = uuid.NewString()
	}
	user, nftId := e.User, e.NftId
	sameHolder := func(existing interface{}) bool {
		x := existing.(cart.Entry)
		return x.User == user && x.NftId == nftId
	}
	if err := r.s.Insert(c, domain.TableCartEntries, e.Id, *e, sameHolder); err == memstore.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		return err
	}
	return nil
}

func (r *memoryRepo) Remove(c ctx.Ctx, id string) error {
	if err := r.s.Delete(c, domain.TableCartEntries, id, nil); err == memstore.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		return err
	}
	return nil
}
