package usecase

import (
	"strings"

	"github.com/benbjohnson/clock"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/log"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/asset"
	"github.com/x-xyz/marketcore/domain/drop"
	"github.com/x-xyz/marketcore/domain/notification"
	"github.com/x-xyz/marketcore/service/cache"
)

type DropUseCaseCfg struct {
	DropRepo   drop.Repo
	AssetRepo  asset.Repo
	Transactor domain.Transactor
	// FeaturedCache holds the featured drop of each owner
	FeaturedCache cache.Service
	Notifier      notification.Notifier
	Clock         clock.Clock
}

type impl struct {
	drop       drop.Repo
	asset      asset.Repo
	transactor domain.Transactor
	featured   cache.Service
	notifier   notification.Notifier
	clock      clock.Clock
}

func New(cfg *DropUseCaseCfg) drop.Usecase {
	return &impl{
		drop:       cfg.DropRepo,
		asset:      cfg.AssetRepo,
		transactor: cfg.Transactor,
		featured:   cfg.FeaturedCache,
		notifier:   cfg.Notifier,
		clock:      cfg.Clock,
	}
}

func (im *impl) findDrop(c ctx.Ctx, id string) (*drop.Drop, error) {
	d, err := im.drop.FindOne(c, id)
	if err == domain.ErrNotFound {
		return nil, domain.ErrDropNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"dropId": id, "err": err}).Error("drop.FindOne failed")
		return nil, err
	}
	return d, nil
}

func (im *impl) findAsset(c ctx.Ctx, nftId string) (*asset.Asset, error) {
	a, err := im.asset.FindOne(c, nftId)
	if err == domain.ErrNotFound {
		return nil, domain.ErrAssetNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"nftId": nftId, "err": err}).Error("asset.FindOne failed")
		return nil, err
	}
	return a, nil
}

// invalidate drops the cached featured drop of owner, a stale entry expires by ttl
func (im *impl) invalidate(c ctx.Ctx, owner domain.Address) {
	if err := im.featured.Del(c, owner.ToLowerStr()); err != nil {
		c.WithFields(log.Fields{"owner": owner, "err": err}).Warn("featured.Del failed")
	}
}

func (im *impl) notify(c ctx.Ctx, kind notification.Kind, d *drop.Drop) {
	im.notifier.Notify(c, notification.Event{
		Kind:   kind,
		DropId: d.Id,
		From:   d.Owner,
		Time:   d.UpdatedAt,
	})
}

func (im *impl) Create(c ctx.Ctx, params drop.CreateParams, actor domain.Actor) (*drop.Drop, error) {
	now := im.clock.Now()
	if params.DropType == "" {
		params.DropType = drop.DropTypeNormal
	}
	if strings.TrimSpace(params.Title) == "" ||
		!params.SaleType.IsValid() ||
		!params.DropType.IsValid() ||
		!params.StartTime.Before(params.EndTime) ||
		params.StartTime.Before(now) {
		return nil, domain.ErrBadParamInput
	}

	d := &drop.Drop{
		Owner:       actor.Address.ToLower(),
		Title:       params.Title,
		Description: params.Description,
		SaleType:    params.SaleType,
		DropType:    params.DropType,
		Status:      drop.StatusDraft,
		StartTime:   params.StartTime,
		EndTime:     params.EndTime,
		Members:     []drop.Member{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := im.drop.Create(c, d); err != nil {
		c.WithFields(log.Fields{"drop": *d, "err": err}).Error("drop.Create failed")
		return nil, err
	}
	return d, nil
}

func (im *impl) AddAsset(c ctx.Ctx, params drop.MemberParams, actor domain.Actor) (*drop.Drop, error) {
	d, err := im.findDrop(c, params.DropId)
	if err != nil {
		return nil, err
	}
	a, err := im.findAsset(c, params.NftId)
	if err != nil {
		return nil, err
	}

	switch {
	case !actor.Is(d.Owner):
		return nil, domain.ErrNotDropOwner
	case !actor.Is(a.Owner):
		return nil, domain.ErrNotOwner
	case !d.IsDraft():
		return nil, domain.ErrNotEditable
	case !params.Price.IsPositive() || params.Supply < 1:
		return nil, domain.ErrBadParamInput
	case a.DropId != nil && *a.DropId == d.Id:
		return nil, domain.ErrAlreadyInThisDrop
	case a.DropId != nil:
		return nil, domain.ErrAlreadyInAnotherDrop
	}

	now := im.clock.Now()
	err = im.transactor.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.asset.AttachDrop(c, a.Id, actor.Address, d.Id, now); err == domain.ErrConflict {
			return domain.ErrAlreadyInAnotherDrop
		} else if err != nil {
			return err
		}
		m := drop.Member{NftId: a.Id, Price: params.Price, Supply: params.Supply, AddedAt: now}
		if err := im.drop.AddMember(c, d.Id, m, now); err == domain.ErrConflict {
			return domain.ErrNotEditable
		} else if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(*domain.Error); !ok {
			c.WithFields(log.Fields{"params": params, "err": err}).Error("failed to add asset to drop")
		}
		return nil, err
	}

	im.invalidate(c, d.Owner)
	return im.findDrop(c, d.Id)
}

func (im *impl) UpdateAsset(c ctx.Ctx, params drop.MemberParams, actor domain.Actor) (*drop.Drop, error) {
	d, err := im.findDrop(c, params.DropId)
	if err != nil {
		return nil, err
	}
	m, ok := d.Member(params.NftId)

	switch {
	case !actor.Is(d.Owner):
		return nil, domain.ErrNotDropOwner
	case !d.IsDraft():
		return nil, domain.ErrNotEditable
	case !params.Price.IsPositive() || params.Supply < 1:
		return nil, domain.ErrBadParamInput
	case !ok:
		return nil, domain.ErrNotInDrop
	}

	m.Price = params.Price
	m.Supply = params.Supply
	if err := im.drop.UpdateMember(c, d.Id, m, im.clock.Now()); err == domain.ErrConflict {
		return nil, domain.ErrNotEditable
	} else if err != nil {
		c.WithFields(log.Fields{"params": params, "err": err}).Error("drop.UpdateMember failed")
		return nil, err
	}

	im.invalidate(c, d.Owner)
	return im.findDrop(c, d.Id)
}

func (im *impl) RemoveAsset(c ctx.Ctx, nftId string, actor domain.Actor) error {
	a, err := im.findAsset(c, nftId)
	if err != nil {
		return err
	}
	if a.DropId == nil {
		return domain.ErrNotInDrop
	}
	d, err := im.findDrop(c, *a.DropId)
	if err != nil {
		return err
	}
	if !actor.Is(d.Owner) {
		return domain.ErrNotDropOwner
	}
	if !d.IsDraft() {
		return domain.ErrDropNotDraft
	}

	now := im.clock.Now()
	err = im.transactor.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.drop.RemoveMember(c, d.Id, nftId, now); err == domain.ErrConflict {
			return domain.ErrDropNotDraft
		} else if err != nil {
			return err
		}
		if err := im.asset.DetachDrop(c, nftId, d.Id, now); err == domain.ErrConflict {
			return domain.ErrNotInDrop
		} else if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(*domain.Error); !ok {
			c.WithFields(log.Fields{"nftId": nftId, "dropId": d.Id, "err": err}).Error("failed to remove asset from drop")
		}
		return err
	}

	im.invalidate(c, d.Owner)
	return nil
}

func (im *impl) TransitionStatus(c ctx.Ctx, id string, to drop.Status, actor domain.Actor) (*drop.Drop, error) {
	if to != drop.StatusPending {
		return nil, domain.ErrBadParamInput
	}
	d, err := im.findDrop(c, id)
	if err != nil {
		return nil, err
	}
	if !actor.Is(d.Owner) {
		return nil, domain.ErrNotDropOwner
	}
	if !d.IsDraft() {
		return nil, domain.ErrNotEditable
	}

	now := im.clock.Now()
	if err := im.drop.SetStatus(c, id, drop.StatusDraft, to, now); err == domain.ErrConflict {
		return nil, domain.ErrNotEditable
	} else if err != nil {
		c.WithFields(log.Fields{"dropId": id, "to": to, "err": err}).Error("drop.SetStatus failed")
		return nil, err
	}

	d.Status = to
	d.UpdatedAt = now
	im.invalidate(c, d.Owner)
	im.notify(c, notification.KindDropPending, d)
	return d, nil
}

var advanceEvents = map[drop.Status]notification.Kind{
	drop.StatusLive:   notification.KindDropLive,
	drop.StatusClosed: notification.KindDropClosed,
}

func (im *impl) AdvanceStatus(c ctx.Ctx, id string, to drop.Status) (*drop.Drop, error) {
	if !to.IsValid() {
		return nil, domain.ErrBadParamInput
	}
	d, err := im.findDrop(c, id)
	if err != nil {
		return nil, err
	}
	// draft->pending belongs to the owner, live needs the publication on chain
	if to == drop.StatusPending || !d.CanAdvance(to) || (to == drop.StatusLive && d.TxHash.IsEmpty()) {
		return nil, domain.ErrNotInAppropriateState
	}

	now := im.clock.Now()
	if err := im.drop.SetStatus(c, id, d.Status, to, now); err == domain.ErrConflict {
		return nil, domain.ErrNotInAppropriateState
	} else if err != nil {
		c.WithFields(log.Fields{"dropId": id, "to": to, "err": err}).Error("drop.SetStatus failed")
		return nil, err
	}

	d.Status = to
	d.UpdatedAt = now
	im.invalidate(c, d.Owner)
	im.notify(c, advanceEvents[to], d)
	return d, nil
}

func (im *impl) AttachTxHash(c ctx.Ctx, id string, txHash domain.TxHash) (*drop.Drop, error) {
	if txHash.IsEmpty() {
		return nil, domain.ErrBadParamInput
	}
	d, err := im.findDrop(c, id)
	if err != nil {
		return nil, err
	}
	if d.IsDraft() {
		return nil, domain.ErrNotInAppropriateState
	}

	now := im.clock.Now()
	if err := im.drop.SetTxHash(c, id, txHash, now); err == domain.ErrConflict {
		return nil, domain.ErrNotInAppropriateState
	} else if err != nil {
		c.WithFields(log.Fields{"dropId": id, "txHash": txHash, "err": err}).Error("drop.SetTxHash failed")
		return nil, err
	}

	d.TxHash = txHash
	d.UpdatedAt = now
	im.invalidate(c, d.Owner)
	return d, nil
}

func (im *impl) Delete(c ctx.Ctx, id string, actor domain.Actor) error {
	d, err := im.findDrop(c, id)
	if err != nil {
		return err
	}
	if !actor.Is(d.Owner) {
		return domain.ErrNotDropOwner
	}
	if !d.IsDraft() {
		return domain.ErrNotEditable
	}

	now := im.clock.Now()
	err = im.transactor.RunWithTransaction(c, func(c ctx.Ctx) error {
		if _, err := im.asset.DetachAllFromDrop(c, id, now); err != nil {
			return err
		}
		if err := im.drop.Remove(c, id); err == domain.ErrConflict {
			return domain.ErrNotEditable
		} else if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if _, ok := err.(*domain.Error); !ok {
			c.WithFields(log.Fields{"dropId": id, "err": err}).Error("failed to delete drop")
		}
		return err
	}

	im.invalidate(c, d.Owner)
	return nil
}

func (im *impl) Feature(c ctx.Ctx, id string, actor domain.Actor) (*drop.Drop, error) {
	d, err := im.findDrop(c, id)
	if err != nil {
		return nil, err
	}
	if !actor.Is(d.Owner) {
		return nil, domain.ErrNotDropOwner
	}
	if d.IsFeatured {
		return nil, domain.ErrAlreadyFeatured
	}

	now := im.clock.Now()
	if err := im.drop.SetFeatured(c, id, now); err == domain.ErrConflict {
		return nil, domain.ErrAlreadyFeatured
	} else if err != nil {
		c.WithFields(log.Fields{"dropId": id, "err": err}).Error("drop.SetFeatured failed")
		return nil, err
	}

	d.IsFeatured = true
	d.UpdatedAt = now
	im.invalidate(c, d.Owner)
	return d, nil
}

func (im *impl) FindOne(c ctx.Ctx, id string) (*drop.Drop, error) {
	return im.findDrop(c, id)
}

func (im *impl) FindFeatured(c ctx.Ctx, owner domain.Address) (*drop.Drop, error) {
	res := &drop.Drop{}
	err := im.featured.GetByFunc(c, owner.ToLowerStr(), res, func() (interface{}, error) {
		drops, err := im.drop.FindAll(c, drop.WithOwner(owner), drop.WithFeatured(true), drop.WithPagination(0, 1))
		if err != nil {
			return nil, err
		}
		if len(drops) == 0 {
			return nil, domain.ErrDropNotFound
		}
		return &drops[0], nil
	})
	if err == domain.ErrDropNotFound {
		return nil, err
	} else if err != nil {
		c.WithFields(log.Fields{"owner": owner, "err": err}).Error("featured.GetByFunc failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindAll(c ctx.Ctx, opts ...drop.FindAllOptionsFunc) ([]drop.Drop, error) {
	res, err := im.drop.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("drop.FindAll failed")
		return nil, err
	}
	return res, nil
}
