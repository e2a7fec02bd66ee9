package usecase

import (
	"github.com/benbjohnson/clock"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/log"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/asset"
)

type AssetUseCaseCfg struct {
	AssetRepo asset.Repo
	Clock     clock.Clock
}

type impl struct {
	asset asset.Repo
	clock clock.Clock
}

func New(cfg *AssetUseCaseCfg) asset.Usecase {
	return &impl{
		asset: cfg.AssetRepo,
		clock: cfg.Clock,
	}
}

func (im *impl) Register(c ctx.Ctx, name string, owner domain.Address) (*asset.Asset, error) {
	if owner.IsEmpty() {
		return nil, domain.ErrBadParamInput
	}
	now := im.clock.Now()
	a := &asset.Asset{
		Name:      name,
		Owner:     owner.ToLower(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := im.asset.Create(c, a); err != nil {
		c.WithFields(log.Fields{
			"owner": owner,
			"err":   err,
		}).Error("asset.Create failed")
		return nil, err
	}
	return a, nil
}

func (im *impl) FindOne(c ctx.Ctx, id string) (*asset.Asset, error) {
	res, err := im.asset.FindOne(c, id)
	if err == domain.ErrNotFound {
		return nil, domain.ErrAssetNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"id": id, "err": err}).Error("asset.FindOne failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindAll(c ctx.Ctx, opts ...asset.FindAllOptionsFunc) ([]asset.Asset, error) {
	res, err := im.asset.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("asset.FindAll failed")
		return nil, err
	}
	return res, nil
}
