package usecase

import (
	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/log"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/asset"
	"github.com/x-xyz/marketcore/domain/auction"
	"github.com/x-xyz/marketcore/domain/keys"
	"github.com/x-xyz/marketcore/domain/listing"
	"github.com/x-xyz/marketcore/service/locker"
)

type ListingUseCaseCfg struct {
	AssetRepo   asset.Repo
	ListingRepo listing.Repo
	BidRepo     auction.BidRepo
	Transactor  domain.Transactor
	Locker      locker.Locker
	Clock       clock.Clock
}

type impl struct {
	asset      asset.Repo
	listing    listing.Repo
	bid        auction.BidRepo
	transactor domain.Transactor
	locker     locker.Locker
	clock      clock.Clock
}

func New(cfg *ListingUseCaseCfg) listing.Usecase {
	return &impl{
		asset:      cfg.AssetRepo,
		listing:    cfg.ListingRepo,
		bid:        cfg.BidRepo,
		transactor: cfg.Transactor,
		locker:     cfg.Locker,
		clock:      cfg.Clock,
	}
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

func (im *impl) findListing(c ctx.Ctx, id string) (*listing.Listing, error) {
	l, err := im.listing.FindOne(c, id)
	if err == domain.ErrNotFound {
		return nil, domain.ErrListingNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"listingId": id, "err": err}).Error("listing.FindOne failed")
		return nil, err
	}
	return l, nil
}

func (im *impl) PutOnSale(c ctx.Ctx, nftId string, price decimal.Decimal, actor domain.Actor) (string, error) {
	if !price.IsPositive() {
		return "", domain.ErrBadParamInput
	}
	l, err := im.Open(c, &listing.Listing{
		NftId:    nftId,
		SaleType: listing.SaleTypeFixedPrice,
		Price:    price,
	}, actor)
	if err != nil {
		return "", err
	}
	return l.Id, nil
}

func (im *impl) Open(c ctx.Ctx, l *listing.Listing, actor domain.Actor) (*listing.Listing, error) {
	a, err := im.findAsset(c, l.NftId)
	if err != nil {
		return nil, err
	}
	if !actor.Is(a.Owner) {
		return nil, domain.ErrNotOwner
	}
	if a.IsOnSale {
		return nil, domain.ErrAlreadyListed
	}

	now := im.clock.Now()
	l.Id = uuid.NewString()
	l.Seller = actor.Address.ToLower()
	l.CreatedAt = now
	l.UpdatedAt = now

	err = im.transactor.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.asset.MarkOnSale(c, l.NftId, actor.Address, l.Id, now); err != nil {
			return err
		}
		return im.listing.Create(c, l)
	})
	if err == domain.ErrConflict {
		// lost the sale slot to a concurrent listing
		return nil, domain.ErrAlreadyListed
	} else if err != nil {
		c.WithFields(log.Fields{"listing": *l, "err": err}).Error("failed to open listing")
		return nil, err
	}
	return l, nil
}

// resolveListing picks listingId when given, then the asset's current listing, then its latest one
func (im *impl) resolveListing(c ctx.Ctx, a *asset.Asset, listingId *string) (*listing.Listing, error) {
	if listingId != nil {
		l, err := im.findListing(c, *listingId)
		if err != nil {
			return nil, err
		}
		if l.NftId != a.Id {
			return nil, domain.ErrListingNotFound
		}
		return l, nil
	}
	if a.CurrentListingId != nil {
		return im.findListing(c, *a.CurrentListingId)
	}
	l, err := im.listing.FindLatestByNft(c, a.Id)
	if err == domain.ErrNotFound {
		return nil, domain.ErrListingNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"nftId": a.Id, "err": err}).Error("listing.FindLatestByNft failed")
		return nil, err
	}
	return l, nil
}

func (im *impl) Buy(c ctx.Ctx, nftId string, listingId *string, buyer domain.Actor) (*listing.Listing, error) {
	a, err := im.findAsset(c, nftId)
	if err != nil {
		return nil, err
	}
	l, err := im.resolveListing(c, a, listingId)
	if err != nil {
		return nil, err
	}

	switch {
	case l.IsAuction():
		return nil, domain.ErrWrongSaleType
	case buyer.Is(a.Owner):
		return nil, domain.ErrSelfPurchase
	case l.IsSold:
		return nil, domain.ErrAlreadySold
	case l.CancelledAt != nil:
		return nil, domain.ErrNotOnSale
	}

	now := im.clock.Now()
	err = im.transactor.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.listing.MarkSold(c, l.Id, buyer.Address, now); err != nil {
			return err
		}
		return im.asset.TransferOwnership(c, a.Id, l.Id, buyer.Address, now)
	})
	if err == domain.ErrConflict {
		return nil, domain.ErrAlreadySold
	} else if err != nil {
		c.WithFields(log.Fields{"listingId": l.Id, "buyer": buyer.Address, "err": err}).Error("failed to buy")
		return nil, err
	}

	b := buyer.Address.ToLower()
	l.IsSold = true
	l.SoldAt = &now
	l.Buyer = &b
	l.UpdatedAt = now
	return l, nil
}

func (im *impl) CancelListing(c ctx.Ctx, nftId string, actor domain.Actor) error {
	// bids are placed under the same lock, none can slip in after the check below
	unlock, err := im.locker.Lock(c, keys.RedisKey(keys.PfxAssetLock, nftId))
	if err != nil {
		return err
	}
	defer unlock()

	a, err := im.findAsset(c, nftId)
	if err != nil {
		return err
	}
	l, err := im.listing.FindActiveByNft(c, nftId)
	if err == domain.ErrNotFound {
		return domain.ErrNotOnSale
	} else if err != nil {
		c.WithFields(log.Fields{"nftId": nftId, "err": err}).Error("listing.FindActiveByNft failed")
		return err
	}
	if !actor.Is(a.Owner) || !actor.Is(l.Seller) {
		return domain.ErrNotListingOwner
	}

	if l.IsAuction() {
		bids, err := im.bid.FindAll(c, auction.BidWithListingId(l.Id), auction.BidWithStatus(auction.BidStatusActive))
		if err != nil {
			c.WithFields(log.Fields{"listingId": l.Id, "err": err}).Error("bid.FindAll failed")
			return err
		}
		if len(bids) > 0 {
			return domain.ErrHasActiveBids
		}
	}

	now := im.clock.Now()
	err = im.transactor.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.listing.Cancel(c, l.Id, now); err != nil {
			return err
		}
		return im.asset.ClearSale(c, nftId, l.Id, now)
	})
	if err == domain.ErrConflict {
		return domain.ErrNotOnSale
	} else if err != nil {
		c.WithFields(log.Fields{"listingId": l.Id, "err": err}).Error("failed to cancel listing")
		return err
	}
	return nil
}

func (im *impl) FindOne(c ctx.Ctx, id string) (*listing.Listing, error) {
	return im.findListing(c, id)
}

func (im *impl) FindActive(c ctx.Ctx, nftId string) (*listing.Listing, error) {
	l, err := im.listing.FindActiveByNft(c, nftId)
	if err == domain.ErrNotFound {
		return nil, domain.ErrListingNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"nftId": nftId, "err": err}).Error("listing.FindActiveByNft failed")
		return nil, err
	}
	return l, nil
}
