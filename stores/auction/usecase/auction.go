package usecase

import (
	"github.com/benbjohnson/clock"
	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/log"
	"github.com/x-xyz/marketcore/base/ptr"
	"github.com/x-xyz/marketcore/base/validator"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/asset"
	"github.com/x-xyz/marketcore/domain/auction"
	"github.com/x-xyz/marketcore/domain/keys"
	"github.com/x-xyz/marketcore/domain/listing"
	"github.com/x-xyz/marketcore/domain/notification"
	"github.com/x-xyz/marketcore/service/locker"
)

type AuctionUseCaseCfg struct {
	AssetRepo   asset.Repo
	ListingRepo listing.Repo
	BidRepo     auction.BidRepo
	ListingUC   listing.Usecase
	Transactor  domain.Transactor
	Locker      locker.Locker
	Notifier    notification.Notifier
	Clock       clock.Clock
}

type impl struct {
	asset      asset.Repo
	listing    listing.Repo
	bid        auction.BidRepo
	listingUC  listing.Usecase
	transactor domain.Transactor
	locker     locker.Locker
	notifier   notification.Notifier
	clock      clock.Clock
}

func New(cfg *AuctionUseCaseCfg) auction.Usecase {
	return &impl{
		asset:      cfg.AssetRepo,
		listing:    cfg.ListingRepo,
		bid:        cfg.BidRepo,
		listingUC:  cfg.ListingUC,
		transactor: cfg.Transactor,
		locker:     cfg.Locker,
		notifier:   cfg.Notifier,
		clock:      cfg.Clock,
	}
}

func lockKey(nftId string) string {
	return keys.RedisKey(keys.PfxAssetLock, nftId)
}

func (im *impl) CreateAuction(c ctx.Ctx, params auction.CreateAuctionParams, actor domain.Actor) (*listing.Listing, error) {
	now := im.clock.Now()
	if !params.StartPrice.IsPositive() ||
		!params.StartTime.Before(params.EndTime) ||
		params.StartTime.Before(now) {
		return nil, domain.ErrBadParamInput
	}

	return im.listingUC.Open(c, &listing.Listing{
		NftId:     params.NftId,
		SaleType:  listing.SaleTypeAuction,
		Price:     params.StartPrice,
		StartTime: ptr.Time(params.StartTime),
		EndTime:   ptr.Time(params.EndTime),
	}, actor)
}

func (im *impl) PlaceBid(c ctx.Ctx, params auction.PlaceBidParams, bidder domain.Actor) (*auction.Bid, error) {
	if !params.BidAmount.IsPositive() || !validator.IsValidAddress(string(params.BidderAddress)) {
		return nil, domain.ErrBadParamInput
	}

	// the highest bid read below stays current until the new bid is stored
	unlock, err := im.locker.Lock(c, lockKey(params.NftId))
	if err != nil {
		return nil, err
	}
	defer unlock()

	a, err := im.asset.FindOne(c, params.NftId)
	if err == domain.ErrNotFound {
		return nil, domain.ErrAssetNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"nftId": params.NftId, "err": err}).Error("asset.FindOne failed")
		return nil, err
	}
	if bidder.Is(a.Owner) {
		return nil, domain.ErrSelfBid
	}

	l, err := im.listing.FindActiveByNft(c, params.NftId)
	if err == domain.ErrNotFound {
		return nil, domain.ErrListingNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"nftId": params.NftId, "err": err}).Error("listing.FindActiveByNft failed")
		return nil, err
	}

	now := im.clock.Now()
	switch {
	case !l.IsAuction():
		return nil, domain.ErrWrongSaleType
	case !l.HasStarted(now):
		return nil, domain.ErrNotStarted
	case l.HasEnded(now):
		return nil, domain.ErrEnded
	}

	floor := l.Price
	highest, err := im.bid.FindHighest(c, l.Id)
	if err == nil {
		floor = decimal.Max(floor, highest.BidAmount)
	} else if err != domain.ErrNotFound {
		c.WithFields(log.Fields{"listingId": l.Id, "err": err}).Error("bid.FindHighest failed")
		return nil, err
	}
	if params.BidAmount.LessThanOrEqual(floor) {
		return nil, domain.ErrBidTooLow
	}
	if !params.ExpiryTime.After(now) {
		return nil, domain.ErrInvalidExpiry
	}

	b := &auction.Bid{
		NftId:         params.NftId,
		ListingId:     l.Id,
		Bidder:        bidder.Address.ToLower(),
		BidderAddress: params.BidderAddress.ToLower(),
		BidAmount:     params.BidAmount,
		ExpiryTime:    params.ExpiryTime,
		Status:        auction.BidStatusActive,
		CreatedAt:     now,
	}
	if err := im.bid.Create(c, b); err != nil {
		c.WithFields(log.Fields{"bid": *b, "err": err}).Error("bid.Create failed")
		return nil, err
	}
	return b, nil
}

func (im *impl) findBid(c ctx.Ctx, id string) (*auction.Bid, error) {
	b, err := im.bid.FindOne(c, id)
	if err == domain.ErrNotFound {
		return nil, domain.ErrBidNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"bidId": id, "err": err}).Error("bid.FindOne failed")
		return nil, err
	}
	return b, nil
}

func (im *impl) FinalizeBid(c ctx.Ctx, bidId string, txHash domain.TxHash) (*auction.Bid, error) {
	if txHash.IsEmpty() {
		return nil, domain.ErrBadParamInput
	}
	b, err := im.findBid(c, bidId)
	if err != nil {
		return nil, err
	}
	if b.Status.IsTerminal() {
		return nil, domain.ErrAlreadySettled
	}

	now := im.clock.Now()
	if err := im.bid.Settle(c, bidId, auction.BidStatusFinalized, txHash, now); err == domain.ErrConflict {
		return nil, domain.ErrAlreadySettled
	} else if err != nil {
		c.WithFields(log.Fields{"bidId": bidId, "err": err}).Error("bid.Settle failed")
		return nil, err
	}

	b.Status = auction.BidStatusFinalized
	b.TxHash = txHash
	b.SettledAt = &now
	return b, nil
}

func (im *impl) AcceptBid(c ctx.Ctx, bidId string, txHash domain.TxHash, actor domain.Actor) (*auction.Bid, error) {
	b, err := im.findBid(c, bidId)
	if err != nil {
		return nil, err
	}

	unlock, err := im.locker.Lock(c, lockKey(b.NftId))
	if err != nil {
		return nil, err
	}
	defer unlock()

	// the bid may have settled while we waited for the lock
	if b, err = im.findBid(c, bidId); err != nil {
		return nil, err
	}
	if b.Status.IsTerminal() {
		return nil, domain.ErrAlreadySettled
	}

	l, err := im.listing.FindOne(c, b.ListingId)
	if err == domain.ErrNotFound {
		return nil, domain.ErrListingNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"listingId": b.ListingId, "err": err}).Error("listing.FindOne failed")
		return nil, err
	}

	now := im.clock.Now()
	switch {
	case !l.IsAuction():
		return nil, domain.ErrWrongSaleType
	case !l.HasStarted(now):
		return nil, domain.ErrNotStarted
	case !l.HasEnded(now):
		return nil, domain.ErrNotEnded
	}

	a, err := im.asset.FindOne(c, b.NftId)
	if err == domain.ErrNotFound {
		return nil, domain.ErrAssetNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"nftId": b.NftId, "err": err}).Error("asset.FindOne failed")
		return nil, err
	}
	switch {
	case !actor.Is(a.Owner):
		return nil, domain.ErrNotAuctionOwner
	case l.IsSold:
		return nil, domain.ErrAlreadySold
	case l.CancelledAt != nil:
		return nil, domain.ErrNotOnSale
	}

	err = im.transactor.RunWithTransaction(c, func(c ctx.Ctx) error {
		if err := im.bid.Settle(c, b.Id, auction.BidStatusAccepted, txHash, now); err == domain.ErrConflict {
			return domain.ErrAlreadySettled
		} else if err != nil {
			return err
		}
		if err := im.listing.MarkSold(c, l.Id, b.Bidder, now); err == domain.ErrConflict {
			return domain.ErrAlreadySold
		} else if err != nil {
			return err
		}
		if err := im.asset.TransferOwnership(c, a.Id, l.Id, b.Bidder, now); err == domain.ErrConflict {
			return domain.ErrAlreadySold
		} else if err != nil {
			return err
		}
		n, err := im.bid.ExpireOthers(c, l.Id, b.Id, now)
		if err != nil {
			return err
		}
		c.WithFields(log.Fields{"listingId": l.Id, "expired": n}).Info("bid accepted")
		return nil
	})
	if err != nil {
		if _, ok := err.(*domain.Error); !ok {
			c.WithFields(log.Fields{"bidId": b.Id, "err": err}).Error("failed to accept bid")
		}
		return nil, err
	}

	b.Status = auction.BidStatusAccepted
	b.TxHash = txHash
	b.SettledAt = &now

	kind := notification.KindSingleNftBidAccepted
	if a.InDrop() {
		kind = notification.KindDropNftBidAccepted
	}
	im.notifier.Notify(c, notification.Event{
		Kind:   kind,
		NftId:  a.Id,
		DropId: ptr.StringValue(a.DropId),
		BidId:  b.Id,
		From:   a.Owner,
		To:     b.Bidder,
		Amount: b.BidAmount,
		Time:   now,
	})
	return b, nil
}

func (im *impl) GetHighestBid(c ctx.Ctx, nftId string) (*auction.Bid, error) {
	l, err := im.listing.FindActiveByNft(c, nftId)
	if err == domain.ErrNotFound {
		return nil, domain.ErrListingNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"nftId": nftId, "err": err}).Error("listing.FindActiveByNft failed")
		return nil, err
	}
	b, err := im.bid.FindHighest(c, l.Id)
	if err == domain.ErrNotFound {
		return nil, domain.ErrBidNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"listingId": l.Id, "err": err}).Error("bid.FindHighest failed")
		return nil, err
	}
	return b, nil
}

func (im *impl) ListBids(c ctx.Ctx, nftId string) ([]auction.Bid, error) {
	res, err := im.bid.FindAll(c, auction.BidWithNftId(nftId))
	if err != nil {
		c.WithFields(log.Fields{"nftId": nftId, "err": err}).Error("bid.FindAll failed")
		return nil, err
	}
	return res, nil
}
