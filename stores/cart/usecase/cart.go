package usecase

import (
	"errors"

	"github.com/benbjohnson/clock"
	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/log"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/asset"
	"github.com/x-xyz/marketcore/domain/cart"
	"github.com/x-xyz/marketcore/domain/listing"
)

const defaultWorkers = 4

type CartUseCaseCfg struct {
	CartRepo    cart.Repo
	AssetRepo   asset.Repo
	ListingRepo listing.Repo
	ListingUC   listing.Usecase
	Clock       clock.Clock
	// Workers bounds the purchases running at once during checkout
	Workers int
}

type impl struct {
	cart      cart.Repo
	asset     asset.Repo
	listing   listing.Repo
	listingUC listing.Usecase
	clock     clock.Clock
	workers   int
}

func New(cfg *CartUseCaseCfg) cart.Usecase {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &impl{
		cart:      cfg.CartRepo,
		asset:     cfg.AssetRepo,
		listing:   cfg.ListingRepo,
		listingUC: cfg.ListingUC,
		clock:     cfg.Clock,
		workers:   workers,
	}
}

func (im *impl) Add(c ctx.Ctx, nftId string, buyer domain.Actor) (*cart.Entry, error) {
	a, err := im.asset.FindOne(c, nftId)
	if err == domain.ErrNotFound {
		return nil, domain.ErrAssetNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"nftId": nftId, "err": err}).Error("asset.FindOne failed")
		return nil, err
	}
	if buyer.Is(a.Owner) {
		return nil, domain.ErrSelfHold
	}
	if !a.IsOnSale || a.CurrentListingId == nil {
		return nil, domain.ErrNotOnSale
	}

	l, err := im.listing.FindOne(c, *a.CurrentListingId)
	if err == domain.ErrNotFound {
		return nil, domain.ErrNotOnSale
	} else if err != nil {
		c.WithFields(log.Fields{"listingId": *a.CurrentListingId, "err": err}).Error("listing.FindOne failed")
		return nil, err
	}
	if !l.IsActive() {
		return nil, domain.ErrNotOnSale
	}
	if l.IsAuction() {
		return nil, domain.ErrWrongSaleType
	}

	held, err := im.cart.FindAll(c, cart.WithUser(buyer.Address), cart.WithNftId(nftId))
	if err != nil {
		c.WithFields(log.Fields{"nftId": nftId, "err": err}).Error("cart.FindAll failed")
		return nil, err
	}
	if len(held) > 0 {
		return nil, domain.ErrAlreadyInCart
	}

	e := &cart.Entry{
		User:      buyer.Address.ToLower(),
		NftId:     nftId,
		ListingId: l.Id,
		CreatedAt: im.clock.Now(),
	}
	if err := im.cart.Create(c, e); err == domain.ErrConflict {
		return nil, domain.ErrAlreadyInCart
	} else if err != nil {
		c.WithFields(log.Fields{"entry": *e, "err": err}).Error("cart.Create failed")
		return nil, err
	}
	return e, nil
}

func (im *impl) Remove(c ctx.Ctx, nftId string, actor domain.Actor) error {
	entries, err := im.cart.FindAll(c, cart.WithNftId(nftId))
	if err != nil {
		c.WithFields(log.Fields{"nftId": nftId, "err": err}).Error("cart.FindAll failed")
		return err
	}
	if len(entries) == 0 {
		return domain.ErrCartEntryNotFound
	}

	for _, e := range entries {
		if !actor.Is(e.User) {
			continue
		}
		if err := im.cart.Remove(c, e.Id); err == domain.ErrNotFound {
			return domain.ErrCartEntryNotFound
		} else if err != nil {
			c.WithFields(log.Fields{"entryId": e.Id, "err": err}).Error("cart.Remove failed")
			return err
		}
		return nil
	}
	return domain.ErrNotOwnerOfCartEntry
}

func (im *impl) FindAll(c ctx.Ctx, buyer domain.Actor) ([]cart.Entry, error) {
	res, err := im.cart.FindAll(c, cart.WithUser(buyer.Address))
	if err != nil {
		c.WithField("err", err).Error("cart.FindAll failed")
		return nil, err
	}
	return res, nil
}

type purchase struct {
	entry cart.Entry
	err   error
}

func (im *impl) Checkout(c ctx.Ctx, buyer domain.Actor) (*cart.CheckoutResult, error) {
	entries, err := im.cart.FindAll(c, cart.WithUser(buyer.Address))
	if err != nil {
		c.WithField("err", err).Error("cart.FindAll failed")
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrEmptyCart
	}

	// every entry buys a different asset, the purchases never contend with each other
	b := goroutines.NewBatch(im.workers, goroutines.WithBatchSize(len(entries)))
	defer b.Close()
	for i := 0; i < len(entries); i++ {
		e := entries[i]
		b.Queue(func() (interface{}, error) {
			_, err := im.listingUC.Buy(c, e.NftId, &e.ListingId, buyer)
			return purchase{entry: e, err: err}, nil
		})
	}
	b.QueueComplete()

	res := &cart.CheckoutResult{Purchased: []string{}, Dropped: []string{}}
	settled := []string{}
	for ret := range b.Results() {
		p := ret.Value().(purchase)
		switch {
		case p.err == nil:
			res.Purchased = append(res.Purchased, p.entry.NftId)
			settled = append(settled, p.entry.Id)
		case errors.Is(p.err, domain.ErrConflict), errors.Is(p.err, domain.ErrNotFound), errors.Is(p.err, domain.ErrForbidden):
			// sold, cancelled or transferred to the buyer since it was added
			res.Dropped = append(res.Dropped, p.entry.NftId)
			settled = append(settled, p.entry.Id)
		default:
			// the entry stays in the cart for the next checkout
			c.WithFields(log.Fields{"nftId": p.entry.NftId, "err": p.err}).Error("checkout purchase failed")
			res.Failed = append(res.Failed, p.entry.NftId)
		}
	}
	res.Count = len(res.Purchased)

	// entries added while the checkout ran are left untouched
	for _, id := range settled {
		if err := im.cart.Remove(c, id); err != nil && err != domain.ErrNotFound {
			c.WithFields(log.Fields{"entryId": id, "err": err}).Error("cart.Remove failed")
			return nil, err
		}
	}
	return res, nil
}
