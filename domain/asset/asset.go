package asset

import (
	"time"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain"
)

// Asset is a tradable item. IsOnSale is true iff CurrentListingId refers to an active listing.
type Asset struct {
	Id               string         `json:"id" bson:"_id"`
	Name             string         `json:"name" bson:"name"`
	Owner            domain.Address `json:"owner" bson:"owner"`
	IsOnSale         bool           `json:"isOnSale" bson:"isOnSale"`
	CurrentListingId *string        `json:"currentListingId" bson:"currentListingId"`
	DropId           *string        `json:"dropId" bson:"dropId"`
	CreatedAt        time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt" bson:"updatedAt"`
}

func (a Asset) InDrop() bool {
	return a.DropId != nil
}

type FindAllOptions struct {
	Owner    *domain.Address `bson:"owner"`
	DropId   *string         `bson:"dropId"`
	IsOnSale *bool           `bson:"isOnSale"`
	Offset   *int            `bson:"-"`
	Limit    *int            `bson:"-"`
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func WithOwner(owner domain.Address) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		o := owner.ToLower()
		opts.Owner = &o
		return nil
	}
}

func WithDropId(dropId string) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		opts.DropId = &dropId
		return nil
	}
}

func WithOnSale(isOnSale bool) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		opts.IsOnSale = &isOnSale
		return nil
	}
}

func WithPagination(offset, limit int) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		opts.Offset = &offset
		opts.Limit = &limit
		return nil
	}
}

// Repo persists assets. Every mutation is a conditional write which returns
// domain.ErrConflict when the asset is not in the expected state.
type Repo interface {
	FindOne(c ctx.Ctx, id string) (*Asset, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]Asset, error)
	Create(c ctx.Ctx, a *Asset) error

	// MarkOnSale claims the sale slot, only while owner holds the asset and it is not on sale
	MarkOnSale(c ctx.Ctx, id string, owner domain.Address, listingId string, at time.Time) error
	// ClearSale frees the sale slot held by listingId
	ClearSale(c ctx.Ctx, id, listingId string, at time.Time) error
	// TransferOwnership hands the asset to newOwner and frees the sale slot held by listingId
	TransferOwnership(c ctx.Ctx, id, listingId string, newOwner domain.Address, at time.Time) error

	// AttachDrop links the asset to dropId, only while owner holds it and it belongs to no drop
	AttachDrop(c ctx.Ctx, id string, owner domain.Address, dropId string, at time.Time) error
	DetachDrop(c ctx.Ctx, id, dropId string, at time.Time) error
	DetachAllFromDrop(c ctx.Ctx, dropId string, at time.Time) (int, error)
}

type Usecase interface {
	// Register records a newly minted asset owned by owner
	Register(c ctx.Ctx, name string, owner domain.Address) (*Asset, error)
	FindOne(c ctx.Ctx, id string) (*Asset, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]Asset, error)
}
