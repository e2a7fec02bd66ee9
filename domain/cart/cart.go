package cart

import (
	"time"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain"
)

// Entry is a fixed price listing held by a buyer, one per (user, nft)
type Entry struct {
	Id        string         `json:"id" bson:"_id"`
	User      domain.Address `json:"user" bson:"user"`
	NftId     string         `json:"nftId" bson:"nftId"`
	ListingId string         `json:"listingId" bson:"listingId"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
}

type FindAllOptions struct {
	User  *domain.Address `bson:"user"`
	NftId *string         `bson:"nftId"`
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

func WithUser(user domain.Address) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		u := user.ToLower()
		opts.User = &u
		return nil
	}
}

func WithNftId(nftId string) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		opts.NftId = &nftId
		return nil
	}
}

type Repo interface {
	// FindAll returns entries ordered by createdAt ascending
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]Entry, error)
	// Create returns domain.ErrConflict if the user already holds the nft
	Create(c ctx.Ctx, e *Entry) error
	// Remove returns domain.ErrNotFound if the entry is gone
	Remove(c ctx.Ctx, id string) error
}

// CheckoutResult lists the outcome of every cart entry
type CheckoutResult struct {
	Count     int      `json:"count"`
	Purchased []string `json:"purchased"`
	Dropped   []string `json:"dropped"`
	Failed    []string `json:"failed,omitempty"`
}

type Usecase interface {
	Add(c ctx.Ctx, nftId string, buyer domain.Actor) (*Entry, error)
	Remove(c ctx.Ctx, nftId string, actor domain.Actor) error
	FindAll(c ctx.Ctx, buyer domain.Actor) ([]Entry, error)
	// Checkout buys every held listing that is still available, entries that lost a race are dropped
	Checkout(c ctx.Ctx, buyer domain.Actor) (*CheckoutResult, error)
}
