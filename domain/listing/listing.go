package listing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain"
)

type SaleType string

const (
	SaleTypeFixedPrice SaleType = "fixed-price"
	SaleTypeAuction    SaleType = "auction"
)

func (t SaleType) IsValid() bool {
	return t == SaleTypeFixedPrice || t == SaleTypeAuction
}

// Listing is a sale intent on one asset. Price is the fixed price, or the start price of an auction.
type Listing struct {
	Id          string          `json:"id" bson:"_id"`
	NftId       string          `json:"nftId" bson:"nftId"`
	Seller      domain.Address  `json:"seller" bson:"seller"`
	SaleType    SaleType        `json:"saleType" bson:"saleType"`
	Price       decimal.Decimal `json:"price" bson:"price"`
	StartTime   *time.Time      `json:"startTime,omitempty" bson:"startTime,omitempty"`
	EndTime     *time.Time      `json:"endTime,omitempty" bson:"endTime,omitempty"`
	IsSold      bool            `json:"isSold" bson:"isSold"`
	SoldAt      *time.Time      `json:"soldAt,omitempty" bson:"soldAt,omitempty"`
	Buyer       *domain.Address `json:"buyer,omitempty" bson:"buyer,omitempty"`
	CancelledAt *time.Time      `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// IsActive means neither sold nor cancelled
func (l Listing) IsActive() bool {
	return !l.IsSold && l.CancelledAt == nil
}

func (l Listing) IsAuction() bool {
	return l.SaleType == SaleTypeAuction
}

func (l Listing) HasStarted(now time.Time) bool {
	return l.StartTime == nil || !now.Before(*l.StartTime)
}

func (l Listing) HasEnded(now time.Time) bool {
	return l.EndTime != nil && !now.Before(*l.EndTime)
}

type FindAllOptions struct {
	NftId    *string         `bson:"nftId"`
	Seller   *domain.Address `bson:"seller"`
	SaleType *SaleType       `bson:"saleType"`
	IsActive *bool           `bson:"active"`
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

func WithNftId(nftId string) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		opts.NftId = &nftId
		return nil
	}
}

func WithSeller(seller domain.Address) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		s := seller.ToLower()
		opts.Seller = &s
		return nil
	}
}

func WithSaleType(saleType SaleType) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		opts.SaleType = &saleType
		return nil
	}
}

func WithActive(isActive bool) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		opts.IsActive = &isActive
		return nil
	}
}

// Repo persists listings. At most one active listing may exist per asset,
// Create returns domain.ErrConflict otherwise.
type Repo interface {
	FindOne(c ctx.Ctx, id string) (*Listing, error)
	FindActiveByNft(c ctx.Ctx, nftId string) (*Listing, error)
	FindLatestByNft(c ctx.Ctx, nftId string) (*Listing, error)
	// FindAll returns listings ordered by createdAt descending
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]Listing, error)
	Create(c ctx.Ctx, l *Listing) error

	// MarkSold succeeds only while the listing is active
	MarkSold(c ctx.Ctx, id string, buyer domain.Address, at time.Time) error
	// Cancel succeeds only while the listing is active
	Cancel(c ctx.Ctx, id string, at time.Time) error
}

type Usecase interface {
	PutOnSale(c ctx.Ctx, nftId string, price decimal.Decimal, actor domain.Actor) (string, error)
	// Open claims the asset sale slot for l and stores it. Used for both sale types.
	Open(c ctx.Ctx, l *Listing, actor domain.Actor) (*Listing, error)
	// Buy purchases the listing given by listingId, or the asset's current or latest listing if nil
	Buy(c ctx.Ctx, nftId string, listingId *string, buyer domain.Actor) (*Listing, error)
	CancelListing(c ctx.Ctx, nftId string, actor domain.Actor) error

	FindOne(c ctx.Ctx, id string) (*Listing, error)
	FindActive(c ctx.Ctx, nftId string) (*Listing, error)
}
