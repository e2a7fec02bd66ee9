package auction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain"
)

type BidStatus string

const (
	BidStatusActive    BidStatus = "active"
	BidStatusFinalized BidStatus = "finalized"
	BidStatusAccepted  BidStatus = "accepted"
	BidStatusExpired   BidStatus = "expired"
)

func (s BidStatus) IsTerminal() bool {
	return s != BidStatusActive
}

type Bid struct {
	Id            string          `json:"id" bson:"_id"`
	NftId         string          `json:"nftId" bson:"nftId"`
	ListingId     string          `json:"listingId" bson:"listingId"`
	Bidder        domain.Address  `json:"bidder" bson:"bidder"`
	BidderAddress domain.Address  `json:"bidderAddress" bson:"bidderAddress"`
	BidAmount     decimal.Decimal `json:"bidAmount" bson:"bidAmount"`
	ExpiryTime    time.Time       `json:"expiryTime" bson:"expiryTime"`
	Status        BidStatus       `json:"status" bson:"status"`
	TxHash        domain.TxHash   `json:"txHash,omitempty" bson:"txHash,omitempty"`
	CreatedAt     time.Time       `json:"createdAt" bson:"createdAt"`
	SettledAt     *time.Time      `json:"settledAt,omitempty" bson:"settledAt,omitempty"`
}

type BidFindAllOptions struct {
	NftId     *string         `bson:"nftId"`
	ListingId *string         `bson:"listingId"`
	Bidder    *domain.Address `bson:"bidder"`
	Status    *BidStatus      `bson:"status"`
}

type BidFindAllOptionsFunc func(*BidFindAllOptions) error

func GetBidFindAllOptions(opts ...BidFindAllOptionsFunc) (BidFindAllOptions, error) {
	res := BidFindAllOptions{}
	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func BidWithNftId(nftId string) BidFindAllOptionsFunc {
	return func(opts *BidFindAllOptions) error {
		opts.NftId = &nftId
		return nil
	}
}

func BidWithListingId(listingId string) BidFindAllOptionsFunc {
	return func(opts *BidFindAllOptions) error {
		opts.ListingId = &listingId
		return nil
	}
}

func BidWithBidder(bidder domain.Address) BidFindAllOptionsFunc {
	return func(opts *BidFindAllOptions) error {
		b := bidder.ToLower()
		opts.Bidder = &b
		return nil
	}
}

func BidWithStatus(status BidStatus) BidFindAllOptionsFunc {
	return func(opts *BidFindAllOptions) error {
		opts.Status = &status
		return nil
	}
}

type BidRepo interface {
	FindOne(c ctx.Ctx, id string) (*Bid, error)
	// FindAll returns bids ordered by createdAt descending
	FindAll(c ctx.Ctx, opts ...BidFindAllOptionsFunc) ([]Bid, error)
	// FindHighest returns the active bid of listingId with the greatest amount
	FindHighest(c ctx.Ctx, listingId string) (*Bid, error)
	Create(c ctx.Ctx, b *Bid) error

	// Settle moves an active bid to a terminal status, domain.ErrConflict if it is not active anymore
	Settle(c ctx.Ctx, id string, to BidStatus, txHash domain.TxHash, at time.Time) error
	// ExpireOthers expires every active bid of listingId except exceptId
	ExpireOthers(c ctx.Ctx, listingId, exceptId string, at time.Time) (int, error)
}
