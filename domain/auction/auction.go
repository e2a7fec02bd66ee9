package auction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/listing"
)

type CreateAuctionParams struct {
	NftId      string
	StartPrice decimal.Decimal
	StartTime  time.Time
	EndTime    time.Time
}

type PlaceBidParams struct {
	NftId         string
	BidderAddress domain.Address
	BidAmount     decimal.Decimal
	ExpiryTime    time.Time
}

type Usecase interface {
	CreateAuction(c ctx.Ctx, params CreateAuctionParams, actor domain.Actor) (*listing.Listing, error)
	PlaceBid(c ctx.Ctx, params PlaceBidParams, bidder domain.Actor) (*Bid, error)
	// FinalizeBid records the on-chain settlement of a bid
	FinalizeBid(c ctx.Ctx, bidId string, txHash domain.TxHash) (*Bid, error)
	// AcceptBid settles the bid and hands the asset to the bidder
	AcceptBid(c ctx.Ctx, bidId string, txHash domain.TxHash, actor domain.Actor) (*Bid, error)

	GetHighestBid(c ctx.Ctx, nftId string) (*Bid, error)
	ListBids(c ctx.Ctx, nftId string) ([]Bid, error)
}
