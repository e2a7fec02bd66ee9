package notification

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain"
)

type Kind string

const (
	KindDropNftBidAccepted   Kind = "drop_nft_bid_accepted"
	KindSingleNftBidAccepted Kind = "single_nft_bid_accepted"
	KindDropPending          Kind = "drop_pending"
	KindDropLive             Kind = "drop_live"
	KindDropClosed           Kind = "drop_closed"
)

type Event struct {
	Kind   Kind            `json:"kind"`
	NftId  string          `json:"nftId,omitempty"`
	DropId string          `json:"dropId,omitempty"`
	BidId  string          `json:"bidId,omitempty"`
	From   domain.Address  `json:"from,omitempty"`
	To     domain.Address  `json:"to,omitempty"`
	Amount decimal.Decimal `json:"amount"`
	Time   time.Time       `json:"time"`
}

// Notifier delivers events fire-and-forget, it never reports failures to the caller
type Notifier interface {
	Notify(c ctx.Ctx, event Event)
}

// Sink is one delivery channel behind a Notifier
type Sink interface {
	Name() string
	Send(c ctx.Ctx, event Event) error
}
