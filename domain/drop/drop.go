package drop

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/listing"
)

type Status string

const (
	StatusDraft   Status = "draft"
	StatusPending Status = "pending"
	StatusLive    Status = "live"
	StatusClosed  Status = "closed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusLive, StatusClosed:
		return true
	}
	return false
}

type DropType string

const (
	DropTypeNormal  DropType = "normal"
	DropTypePremium DropType = "premium"
)

func (t DropType) IsValid() bool {
	return t == DropTypeNormal || t == DropTypePremium
}

type Member struct {
	NftId   string          `json:"nftId" bson:"nftId"`
	Price   decimal.Decimal `json:"price" bson:"price"`
	Supply  int             `json:"supply" bson:"supply"`
	AddedAt time.Time       `json:"addedAt" bson:"addedAt"`
}

type Drop struct {
	Id          string           `json:"id" bson:"_id"`
	Owner       domain.Address   `json:"owner" bson:"owner"`
	Title       string           `json:"title" bson:"title"`
	Description string           `json:"description" bson:"description"`
	SaleType    listing.SaleType `json:"saleType" bson:"saleType"`
	DropType    DropType         `json:"dropType" bson:"dropType"`
	Status      Status           `json:"status" bson:"status"`
	StartTime   time.Time        `json:"startTime" bson:"startTime"`
	EndTime     time.Time        `json:"endTime" bson:"endTime"`
	IsFeatured  bool             `json:"isFeatured" bson:"isFeatured"`
	Members     []Member         `json:"members" bson:"members"`
	TxHash      domain.TxHash    `json:"txHash,omitempty" bson:"txHash,omitempty"`
	CreatedAt   time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt" bson:"updatedAt"`
}

func (d Drop) IsDraft() bool {
	return d.Status == StatusDraft
}

func (d Drop) Member(nftId string) (Member, bool) {
	for _, m := range d.Members {
		if m.NftId == nftId {
			return m, true
		}
	}
	return Member{}, false
}

// CanAdvance tells whether the publication workflow allows moving from d.Status to to.
// draft->pending is caller facing, the others are driven by chain confirmation.
func (d Drop) CanAdvance(to Status) bool {
	switch d.Status {
	case StatusDraft:
		return to == StatusPending
	case StatusPending:
		return to == StatusLive || to == StatusClosed
	case StatusLive:
		return to == StatusClosed
	}
	return false
}

type FindAllOptions struct {
	Owner      *domain.Address `bson:"owner"`
	Status     *Status         `bson:"status"`
	IsFeatured *bool           `bson:"isFeatured"`
	Offset     *int            `bson:"-"`
	Limit      *int            `bson:"-"`
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

func WithStatus(status Status) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		if !status.IsValid() {
			return domain.ErrBadParamInput
		}
		opts.Status = &status
		return nil
	}
}

func WithFeatured(isFeatured bool) FindAllOptionsFunc {
	return func(opts *FindAllOptions) error {
		opts.IsFeatured = &isFeatured
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

// Repo persists drops. Mutations are conditional on the drop status and
// return domain.ErrConflict when the condition does not hold.
type Repo interface {
	FindOne(c ctx.Ctx, id string) (*Drop, error)
	// FindAll returns drops ordered by updatedAt descending
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]Drop, error)
	Create(c ctx.Ctx, d *Drop) error

	// AddMember appends m while the drop is draft and m.NftId is not a member
	AddMember(c ctx.Ctx, id string, m Member, at time.Time) error
	// UpdateMember replaces price and supply of an existing member while the drop is draft
	UpdateMember(c ctx.Ctx, id string, m Member, at time.Time) error
	// RemoveMember removes nftId while the drop is draft
	RemoveMember(c ctx.Ctx, id, nftId string, at time.Time) error

	SetStatus(c ctx.Ctx, id string, from, to Status, at time.Time) error
	// SetTxHash stores txHash once the drop left draft
	SetTxHash(c ctx.Ctx, id string, txHash domain.TxHash, at time.Time) error
	// SetFeatured succeeds only while the drop is not featured
	SetFeatured(c ctx.Ctx, id string, at time.Time) error
	// Remove deletes the drop while it is draft
	Remove(c ctx.Ctx, id string) error
}

type CreateParams struct {
	Title       string
	Description string
	SaleType    listing.SaleType
	DropType    DropType
	StartTime   time.Time
	EndTime     time.Time
}

type MemberParams struct {
	DropId string
	NftId  string
	Price  decimal.Decimal
	Supply int
}

type Usecase interface {
	Create(c ctx.Ctx, params CreateParams, actor domain.Actor) (*Drop, error)
	AddAsset(c ctx.Ctx, params MemberParams, actor domain.Actor) (*Drop, error)
	UpdateAsset(c ctx.Ctx, params MemberParams, actor domain.Actor) (*Drop, error)
	RemoveAsset(c ctx.Ctx, nftId string, actor domain.Actor) error

	// TransitionStatus is the owner facing draft->pending move
	TransitionStatus(c ctx.Ctx, id string, to Status, actor domain.Actor) (*Drop, error)
	// AdvanceStatus is driven by chain confirmation: pending->live, pending->closed and live->closed
	AdvanceStatus(c ctx.Ctx, id string, to Status) (*Drop, error)
	AttachTxHash(c ctx.Ctx, id string, txHash domain.TxHash) (*Drop, error)
	Delete(c ctx.Ctx, id string, actor domain.Actor) error
	Feature(c ctx.Ctx, id string, actor domain.Actor) (*Drop, error)

	FindOne(c ctx.Ctx, id string) (*Drop, error)
	// FindFeatured returns the most recently updated featured drop of owner
	FindFeatured(c ctx.Ctx, owner domain.Address) (*Drop, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptionsFunc) ([]Drop, error)
}
