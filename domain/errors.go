package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the item is not in a state that allows the action
	ErrConflict = errors.New("Your Item state has changed")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")
	// ErrUnauthorized will throw if the caller identity can not be resolved
	ErrUnauthorized = errors.New("Unauthorized")
	// ErrForbidden will throw if the caller does not own the item
	ErrForbidden = errors.New("Permission denied")

	// request error
	ErrInvalidAddress = errors.New("Invalid address")
)

// Error is a business rule violation carrying a caller facing message.
// errors.Is matches both the error itself and its Kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NewError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// not found
var (
	ErrAssetNotFound     = NewError(ErrNotFound, "NFT not found")
	ErrListingNotFound   = NewError(ErrNotFound, "Listing not found")
	ErrBidNotFound       = NewError(ErrNotFound, "Bid not found")
	ErrDropNotFound      = NewError(ErrNotFound, "Drop not found")
	ErrCartEntryNotFound = NewError(ErrNotFound, "NFT is not in cart")
	ErrNotInDrop         = NewError(ErrNotFound, "NFT is not in any drop")
)

// ownership
var (
	ErrNotOwner            = NewError(ErrForbidden, "Only Owner can put NFT on sale.")
	ErrNotAuctionOwner     = NewError(ErrForbidden, "Only Owner can accept the bid.")
	ErrNotDropOwner        = NewError(ErrForbidden, "Only Owner can edit the drop.")
	ErrNotListingOwner     = NewError(ErrForbidden, "Only Owner can cancel the sale.")
	ErrNotOwnerOfCartEntry = NewError(ErrForbidden, "Only the creator can remove the cart entry.")
	ErrSelfPurchase        = NewError(ErrForbidden, "Owner can not buy his own NFT.")
	ErrSelfBid             = NewError(ErrForbidden, "Owner can not bid on his own NFT.")
	ErrSelfHold            = NewError(ErrForbidden, "Owner can not add his own NFT to cart.")
)

// state conflict
var (
	ErrAlreadyListed         = NewError(ErrConflict, "This NFT is already on sale.")
	ErrWrongSaleType         = NewError(ErrConflict, "Nft is not on fixed price sale.")
	ErrNotOnAuction          = NewError(ErrConflict, "Nft is not on auction.")
	ErrAlreadySold           = NewError(ErrConflict, "This NFT is already sold.")
	ErrNotOnSale             = NewError(ErrConflict, "This NFT is not on sale.")
	ErrHasActiveBids         = NewError(ErrConflict, "Auction with active bids can not be cancelled.")
	ErrNotStarted            = NewError(ErrConflict, "Auction has not started yet.")
	ErrEnded                 = NewError(ErrConflict, "Auction has already ended.")
	ErrNotEnded              = NewError(ErrConflict, "Auction has not ended yet.")
	ErrBidTooLow             = NewError(ErrConflict, "Bid amount must be higher than the current highest bid.")
	ErrInvalidExpiry         = NewError(ErrConflict, "Bid expiry time must be in the future.")
	ErrAlreadySettled        = NewError(ErrConflict, "Bid is already settled.")
	ErrNotEditable           = NewError(ErrConflict, "Drop is not editable.")
	ErrAlreadyInThisDrop     = NewError(ErrConflict, "NFT is already in this drop.")
	ErrAlreadyInAnotherDrop  = NewError(ErrConflict, "NFT is already in another drop.")
	ErrDropNotDraft          = NewError(ErrConflict, "Drop is not in draft.")
	ErrNotInAppropriateState = NewError(ErrConflict, "Drop is not in appropriate state.")
	ErrAlreadyFeatured       = NewError(ErrConflict, "Drop is already featured.")
	ErrAlreadyInCart         = NewError(ErrConflict, "NFT is already in cart.")
	ErrEmptyCart             = NewError(ErrConflict, "Cart is empty.")
)
