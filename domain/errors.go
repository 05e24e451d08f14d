package domain

import "errors"

// Every failure surfaces as one of these stable errors so the display layer
// can present a precise explanation. None of them is retriable without
// correcting the triggering condition first.
var (
	// ErrNotFound will throw if the requested item does not exist
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// validation errors
	ErrTokenURIEmpty       = errors.New("Token URI cannot be empty")
	ErrArtifactNameEmpty   = errors.New("Artifact name cannot be empty")
	ErrRoyaltyTooHigh      = errors.New("Royalty fraction too high")
	// ErrRoyaltyRecipientEmpty will throw when a non-zero royalty rate names
	// nobody to receive the royalty share
	ErrRoyaltyRecipientEmpty = errors.New("Royalty recipient cannot be empty")
	ErrPlatformFeeTooHigh  = errors.New("Platform fee fraction too high")
	ErrArrayLengthMismatch = errors.New("uris and names must have equal length")
	ErrInvalidPrice        = errors.New("price must be greater than zero")
	ErrIncorrectPayment    = errors.New("incorrect payment amount")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidAddress      = errors.New("Invalid address")

	// authorization errors
	ErrNotPlatformOwner    = errors.New("caller is not the platform owner")
	ErrNotCollectionOwner  = errors.New("caller is not the collection owner")
	ErrNotAuthorizedUpdate = errors.New("Not authorized to update")
	ErrNotOwnerNorApproved = errors.New("caller is not token owner or approved")
	ErrNotTokenOwner       = errors.New("caller is not the token owner")
	ErrNotSeller           = errors.New("caller is not the seller")
	ErrNotBidder           = errors.New("caller is not the bidder")
	// ErrSelfTrade will throw when a seller buys their own listing or an
	// owner bids on their own token
	ErrSelfTrade = errors.New("caller cannot trade with themselves")

	// state errors
	ErrInvalidTokenId   = errors.New("invalid token ID")
	ErrMintingPaused    = errors.New("minting is paused")
	ErrListingNotActive = errors.New("listing is not active")
	ErrOfferNotOpen     = errors.New("offer is not open")
	ErrOfferExpired     = errors.New("Offer expired")

	// funds errors
	ErrInsufficientFunds = errors.New("insufficient funds")

	// arithmetic guard: royalty plus platform fee may never exceed the price
	ErrFeesExceedPrice = errors.New("royalty and platform fee exceed sale price")
)
