package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/heritage-x/goapi/domain"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

var (
	notFoundErrors = []error{
		domain.ErrNotFound,
		domain.ErrInvalidTokenId,
	}
	forbiddenErrors = []error{
		domain.ErrNotPlatformOwner,
		domain.ErrNotCollectionOwner,
		domain.ErrNotAuthorizedUpdate,
		domain.ErrNotOwnerNorApproved,
		domain.ErrNotTokenOwner,
		domain.ErrNotSeller,
		domain.ErrNotBidder,
		domain.ErrSelfTrade,
	}
	conflictErrors = []error{
		domain.ErrMintingPaused,
		domain.ErrListingNotActive,
		domain.ErrOfferNotOpen,
		domain.ErrOfferExpired,
		domain.ErrFeesExceedPrice,
	}
	badRequestErrors = []error{
		domain.ErrBadParamInput,
		domain.ErrTokenURIEmpty,
		domain.ErrArtifactNameEmpty,
		domain.ErrRoyaltyTooHigh,
		domain.ErrRoyaltyRecipientEmpty,
		domain.ErrPlatformFeeTooHigh,
		domain.ErrArrayLengthMismatch,
		domain.ErrInvalidPrice,
		domain.ErrIncorrectPayment,
		domain.ErrInvalidAmount,
		domain.ErrInvalidAddress,
		domain.ErrInsufficientFunds,
	}
)

func matches(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// StatusOf maps a domain error to the HTTP status the display layer expects.
func StatusOf(err error) int {
	switch {
	case matches(err, notFoundErrors):
		return http.StatusNotFound
	case matches(err, forbiddenErrors):
		return http.StatusForbidden
	case matches(err, conflictErrors):
		return http.StatusConflict
	case matches(err, badRequestErrors):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
