package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketcore/base/delivery"
	"github.com/x-xyz/marketcore/base/validator"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/listing"
	mListing "github.com/x-xyz/marketcore/domain/listing/mocks"
	mDomain "github.com/x-xyz/marketcore/domain/mocks"
	"github.com/x-xyz/marketcore/middleware"
	authMiddleware "github.com/x-xyz/marketcore/stores/auth/delivery/http/middleware"
)

var user = domain.Actor{Address: "0x00000000000000000000000000000000000000aa", Role: domain.RoleUser}

type handlerSuite struct {
	suite.Suite

	e       *echo.Echo
	listing *mListing.Usecase
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	auth := mDomain.NewAuthUsecase(s.T())
	auth.On("ParseToken", mock.Anything, "user").Return(user, nil).Maybe()

	s.listing = mListing.NewUsecase(s.T())
	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(validator.New())
	s.e.Use(middleware.InitMiddleware().AddContext())
	New(s.e, s.listing, authMiddleware.New(auth))
}

func (s *handlerSuite) do(method, path, token, body string) (*httptest.ResponseRecorder, delivery.JsonResponse) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	resp := delivery.JsonResponse{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func (s *handlerSuite) TestPutOnSale() {
	rec, _ := s.do(http.MethodPost, "/list", "", `{"nftId":"nft-1","price":"1.5"}`)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(http.MethodPost, "/list", "user", `{"nftId":"nft-1","price":"0"}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	s.listing.On("PutOnSale", mock.Anything, "nft-1", decimal.RequireFromString("1.5"), user).Return("listing-1", nil).Once()
	rec, resp := s.do(http.MethodPost, "/list", "user", `{"nftId":"nft-1","price":"1.5"}`)
	s.Equal(http.StatusCreated, rec.Code)
	s.Equal(map[string]interface{}{"listingId": "listing-1"}, resp.Data)

	s.listing.On("PutOnSale", mock.Anything, "nft-1", mock.Anything, user).Return("", domain.ErrAlreadyListed).Once()
	rec, resp = s.do(http.MethodPost, "/list", "user", `{"nftId":"nft-1","price":2}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(domain.ErrAlreadyListed.Error(), resp.Message)
}

func (s *handlerSuite) TestBuy() {
	listingId := "listing-1"
	s.listing.On("Buy", mock.Anything, "nft-1", &listingId, user).Return(&listing.Listing{Id: listingId, IsSold: true}, nil).Once()
	rec, resp := s.do(http.MethodPost, "/buy", "user", `{"nftId":"nft-1","listingId":"listing-1"}`)
	s.Equal(http.StatusOK, rec.Code)
	s.True(resp.Success)

	s.listing.On("Buy", mock.Anything, "nft-1", (*string)(nil), user).Return(nil, domain.ErrAlreadySold).Once()
	rec, resp = s.do(http.MethodPost, "/buy", "user", `{"nftId":"nft-1"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(domain.ErrAlreadySold.Error(), resp.Message)

	rec, _ = s.do(http.MethodPost, "/buy", "user", `{}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlerSuite) TestCancelAndFind() {
	s.listing.On("CancelListing", mock.Anything, "nft-1", user).Return(nil).Once()
	rec, _ := s.do(http.MethodDelete, "/list/nft-1", "user", "")
	s.Equal(http.StatusOK, rec.Code)

	s.listing.On("FindActive", mock.Anything, "nft-1").Return(nil, domain.ErrListingNotFound).Once()
	rec, resp := s.do(http.MethodGet, "/list/nft-1", "", "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.False(resp.Success)
}
