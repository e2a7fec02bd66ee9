package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketcore/base/delivery"
	"github.com/x-xyz/marketcore/base/validator"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/cart"
	mCart "github.com/x-xyz/marketcore/domain/cart/mocks"
	mDomain "github.com/x-xyz/marketcore/domain/mocks"
	"github.com/x-xyz/marketcore/middleware"
	authMiddleware "github.com/x-xyz/marketcore/stores/auth/delivery/http/middleware"
)

var user = domain.Actor{Address: "0x00000000000000000000000000000000000000aa", Role: domain.RoleUser}

type handlerSuite struct {
	suite.Suite

	e    *echo.Echo
	cart *mCart.Usecase
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	auth := mDomain.NewAuthUsecase(s.T())
	auth.On("ParseToken", mock.Anything, "user").Return(user, nil).Maybe()

	s.cart = mCart.NewUsecase(s.T())
	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(validator.New())
	s.e.Use(middleware.InitMiddleware().AddContext())
	New(s.e, s.cart, authMiddleware.New(auth))
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

func (s *handlerSuite) TestRequiresAuth() {
	rec, _ := s.do(http.MethodGet, "/add-to-cart", "", "")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *handlerSuite) TestAdd() {
	s.cart.On("Add", mock.Anything, "nft-1", user).Return(&cart.Entry{Id: "entry-1", NftId: "nft-1"}, nil).Once()
	rec, resp := s.do(http.MethodPost, "/add-to-cart", "user", `{"nftId":"nft-1"}`)
	s.Equal(http.StatusCreated, rec.Code)
	s.True(resp.Success)

	s.cart.On("Add", mock.Anything, "nft-1", user).Return(nil, domain.ErrAlreadyInCart).Once()
	rec, resp = s.do(http.MethodPost, "/add-to-cart", "user", `{"nftId":"nft-1"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(domain.ErrAlreadyInCart.Error(), resp.Message)
}

func (s *handlerSuite) TestRemove() {
	rec, _ := s.do(http.MethodDelete, "/add-to-cart", "user", "")
	s.Equal(http.StatusBadRequest, rec.Code)

	s.cart.On("Remove", mock.Anything, "nft-1", user).Return(domain.ErrCartEntryNotFound).Once()
	rec, _ = s.do(http.MethodDelete, "/add-to-cart?nftId=nft-1", "user", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *handlerSuite) TestCheckout() {
	s.cart.On("FindAll", mock.Anything, user).Return([]cart.Entry{{Id: "entry-1"}}, nil).Once()
	rec, _ := s.do(http.MethodGet, "/add-to-cart", "user", "")
	s.Equal(http.StatusOK, rec.Code)

	s.cart.On("Checkout", mock.Anything, user).Return(&cart.CheckoutResult{Count: 1, Purchased: []string{"nft-1"}}, nil).Once()
	rec, resp := s.do(http.MethodPost, "/add-to-cart/buy", "user", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(float64(1), resp.Data.(map[string]interface{})["count"])

	s.cart.On("Checkout", mock.Anything, user).Return(nil, domain.ErrEmptyCart).Once()
	rec, _ = s.do(http.MethodPost, "/add-to-cart/buy", "user", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}
