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
	"github.com/x-xyz/marketcore/domain/drop"
	mDrop "github.com/x-xyz/marketcore/domain/drop/mocks"
	"github.com/x-xyz/marketcore/domain/listing"
	mDomain "github.com/x-xyz/marketcore/domain/mocks"
	"github.com/x-xyz/marketcore/middleware"
	"github.com/x-xyz/marketcore/service/cache/provider/primitive"
	authMiddleware "github.com/x-xyz/marketcore/stores/auth/delivery/http/middleware"
)

var (
	user  = domain.Actor{Address: "0x00000000000000000000000000000000000000aa", Role: domain.RoleUser}
	admin = domain.Actor{Address: "0x00000000000000000000000000000000000000ff", Role: domain.RoleAdmin}
)

type handlerSuite struct {
	suite.Suite

	e    *echo.Echo
	drop *mDrop.Usecase
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	auth := mDomain.NewAuthUsecase(s.T())
	auth.On("ParseToken", mock.Anything, "user").Return(user, nil).Maybe()
	auth.On("ParseToken", mock.Anything, "admin").Return(admin, nil).Maybe()

	s.drop = mDrop.NewUsecase(s.T())
	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(validator.New())
	s.e.Use(middleware.InitMiddleware().AddContext())
	New(s.e, s.drop, authMiddleware.New(auth), middleware.NewHttpCache(primitive.NewPrimitive("drop", 1)))
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

func (s *handlerSuite) TestCreate() {
	s.drop.On("Create", mock.Anything, mock.MatchedBy(func(p drop.CreateParams) bool {
		return p.Title == "launch" && p.SaleType == listing.SaleTypeFixedPrice && p.DropType == drop.DropTypePremium
	}), user).Return(&drop.Drop{Id: "drop-1", Status: drop.StatusDraft}, nil).Once()

	rec, resp := s.do(http.MethodPost, "/drop", "user",
		`{"title":"launch","saleType":"fixed-price","dropType":"premium","startTime":1700000000000,"endTime":1700000600000}`)
	s.Equal(http.StatusCreated, rec.Code)
	s.True(resp.Success)

	rec, _ = s.do(http.MethodPost, "/drop", "user",
		`{"title":"launch","saleType":"fixed-price","dropType":"gold","startTime":1700000000000,"endTime":1700000600000}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlerSuite) TestFindAllIsCached() {
	s.drop.On("FindAll", mock.Anything, mock.Anything).Return([]drop.Drop{{Id: "drop-1"}}, nil).Once()

	for i := 0; i < 2; i++ {
		rec, resp := s.do(http.MethodGet, "/drop?status=live", "", "")
		s.Equal(http.StatusOK, rec.Code)
		s.True(resp.Success)
	}

	rec, _ := s.do(http.MethodGet, "/drop?status=unknown", "", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *handlerSuite) TestFeatured() {
	rec, _ := s.do(http.MethodGet, "/drop/featured/nobody", "", "")
	s.Equal(http.StatusBadRequest, rec.Code)

	owner := "0x00000000000000000000000000000000000000aa"
	s.drop.On("FindFeatured", mock.Anything, domain.Address(owner)).Return(nil, domain.ErrDropNotFound).Once()
	rec, _ = s.do(http.MethodGet, "/drop/featured/"+owner, "", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *handlerSuite) TestMembers() {
	expected := drop.MemberParams{DropId: "drop-1", NftId: "nft-1", Price: decimal.RequireFromString("1.5"), Supply: 2}
	s.drop.On("AddAsset", mock.Anything, expected, user).Return(&drop.Drop{Id: "drop-1"}, nil).Once()
	rec, _ := s.do(http.MethodPut, "/drop/nft", "user", `{"dropId":"drop-1","nftId":"nft-1","price":"1.5","supply":2}`)
	s.Equal(http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodPatch, "/drop/nft", "user", `{"dropId":"drop-1","nftId":"nft-1","price":"1.5","supply":0}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	s.drop.On("RemoveAsset", mock.Anything, "nft-1", user).Return(domain.ErrDropNotDraft).Once()
	rec, resp := s.do(http.MethodDelete, "/drop/nft/nft-1", "user", "")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(domain.ErrDropNotDraft.Error(), resp.Message)
}

func (s *handlerSuite) TestStatus() {
	s.drop.On("TransitionStatus", mock.Anything, "drop-1", drop.StatusPending, user).Return(&drop.Drop{Id: "drop-1", Status: drop.StatusPending}, nil).Once()
	rec, _ := s.do(http.MethodPut, "/drop/status/pending", "user", `{"dropId":"drop-1"}`)
	s.Equal(http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodPut, "/drop/status/live", "user", `{"dropId":"drop-1"}`)
	s.Equal(http.StatusForbidden, rec.Code)

	s.drop.On("AdvanceStatus", mock.Anything, "drop-1", drop.StatusLive).Return(nil, domain.ErrNotInAppropriateState).Once()
	rec, _ = s.do(http.MethodPut, "/drop/status/live", "admin", `{"dropId":"drop-1"}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	s.drop.On("AdvanceStatus", mock.Anything, "drop-1", drop.StatusClosed).Return(&drop.Drop{Id: "drop-1", Status: drop.StatusClosed}, nil).Once()
	rec, _ = s.do(http.MethodPut, "/drop/status/closed", "admin", `{"dropId":"drop-1"}`)
	s.Equal(http.StatusOK, rec.Code)

	s.drop.On("AttachTxHash", mock.Anything, "drop-1", domain.TxHash("0xabc")).Return(&drop.Drop{Id: "drop-1"}, nil).Once()
	rec, _ = s.do(http.MethodPut, "/drop/txHash", "admin", `{"dropId":"drop-1","txHash":"0xabc"}`)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *handlerSuite) TestFeatureAndDelete() {
	s.drop.On("Feature", mock.Anything, "drop-1", user).Return(nil, domain.ErrAlreadyFeatured).Once()
	rec, _ := s.do(http.MethodPatch, "/drop/feature", "user", `{"dropId":"drop-1"}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	s.drop.On("Delete", mock.Anything, "drop-1", user).Return(nil).Once()
	rec, _ = s.do(http.MethodDelete, "/drop/drop-1", "user", "")
	s.Equal(http.StatusOK, rec.Code)
}
