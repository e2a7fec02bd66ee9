package delivery

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketcore/domain"
)

type testsuite struct {
	suite.Suite
	e *echo.Echo
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) SetupTest() {
	ts.e = echo.New()
}

func (ts *testsuite) do(status int, data interface{}) (*httptest.ResponseRecorder, JsonResponse) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := ts.e.NewContext(req, rec)
	ts.Require().NoError(MakeJsonResp(c, status, data))

	resp := JsonResponse{}
	ts.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func (ts *testsuite) TestSuccess() {
	rec, resp := ts.do(http.StatusCreated, map[string]string{"id": "listing-1"})
	ts.Equal(http.StatusCreated, rec.Code)
	ts.True(resp.Success)
	ts.Equal("success", resp.Message)
	ts.Equal(map[string]interface{}{"id": "listing-1"}, resp.Data)
}

func (ts *testsuite) TestDomainErrors() {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{domain.ErrAssetNotFound, http.StatusNotFound, "NFT not found"},
		{domain.ErrNotOwner, http.StatusBadRequest, "Only Owner can put NFT on sale."},
		{domain.ErrAlreadyListed, http.StatusBadRequest, "This NFT is already on sale."},
		{domain.ErrWrongSaleType, http.StatusBadRequest, "Nft is not on fixed price sale."},
		{domain.ErrSelfPurchase, http.StatusBadRequest, "Owner can not buy his own NFT."},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{errors.New("connection reset"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, c := range cases {
		rec, resp := ts.do(http.StatusInternalServerError, c.err)
		ts.Equal(c.status, rec.Code, c.msg)
		ts.False(resp.Success, c.msg)
		ts.Equal(c.msg, resp.Message)
	}
}

func (ts *testsuite) TestFailMessage() {
	rec, resp := ts.do(http.StatusForbidden, "require admin privilege")
	ts.Equal(http.StatusForbidden, rec.Code)
	ts.False(resp.Success)
	ts.Equal("require admin privilege", resp.Message)
}
