package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketcore/base/delivery"
	hcdomain "github.com/x-xyz/marketcore/domain/healthcheck"
	"github.com/x-xyz/marketcore/domain/healthcheck/mocks"
	"github.com/x-xyz/marketcore/middleware"
)

type handlerSuite struct {
	suite.Suite

	e  *echo.Echo
	hc *mocks.HealthCheckUsecase
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(handlerSuite))
}

func (s *handlerSuite) SetupTest() {
	s.hc = mocks.NewHealthCheckUsecase(s.T())
	s.e = echo.New()
	s.e.Use(middleware.InitMiddleware().AddContext())
	New(s.e, s.hc)
}

func (s *handlerSuite) get() (*httptest.ResponseRecorder, delivery.JsonResponse) {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	resp := delivery.JsonResponse{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func (s *handlerSuite) TestHealthy() {
	s.hc.On("Check", mock.Anything).Return(hcdomain.Report{"mongo": "ok"}, nil).Once()

	rec, resp := s.get()
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(map[string]interface{}{"mongo": "ok"}, resp.Data)
}

func (s *handlerSuite) TestUnhealthy() {
	s.hc.On("Check", mock.Anything).Return(hcdomain.Report{"mongo": "ok", "redis": "dial tcp: refused"}, errors.New("Internal Server Error")).Once()

	rec, resp := s.get()
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.False(resp.Success)
	s.Equal("dial tcp: refused", resp.Data.(map[string]interface{})["redis"])
}
