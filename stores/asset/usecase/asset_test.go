package usecase

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/asset"
	"github.com/x-xyz/marketcore/service/memstore"
	"github.com/x-xyz/marketcore/stores/asset/repository"
)

var (
	mockCtx = ctx.Background()
)

type assetSuite struct {
	suite.Suite

	clock *clock.Mock
	im    asset.Usecase
}

func TestAssetSuite(t *testing.T) {
	suite.Run(t, new(assetSuite))
}

func (s *assetSuite) SetupTest() {
	s.clock = clock.NewMock()
	s.clock.Set(time.Date(2022, 8, 1, 0, 0, 0, 0, time.UTC))
	s.im = New(&AssetUseCaseCfg{
		AssetRepo: repository.NewMemoryRepo(memstore.New()),
		Clock:     s.clock,
	})
}

func (s *assetSuite) TestRegister() {
	a, err := s.im.Register(mockCtx, "genesis", "0xABCD")
	s.Require().NoError(err)
	s.NotEmpty(a.Id)
	s.Equal(domain.Address("0xabcd"), a.Owner)
	s.False(a.IsOnSale)
	s.Nil(a.CurrentListingId)
	s.Equal(s.clock.Now(), a.CreatedAt)

	got, err := s.im.FindOne(mockCtx, a.Id)
	s.Require().NoError(err)
	s.Equal(*a, *got)
}

func (s *assetSuite) TestRegisterWithoutOwner() {
	_, err := s.im.Register(mockCtx, "genesis", "")
	s.ErrorIs(err, domain.ErrBadParamInput)
}

func (s *assetSuite) TestFindOneMissing() {
	_, err := s.im.FindOne(mockCtx, "missing")
	s.ErrorIs(err, domain.ErrNotFound)
	s.Equal(domain.ErrAssetNotFound, err)
}

func (s *assetSuite) TestFindAllByOwner() {
	_, err := s.im.Register(mockCtx, "a", "0xaa")
	s.Require().NoError(err)
	s.clock.Add(time.Second)
	_, err = s.im.Register(mockCtx, "b", "0xaa")
	s.Require().NoError(err)
	_, err = s.im.Register(mockCtx, "c", "0xbb")
	s.Require().NoError(err)

	res, err := s.im.FindAll(mockCtx, asset.WithOwner("0xAA"))
	s.Require().NoError(err)
	s.Require().Len(res, 2)
	s.Equal("b", res[0].Name)
	s.Equal("a", res[1].Name)
}
