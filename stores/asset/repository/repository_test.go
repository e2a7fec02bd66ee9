package repository

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/database/mongoclient"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/asset"
	"github.com/x-xyz/marketcore/service/memstore"
	"github.com/x-xyz/marketcore/service/query"
)

var (
	mockCtx = ctx.Background()
	now     = time.Date(2022, 8, 1, 0, 0, 0, 0, time.UTC)
	alice   = domain.Address("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	bob     = domain.Address("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
)

type repoSuite struct {
	suite.Suite
	newRepo func() asset.Repo
	repo    asset.Repo
}

func TestMemoryRepo(t *testing.T) {
	suite.Run(t, &repoSuite{newRepo: func() asset.Repo {
		return NewMemoryRepo(memstore.New())
	}})
}

func TestMongoRepo(t *testing.T) {
	uri := os.Getenv("MARKET_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MARKET_TEST_MONGO_URI is not set")
	}
	q := query.New(mongoclient.MustConnectMongoClient(mongoclient.Config{
		URI:        uri,
		AuthDBName: "admin",
		DBName:     "marketcore_test",
	}), false)
	suite.Run(t, &repoSuite{newRepo: func() asset.Repo {
		if _, err := q.RemoveAll(mockCtx, domain.TableAssets, bson.M{}); err != nil {
			t.Fatal(err)
		}
		if err := EnsureIndexes(mockCtx, q); err != nil {
			t.Fatal(err)
		}
		return NewAssetRepo(q)
	}})
}

func (s *repoSuite) SetupTest() {
	s.repo = s.newRepo()
}

func (s *repoSuite) create(owner domain.Address, createdAt time.Time) *asset.Asset {
	a := &asset.Asset{Name: "nft", Owner: owner, CreatedAt: createdAt, UpdatedAt: createdAt}
	s.Require().NoError(s.repo.Create(mockCtx, a))
	s.Require().NotEmpty(a.Id)
	return a
}

func (s *repoSuite) TestFindOne() {
	a := s.create(alice, now)

	res, err := s.repo.FindOne(mockCtx, a.Id)
	s.Require().NoError(err)
	s.Equal(alice, res.Owner)
	s.False(res.IsOnSale)

	_, err = s.repo.FindOne(mockCtx, "missing")
	s.Equal(domain.ErrNotFound, err)
}

func (s *repoSuite) TestFindAll() {
	a1 := s.create(alice, now)
	a2 := s.create(alice, now.Add(time.Minute))
	s.create(bob, now.Add(2*time.Minute))
	s.Require().NoError(s.repo.AttachDrop(mockCtx, a1.Id, alice, "drop-1", now))

	res, err := s.repo.FindAll(mockCtx, asset.WithOwner(alice))
	s.Require().NoError(err)
	s.Require().Len(res, 2)
	s.Equal(a2.Id, res[0].Id)
	s.Equal(a1.Id, res[1].Id)

	res, err = s.repo.FindAll(mockCtx, asset.WithDropId("drop-1"))
	s.Require().NoError(err)
	s.Require().Len(res, 1)
	s.Equal(a1.Id, res[0].Id)

	res, err = s.repo.FindAll(mockCtx, asset.WithPagination(1, 1))
	s.Require().NoError(err)
	s.Require().Len(res, 1)
	s.Equal(a2.Id, res[0].Id)
}

func (s *repoSuite) TestSaleSlot() {
	a := s.create(alice, now)

	s.Equal(domain.ErrConflict, s.repo.MarkOnSale(mockCtx, a.Id, bob, "l1", now))
	s.Require().NoError(s.repo.MarkOnSale(mockCtx, a.Id, alice, "l1", now))
	s.Equal(domain.ErrConflict, s.repo.MarkOnSale(mockCtx, a.Id, alice, "l2", now))

	res, err := s.repo.FindOne(mockCtx, a.Id)
	s.Require().NoError(err)
	s.True(res.IsOnSale)
	s.Equal("l1", *res.CurrentListingId)

	s.Equal(domain.ErrConflict, s.repo.ClearSale(mockCtx, a.Id, "l2", now))
	s.Require().NoError(s.repo.ClearSale(mockCtx, a.Id, "l1", now))
	s.Equal(domain.ErrConflict, s.repo.ClearSale(mockCtx, a.Id, "l1", now))
}

func (s *repoSuite) TestTransferOwnership() {
	a := s.create(alice, now)
	s.Require().NoError(s.repo.MarkOnSale(mockCtx, a.Id, alice, "l1", now))

	s.Require().NoError(s.repo.TransferOwnership(mockCtx, a.Id, "l1", bob, now))
	s.Equal(domain.ErrConflict, s.repo.TransferOwnership(mockCtx, a.Id, "l1", alice, now))

	res, err := s.repo.FindOne(mockCtx, a.Id)
	s.Require().NoError(err)
	s.Equal(bob, res.Owner)
	s.False(res.IsOnSale)
	s.Nil(res.CurrentListingId)
}

func (s *repoSuite) TestDropLink() {
	a := s.create(alice, now)
	b := s.create(alice, now)

	s.Equal(domain.ErrConflict, s.repo.AttachDrop(mockCtx, a.Id, bob, "d1", now))
	s.Require().NoError(s.repo.AttachDrop(mockCtx, a.Id, alice, "d1", now))
	s.Equal(domain.ErrConflict, s.repo.AttachDrop(mockCtx, a.Id, alice, "d2", now))
	s.Require().NoError(s.repo.AttachDrop(mockCtx, b.Id, alice, "d1", now))

	s.Equal(domain.ErrConflict, s.repo.DetachDrop(mockCtx, a.Id, "d2", now))
	s.Require().NoError(s.repo.DetachDrop(mockCtx, a.Id, "d1", now))

	n, err := s.repo.DetachAllFromDrop(mockCtx, "d1", now)
	s.Require().NoError(err)
	s.Equal(1, n)

	res, err := s.repo.FindOne(mockCtx, b.Id)
	s.Require().NoError(err)
	s.Nil(res.DropId)
}
