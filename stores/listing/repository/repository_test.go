package repository

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/database/mongoclient"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/listing"
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
	newRepo func() listing.Repo
	repo    listing.Repo
}

func TestMemoryRepo(t *testing.T) {
	suite.Run(t, &repoSuite{newRepo: func() listing.Repo {
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
	suite.Run(t, &repoSuite{newRepo: func() listing.Repo {
		if _, err := q.RemoveAll(mockCtx, domain.TableListings, bson.M{}); err != nil {
			t.Fatal(err)
		}
		if err := EnsureIndexes(mockCtx, q); err != nil {
			t.Fatal(err)
		}
		return NewListingRepo(q)
	}})
}

func (s *repoSuite) SetupTest() {
	s.repo = s.newRepo()
}

func (s *repoSuite) create(nftId string, createdAt time.Time) (*listing.Listing, error) {
	l := &listing.Listing{
		NftId:     nftId,
		Seller:    alice,
		SaleType:  listing.SaleTypeFixedPrice,
		Price:     decimal.RequireFromString("1.25"),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	return l, s.repo.Create(mockCtx, l)
}

func (s *repoSuite) TestOneActivePerNft() {
	l1, err := s.create("nft", now)
	s.Require().NoError(err)
	_, err = s.create("nft", now.Add(time.Second))
	s.Equal(domain.ErrConflict, err)

	_, err = s.create("other", now)
	s.NoError(err)

	s.Require().NoError(s.repo.Cancel(mockCtx, l1.Id, now))
	l2, err := s.create("nft", now.Add(time.Minute))
	s.Require().NoError(err)

	active, err := s.repo.FindActiveByNft(mockCtx, "nft")
	s.Require().NoError(err)
	s.Equal(l2.Id, active.Id)
	s.True(decimal.RequireFromString("1.25").Equal(active.Price))
}

func (s *repoSuite) TestConcurrentCreateHasOneWinner() {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.create("nft", now); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	s.Equal(1, wins)
}

func (s *repoSuite) TestMarkSoldOnce() {
	l, err := s.create("nft", now)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.MarkSold(mockCtx, l.Id, bob, now))
	s.Equal(domain.ErrConflict, s.repo.MarkSold(mockCtx, l.Id, bob, now))
	s.Equal(domain.ErrConflict, s.repo.Cancel(mockCtx, l.Id, now))

	res, err := s.repo.FindOne(mockCtx, l.Id)
	s.Require().NoError(err)
	s.True(res.IsSold)
	s.Equal(bob, *res.Buyer)
	s.False(res.IsActive())

	_, err = s.repo.FindActiveByNft(mockCtx, "nft")
	s.Equal(domain.ErrNotFound, err)
}

func (s *repoSuite) TestFindLatestAndAll() {
	l1, err := s.create("nft", now)
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Cancel(mockCtx, l1.Id, now))
	l2, err := s.create("nft", now.Add(time.Minute))
	s.Require().NoError(err)

	latest, err := s.repo.FindLatestByNft(mockCtx, "nft")
	s.Require().NoError(err)
	s.Equal(l2.Id, latest.Id)

	_, err = s.repo.FindLatestByNft(mockCtx, "missing")
	s.Equal(domain.ErrNotFound, err)

	res, err := s.repo.FindAll(mockCtx, listing.WithNftId("nft"))
	s.Require().NoError(err)
	s.Require().Len(res, 2)
	s.Equal(l2.Id, res[0].Id)

	res, err = s.repo.FindAll(mockCtx, listing.WithNftId("nft"), listing.WithActive(false))
	s.Require().NoError(err)
	s.Require().Len(res, 1)
	s.Equal(l1.Id, res[0].Id)
}
