package repository

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/database/mongoclient"
	"github.com/x-xyz/marketcore/domain"
	"github.com/x-xyz/marketcore/domain/auction"
	"github.com/x-xyz/marketcore/service/memstore"
	"github.com/x-xyz/marketcore/service/query"
)

var (
	mockCtx = ctx.Background()
	now     = time.Date(2022, 8, 1, 0, 0, 0, 0, time.UTC)
	bob     = domain.Address("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	carol   = domain.Address("0xcccccccccccccccccccccccccccccccccccccccc")
)

type repoSuite struct {
	suite.Suite
	newRepo func() auction.BidRepo
	repo    auction.BidRepo
}

func TestMemoryRepo(t *testing.T) {
	suite.Run(t, &repoSuite{newRepo: func() auction.BidRepo {
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
	suite.Run(t, &repoSuite{newRepo: func() auction.BidRepo {
		if _, err := q.RemoveAll(mockCtx, domain.TableBids, bson.M{}); err != nil {
			t.Fatal(err)
		}
		if err := EnsureIndexes(mockCtx, q); err != nil {
			t.Fatal(err)
		}
		return NewBidRepo(q)
	}})
}

func (s *repoSuite) SetupTest() {
	s.repo = s.newRepo()
}

func (s *repoSuite) bid(bidder domain.Address, amount string, at time.Time) *auction.Bid {
	b := &auction.Bid{
		NftId:         "nft",
		ListingId:     "l1",
		Bidder:        bidder,
		BidderAddress: bidder,
		BidAmount:     decimal.RequireFromString(amount),
		ExpiryTime:    at.Add(time.Hour),
		Status:        auction.BidStatusActive,
		CreatedAt:     at,
	}
	s.Require().NoError(s.repo.Create(mockCtx, b))
	return b
}

func (s *repoSuite) TestFindHighest() {
	_, err := s.repo.FindHighest(mockCtx, "l1")
	s.Equal(domain.ErrNotFound, err)

	s.bid(bob, "9.5", now)
	b2 := s.bid(carol, "10", now.Add(time.Second))
	b3 := s.bid(bob, "100", now.Add(2*time.Second))

	h, err := s.repo.FindHighest(mockCtx, "l1")
	s.Require().NoError(err)
	s.Equal(b3.Id, h.Id)

	s.Require().NoError(s.repo.Settle(mockCtx, b3.Id, auction.BidStatusFinalized, "0xhash", now))
	h, err = s.repo.FindHighest(mockCtx, "l1")
	s.Require().NoError(err)
	s.Equal(b2.Id, h.Id)
}

func (s *repoSuite) TestSettleOnce() {
	b := s.bid(bob, "1", now)

	s.Require().NoError(s.repo.Settle(mockCtx, b.Id, auction.BidStatusFinalized, "0xhash", now))
	s.Equal(domain.ErrConflict, s.repo.Settle(mockCtx, b.Id, auction.BidStatusAccepted, "", now))

	res, err := s.repo.FindOne(mockCtx, b.Id)
	s.Require().NoError(err)
	s.Equal(auction.BidStatusFinalized, res.Status)
	s.Equal(domain.TxHash("0xhash"), res.TxHash)
	s.NotNil(res.SettledAt)
}

func (s *repoSuite) TestExpireOthers() {
	b1 := s.bid(bob, "1", now)
	b2 := s.bid(carol, "2", now.Add(time.Second))
	b3 := s.bid(bob, "3", now.Add(2*time.Second))
	s.Require().NoError(s.repo.Settle(mockCtx, b1.Id, auction.BidStatusFinalized, "", now))

	n, err := s.repo.ExpireOthers(mockCtx, "l1", b3.Id, now)
	s.Require().NoError(err)
	s.Equal(1, n)

	res, err := s.repo.FindOne(mockCtx, b2.Id)
	s.Require().NoError(err)
	s.Equal(auction.BidStatusExpired, res.Status)

	bids, err := s.repo.FindAll(mockCtx, auction.BidWithNftId("nft"))
	s.Require().NoError(err)
	s.Require().Len(bids, 3)
	s.Equal(b3.Id, bids[0].Id)
	s.Equal(auction.BidStatusActive, bids[0].Status)

	bids, err = s.repo.FindAll(mockCtx, auction.BidWithBidder(bob))
	s.Require().NoError(err)
	s.Len(bids, 2)
}
