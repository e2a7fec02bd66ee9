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
	"github.com/x-xyz/marketcore/domain/drop"
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
	newRepo func() drop.Repo
	repo    drop.Repo
}

func TestMemoryRepo(t *testing.T) {
	suite.Run(t, &repoSuite{newRepo: func() drop.Repo {
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
	suite.Run(t, &repoSuite{newRepo: func() drop.Repo {
		if _, err := q.RemoveAll(mockCtx, domain.TableDrops, bson.M{}); err != nil {
			t.Fatal(err)
		}
		if err := EnsureIndexes(mockCtx, q); err != nil {
			t.Fatal(err)
		}
		return NewDropRepo(q)
	}})
}

func (s *repoSuite) SetupTest() {
	s.repo = s.newRepo()
}

func (s *repoSuite) create(owner domain.Address, updatedAt time.Time) *drop.Drop {
	d := &drop.Drop{
		Owner:     owner,
		Title:     "drop",
		SaleType:  listing.SaleTypeFixedPrice,
		DropType:  drop.DropTypeNormal,
		Status:    drop.StatusDraft,
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(2 * time.Hour),
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
	s.Require().NoError(s.repo.Create(mockCtx, d))
	return d
}

func member(nftId, price string, supply int) drop.Member {
	return drop.Member{NftId: nftId, Price: decimal.RequireFromString(price), Supply: supply, AddedAt: now}
}

func (s *repoSuite) TestMembers() {
	d := s.create(alice, now)

	s.Require().NoError(s.repo.AddMember(mockCtx, d.Id, member("n1", "1", 1), now))
	s.Require().NoError(s.repo.AddMember(mockCtx, d.Id, member("n2", "2", 5), now))
	s.Equal(domain.ErrConflict, s.repo.AddMember(mockCtx, d.Id, member("n1", "3", 1), now))

	s.Require().NoError(s.repo.UpdateMember(mockCtx, d.Id, member("n2", "2.5", 7), now))
	s.Equal(domain.ErrConflict, s.repo.UpdateMember(mockCtx, d.Id, member("n3", "1", 1), now))

	s.Require().NoError(s.repo.RemoveMember(mockCtx, d.Id, "n1", now))
	s.Equal(domain.ErrConflict, s.repo.RemoveMember(mockCtx, d.Id, "n1", now))

	res, err := s.repo.FindOne(mockCtx, d.Id)
	s.Require().NoError(err)
	s.Require().Len(res.Members, 1)
	s.Equal("n2", res.Members[0].NftId)
	s.Equal(7, res.Members[0].Supply)
	s.True(decimal.RequireFromString("2.5").Equal(res.Members[0].Price))
}

func (s *repoSuite) TestMembersLockedAfterDraft() {
	d := s.create(alice, now)
	s.Require().NoError(s.repo.AddMember(mockCtx, d.Id, member("n1", "1", 1), now))
	s.Require().NoError(s.repo.SetStatus(mockCtx, d.Id, drop.StatusDraft, drop.StatusPending, now))

	s.Equal(domain.ErrConflict, s.repo.AddMember(mockCtx, d.Id, member("n2", "1", 1), now))
	s.Equal(domain.ErrConflict, s.repo.UpdateMember(mockCtx, d.Id, member("n1", "2", 1), now))
	s.Equal(domain.ErrConflict, s.repo.RemoveMember(mockCtx, d.Id, "n1", now))
	s.Equal(domain.ErrConflict, s.repo.Remove(mockCtx, d.Id))
}

func (s *repoSuite) TestStatusAndTxHash() {
	d := s.create(alice, now)

	s.Equal(domain.ErrConflict, s.repo.SetTxHash(mockCtx, d.Id, "0x1", now))
	s.Equal(domain.ErrConflict, s.repo.SetStatus(mockCtx, d.Id, drop.StatusPending, drop.StatusLive, now))
	s.Require().NoError(s.repo.SetStatus(mockCtx, d.Id, drop.StatusDraft, drop.StatusPending, now))
	s.Equal(domain.ErrConflict, s.repo.SetStatus(mockCtx, d.Id, drop.StatusDraft, drop.StatusPending, now))

	s.Require().NoError(s.repo.SetTxHash(mockCtx, d.Id, "0x1", now))
	s.Require().NoError(s.repo.SetTxHash(mockCtx, d.Id, "0x2", now))

	res, err := s.repo.FindOne(mockCtx, d.Id)
	s.Require().NoError(err)
	s.Equal(drop.StatusPending, res.Status)
	s.Equal(domain.TxHash("0x2"), res.TxHash)
}

func (s *repoSuite) TestFeatured() {
	d1 := s.create(alice, now)
	d2 := s.create(alice, now.Add(time.Minute))
	s.create(bob, now)

	s.Require().NoError(s.repo.SetFeatured(mockCtx, d1.Id, now.Add(2*time.Minute)))
	s.Equal(domain.ErrConflict, s.repo.SetFeatured(mockCtx, d1.Id, now))
	s.Require().NoError(s.repo.SetFeatured(mockCtx, d2.Id, now.Add(3*time.Minute)))

	res, err := s.repo.FindAll(mockCtx, drop.WithOwner(alice), drop.WithFeatured(true), drop.WithPagination(0, 1))
	s.Require().NoError(err)
	s.Require().Len(res, 1)
	s.Equal(d2.Id, res[0].Id)

	res, err = s.repo.FindAll(mockCtx, drop.WithStatus(drop.StatusDraft))
	s.Require().NoError(err)
	s.Len(res, 3)
}

func (s *repoSuite) TestRemove() {
	d := s.create(alice, now)
	s.Require().NoError(s.repo.Remove(mockCtx, d.Id))
	_, err := s.repo.FindOne(mockCtx, d.Id)
	s.Equal(domain.ErrNotFound, err)
}
