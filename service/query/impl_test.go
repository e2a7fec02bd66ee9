package query

import (
	"errors"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/database/mongoclient"
	"github.com/x-xyz/marketcore/domain"
)

var (
	mockCTX = ctx.Background()
)

const (
	mockTable = domain.Table("query_test")
	dbName    = "marketcore_test"
	uriEnv    = "MARKET_TEST_MONGO_URI"
)

type dummy struct {
	Dummy  string          `bson:"dummy"`
	Update string          `bson:"updatekey"`
	Price  decimal.Decimal `bson:"price"`
	Active bool            `bson:"active"`
}

// querySuite needs a replica set for transactions, e.g.
// MARKET_TEST_MONGO_URI=mongodb://localhost:27017/?replicaSet=rs0
type querySuite struct {
	suite.Suite
	im *impl
}

func TestQuerySuite(t *testing.T) {
	if os.Getenv(uriEnv) == "" {
		t.Skip(uriEnv + " is not set")
	}
	suite.Run(t, new(querySuite))
}

func (q *querySuite) SetupSuite() {
	q.im = New(mongoclient.MustConnectMongoClient(mongoclient.Config{
		URI:        os.Getenv(uriEnv),
		AuthDBName: "admin",
		DBName:     dbName,
	}), false).(*impl)
}

func (q *querySuite) SetupTest() {
	q.Require().NoError(q.im.coll(mockTable).Drop(mockCTX))
}

func (q *querySuite) TestInsertAndFindOne() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "a", Update: "b", Price: decimal.RequireFromString("1.5")}))

	v := dummy{}
	q.Require().NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "a"}, &v))
	q.Equal("b", v.Update)
	q.True(decimal.RequireFromString("1.5").Equal(v.Price))

	q.Equal(ErrNotFound, q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "c"}, &v))
}

func (q *querySuite) TestInsertShouldFailWithDuplicateKey() {
	q.Require().NoError(q.im.CreateIndexes(mockCTX, mockTable, []mongo.IndexModel{
		{Keys: bson.D{{Key: "dummy", Value: 1}}, Options: options.Index().SetUnique(true)},
	}))
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "a"}))
	q.Equal(ErrDuplicateKey, q.im.Insert(mockCTX, mockTable, dummy{Dummy: "a"}))
}

func (q *querySuite) TestPartialUniqueIndex() {
	q.Require().NoError(q.im.CreateIndexes(mockCTX, mockTable, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "dummy", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(bson.M{"active": true}),
		},
	}))
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "a", Active: false}))
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "a", Active: true}))
	q.Equal(ErrDuplicateKey, q.im.Insert(mockCTX, mockTable, dummy{Dummy: "a", Active: true}))
}

func (q *querySuite) TestCountAndSearch() {
	for _, k := range []string{"c", "a", "b"} {
		q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: k, Update: "x"}))
	}
	n, err := q.im.Count(mockCTX, mockTable, bson.M{"updatekey": "x"})
	q.Require().NoError(err)
	q.Equal(3, n)

	res := []dummy{}
	q.Require().NoError(q.im.Search(mockCTX, mockTable, 0, 2, "-dummy", bson.M{"updatekey": "x"}, &res))
	q.Require().Len(res, 2)
	q.Equal("c", res[0].Dummy)
	q.Equal("b", res[1].Dummy)

	res = []dummy{}
	q.Require().NoError(q.im.SearchNSorts(mockCTX, mockTable, 1, 10, []string{"updatekey", "dummy"}, bson.M{}, &res))
	q.Require().Len(res, 2)
	q.Equal("b", res[0].Dummy)

	one := dummy{}
	q.Require().NoError(q.im.FindOneSorted(mockCTX, mockTable, []string{"-dummy"}, bson.M{}, &one))
	q.Equal("c", one.Dummy)
}

func (q *querySuite) TestPatchIsConditional() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "a", Active: true}))

	sel := bson.M{"dummy": "a", "active": true}
	q.Require().NoError(q.im.Patch(mockCTX, mockTable, sel, bson.M{"active": false}))
	q.Equal(ErrNotFound, q.im.Patch(mockCTX, mockTable, sel, bson.M{"active": false}))

	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "b"}))
	n, err := q.im.PatchMany(mockCTX, mockTable, bson.M{"active": false}, bson.M{"updatekey": "z"})
	q.Require().NoError(err)
	q.Equal(int64(2), n)
}

func (q *querySuite) TestCustomPatch() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "a"}))
	q.Require().NoError(q.im.CustomPatch(mockCTX, mockTable, bson.M{"dummy": "a"}, bson.M{"$set": bson.M{"updatekey": "u"}}, false))
	q.Equal(ErrNotFound, q.im.CustomPatch(mockCTX, mockTable, bson.M{"dummy": "z"}, bson.M{"$set": bson.M{"updatekey": "u"}}, false))
	q.NoError(q.im.CustomPatch(mockCTX, mockTable, bson.M{"dummy": "z"}, bson.M{"$set": bson.M{"updatekey": "u"}}, true))

	n, err := q.im.Count(mockCTX, mockTable, bson.M{"updatekey": "u"})
	q.Require().NoError(err)
	q.Equal(2, n)
}

func (q *querySuite) TestRemove() {
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "a"}))
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "b", Update: "x"}))
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "c", Update: "x"}))

	q.NoError(q.im.Remove(mockCTX, mockTable, bson.M{"dummy": "a"}))
	q.Equal(ErrNotFound, q.im.Remove(mockCTX, mockTable, bson.M{"dummy": "a"}))

	n, err := q.im.RemoveAll(mockCTX, mockTable, bson.M{"updatekey": "x"})
	q.Require().NoError(err)
	q.Equal(int64(2), n)
}

func (q *querySuite) TestRunWithTransaction() {
	// collections can not be created inside a transaction on older servers
	q.Require().NoError(q.im.Insert(mockCTX, mockTable, dummy{Dummy: "seed"}))

	errRollback := errors.New("rollback")
	err := q.im.RunWithTransaction(mockCTX, func(c ctx.Ctx) error {
		q.Require().NoError(q.im.Insert(c, mockTable, dummy{Dummy: "1"}))
		q.Require().NoError(q.im.Insert(c, mockTable, dummy{Dummy: "2"}))
		return errRollback
	})
	q.Require().Equal(errRollback, err)

	v := dummy{}
	q.Equal(ErrNotFound, q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "1"}, &v))
	q.Equal(ErrNotFound, q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "2"}, &v))

	q.Require().NoError(q.im.RunWithTransaction(mockCTX, func(c ctx.Ctx) error {
		if err := q.im.Insert(c, mockTable, dummy{Dummy: "1"}); err != nil {
			return err
		}
		return q.im.Insert(c, mockTable, dummy{Dummy: "2"})
	}))
	q.NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "1"}, &v))
	q.NoError(q.im.FindOne(mockCTX, mockTable, bson.M{"dummy": "2"}, &v))
}

func (q *querySuite) TestPing() {
	q.NoError(q.im.Ping(mockCTX))
}
