package compound

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/service/cache/provider"
	"github.com/x-xyz/marketcore/service/cache/provider/primitive"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	lyr0 provider.Provider
	lyr1 provider.Provider
	im   *impl
}

func (ts *testsuite) SetupTest() {
	ts.lyr0 = primitive.NewPrimitive("layer 0", 1)
	ts.lyr1 = primitive.NewPrimitive("layer 1", 1)
	ts.im = NewCompound([]provider.Provider{ts.lyr0, ts.lyr1}).(*impl)
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSet() {
	k := "key"
	v := []byte("value")

	ts.NoError(ts.im.Set(mockCtx, k, v, time.Second))
	r0, _, e := ts.lyr0.Get(mockCtx, k)
	ts.NoError(e)
	ts.Equal(v, r0)
	r1, _, e := ts.lyr1.Get(mockCtx, k)
	ts.NoError(e)
	ts.Equal(v, r1)

	time.Sleep(2 * time.Second)
	_, _, e = ts.lyr0.Get(mockCtx, k)
	ts.Equal(provider.ErrNotFound, e)
	_, _, e = ts.lyr1.Get(mockCtx, k)
	ts.Equal(provider.ErrNotFound, e)
}

func (ts *testsuite) TestGet() {
	cases := []struct {
		Desc  string
		Key   string
		Val   string
		Err   error
		Cache provider.Provider
	}{
		{
			Desc:  "Success from layer 0",
			Key:   "key 0",
			Val:   "value 0",
			Cache: ts.lyr0,
		},
		{
			Desc:  "Success from layer 1",
			Key:   "key 1",
			Val:   "value 1",
			Cache: ts.lyr1,
		},
		{
			Desc: "Not found",
			Key:  "key 2",
			Err:  provider.ErrNotFound,
		},
	}

	for _, c := range cases {
		if c.Cache != nil {
			ts.NoError(c.Cache.Set(mockCtx, c.Key, []byte(c.Val), 10*time.Second), c.Desc)
		}

		v, _, e := ts.im.Get(mockCtx, c.Key)
		ts.Equal(c.Val, string(v), c.Desc)
		ts.Equal(c.Err, e, c.Desc)
	}

	// hit on layer 1 fills layer 0
	v, _, e := ts.lyr0.Get(mockCtx, "key 1")
	ts.NoError(e)
	ts.Equal("value 1", string(v))
}

func (ts *testsuite) TestDel() {
	ts.NoError(ts.im.Set(mockCtx, "key", []byte("v"), time.Minute))
	ts.NoError(ts.im.Del(mockCtx, "key"))
	_, _, e := ts.lyr0.Get(mockCtx, "key")
	ts.Equal(provider.ErrNotFound, e)
	_, _, e = ts.lyr1.Get(mockCtx, "key")
	ts.Equal(provider.ErrNotFound, e)
}
