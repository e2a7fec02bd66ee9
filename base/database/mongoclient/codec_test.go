package mongoclient

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

type priced struct {
	Price decimal.Decimal `bson:"price"`
}

func TestDecimalStoredAsDecimal128(t *testing.T) {
	reg := NewRegistry()

	raw, err := bson.MarshalWithRegistry(reg, priced{Price: decimal.RequireFromString("1234.5678")})
	require.NoError(t, err)
	assert.Equal(t, bsontype.Decimal128, bson.Raw(raw).Lookup("price").Type)

	res := priced{}
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &res))
	assert.True(t, decimal.RequireFromString("1234.5678").Equal(res.Price))
}

func TestDecimalDecodesLegacyNumbers(t *testing.T) {
	reg := NewRegistry()
	cases := []struct {
		doc  bson.M
		want string
	}{
		{bson.M{"price": "0.25"}, "0.25"},
		{bson.M{"price": int32(50)}, "50"},
		{bson.M{"price": int64(70)}, "70"},
		{bson.M{"price": 1.5}, "1.5"},
		{bson.M{"price": nil}, "0"},
	}
	for _, c := range cases {
		raw, err := bson.Marshal(c.doc)
		require.NoError(t, err)
		res := priced{}
		require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &res))
		assert.True(t, decimal.RequireFromString(c.want).Equal(res.Price), c.want)
	}
}
