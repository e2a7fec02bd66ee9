package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "lock:asset:nft-1", RedisKey(PfxAssetLock, "nft-1"))
	assert.Equal(t, "{lock:asset}:nft-1", RedisLuaKey(PfxAssetLock)+":nft-1")
}

func TestGetPrefix(t *testing.T) {
	cases := []struct {
		key    string
		prefix string
	}{
		{"healthcheck:testset", "healthcheck"},
		{"lock:asset:nft-1", "lock:asset"},
		{"{lock:asset}:nft-1", "lock:asset"},
		{"featuredDrop:0xabc:v1:x", "featuredDrop:0xabc"},
		{"plain", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.prefix, GetPrefix(c.key), c.key)
	}
}
