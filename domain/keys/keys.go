package keys

import (
	"strings"
)

const (
	// PfxHealthCheck is used for prefixing health check redis key
	PfxHealthCheck = "healthcheck"
	// PfxAssetLock is used for prefixing the per asset lock serializing bids
	PfxAssetLock = "lock:asset"
	// PfxFeaturedDrop is used for prefixing the featured drop cache of an owner
	PfxFeaturedDrop = "featuredDrop"
)

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// RedisLuaKey is used to join the redis key by componets for redis lua
// If a key created by RedisLuaKey prefix to a set of keys
// then the set of keys will be forced in the same shard for doing lua
func RedisLuaKey(components ...string) string {
	return "{" + CustomKey(":", components...) + "}"
}

// GetPrefix extracts the prefix of a key for metric tagging: the first two
// components when the key has more than two, the first one otherwise.
func GetPrefix(key string) string {
	key = strings.TrimPrefix(key, "{")
	s := strings.Split(strings.Replace(key, "}", "", 1), ":")
	if len(s) > 2 {
		return strings.Join(s[:2], ":")
	} else if len(s) > 1 {
		return s[0]
	}
	return ""
}
