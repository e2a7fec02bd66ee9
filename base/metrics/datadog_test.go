package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTag(t *testing.T) {
	assert.Nil(t, parseTag(nil))
	assert.Equal(t, []string{"func:get", "cluster:main"}, parseTag([]string{"func", "get", "cluster", "main"}))
	assert.Panics(t, func() { parseTag([]string{"odd"}) })
}

func TestDDMetricsTags(t *testing.T) {
	dm := DDMetrics{ddTags: []string{"env:test"}}
	assert.Equal(t, []string{"env:test", "table:bids"}, dm.tags([]string{"table", "bids"}))
	// the shared tag slice is never appended to in place
	assert.Equal(t, []string{"env:test"}, dm.ddTags)
}

func TestBumpWithoutAgent(t *testing.T) {
	m := New("test", WithoutPodName())
	assert.NotPanics(t, func() {
		m.BumpSum("calls", 1, "func", "test")
		m.BumpAvg("ttl", 3)
		m.BumpHistogram("bytes", 10)
		m.BumpTime("time").End()
	})
}
