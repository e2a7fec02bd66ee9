package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/x-xyz/marketcore/base/log"
)

const (
	ddClientsSize    = 16 // needs to be 2^n
	ddClientsIdxMask = ddClientsSize - 1

	// buffer 10 counters before sending to statsd
	bufferMetrics = 10
)

var (
	initOnce = sync.Once{}

	// DdPort is the statsd port of the datadog agent
	DdPort = 8125

	// ddClientsIdx is used for accessing ddClients by round robin scheduling
	ddClientsIdx = int32(0)
	ddClients    []statsCli
)

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// initDDClient connects to the agent at `datadog_host`. Without a host every
// metric is written to the debug log instead.
func initDDClient() {
	ddClients = make([]statsCli, ddClientsSize)
	host := viper.GetString("datadog_host")
	if host == "" {
		log.Log().Info("datadog_host is empty, metrics go to log")
		for i := 0; i < ddClientsSize; i++ {
			ddClients[i] = &LogClient{}
		}
		return
	}

	addr := fmt.Sprintf("%s:%d", host, DdPort)
	for i := 0; i < ddClientsSize; i++ {
		cli, err := statsd.NewBuffered(addr, bufferMetrics)
		if err != nil {
			log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
		}
		ddClients[i] = cli
	}
	log.Log().WithFields(log.Fields{"addr": addr, "clients": ddClientsSize}).Info("connected to datadog agent")
}

func nextClient() statsCli {
	initOnce.Do(initDDClient)
	i := atomic.AddInt32(&ddClientsIdx, 1) & ddClientsIdxMask
	return ddClients[i]
}

// DDMetrics sends metrics to statsd with a fixed set of tags
type DDMetrics struct {
	ddTags []string
}

func (dm *DDMetrics) tags(tags []string) []string {
	res := make([]string, 0, len(dm.ddTags)+len(tags)/2)
	res = append(res, dm.ddTags...)
	return append(res, parseTag(tags)...)
}

// BumpAvg bumps the average for the given key.
// datadog has no average type, a gauge is the closest match.
func (dm *DDMetrics) BumpAvg(key string, val, sampleRate float64, tags ...string) {
	if err := nextClient().Gauge(key, val, dm.tags(tags), sampleRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": "BumpAvg"}).Error("Bump fail")
	}
}

// BumpSum bumps the sum for the given key.
func (dm *DDMetrics) BumpSum(key string, val, sampleRate float64, tags ...string) {
	if err := nextClient().Count(key, int64(val), dm.tags(tags), sampleRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": "BumpSum"}).Error("Bump fail")
	}
}

// BumpHistogram bumps the histogram for the given key.
func (dm *DDMetrics) BumpHistogram(key string, val, sampleRate float64, tags ...string) {
	if err := nextClient().Histogram(key, val, dm.tags(tags), sampleRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": "BumpHistogram"}).Error("Bump fail")
	}
}

func (dm *DDMetrics) BumpTime(key string, sampleRate float64, tags ...string) Ender {
	return &ddTimeTracker{
		start:      time.Now(),
		key:        key,
		tags:       dm.tags(tags),
		sampleRate: sampleRate,
	}
}

// parseTag turns k1, v1, k2, v2 into k1:v1, k2:v2
func parseTag(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}

type ddTimeTracker struct {
	start      time.Time
	key        string
	tags       []string
	sampleRate float64
}

func (dt *ddTimeTracker) End() {
	dur := float64(time.Since(dt.start)) / float64(time.Millisecond)
	if err := nextClient().TimeInMilliseconds(dt.key, dur, dt.tags, dt.sampleRate); err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": dt.key, "val": dur, "func": "BumpTime"}).Error("Bump fail")
	}
}
