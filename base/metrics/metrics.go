// Package metrics wraps datadog-go to faciliate metric recording.
// Following are naming convention of metric:
//   - Internal process time: *.time
//   - External latency: *.latency
//   - Error: *.err
//   - Warning: *.warn
package metrics

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// TagValueNA is used for tags whose values are not available.
	TagValueNA = "n/a"
)

// Ender provides interface for BumpHistogram
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// Option is functional parameter for metrics option
type Option func(*opt)

type opt struct {
	withPodName bool
	sampleRate  float64
}

// WithoutPodName drops the pod tag, use it when grouping by pod is useless
func WithoutPodName() Option {
	return func(o *opt) {
		o.withPodName = false
	}
}

// WithSampleRate sets the firing rate from 0 to 1, 1 means always send
func WithSampleRate(rate float64) Option {
	return func(o *opt) {
		o.sampleRate = rate
	}
}

// New creates a metric client with package name as prefix
func New(pkgName string, options ...Option) Service {
	o := opt{
		withPodName: true,
		sampleRate:  1.0,
	}
	for _, option := range options {
		option(&o)
	}

	ddTags := []string{
		// using host removes all tags associated with host
		// ref: https://docs.datadoghq.com/developers/dogstatsd/data_types/#host-tag-key
		"host:",
		"env:" + viper.GetString("env_name"),
		"app:" + viper.GetString("app_name"),
	}
	if o.withPodName {
		ddTags = append(ddTags, "pod:"+os.Getenv("PODNAME"))
	}

	return &Metrics{
		pkgName:    pkgName,
		sampleRate: o.sampleRate,
		datadog:    DDMetrics{ddTags: ddTags},
	}
}

// Metrics prefixes every key with the package name before sending it to datadog
type Metrics struct {
	pkgName    string
	sampleRate float64
	datadog    DDMetrics
}

func (mt *Metrics) key(key string) string {
	return mt.pkgName + `.` + key
}

// recoverPanic counts a panic raised by the statsd client instead of crashing the caller
func (mt *Metrics) recoverPanic(name, key string, tags []string) {
	if err := recover(); err != nil {
		mt.datadog.BumpSum(name+".panic", 1, 1, "tag", mt.key(key)+"#"+strings.Join(tags, "#"))
	}
}

// BumpAvg bumps the average for the given key.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	defer mt.recoverPanic("bumpavg", key, tags)
	mt.datadog.BumpAvg(mt.key(key), val, mt.sampleRate, tags...)
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	defer mt.recoverPanic("bumpsum", key, tags)
	mt.datadog.BumpSum(mt.key(key), val, mt.sampleRate, tags...)
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer mt.recoverPanic("bumphistogram", key, tags)
	mt.datadog.BumpHistogram(mt.key(key), val, mt.sampleRate, tags...)
}

// BumpTime starts a timer, call End on the returned value to record it:
//
//	defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	ddEnd := mt.datadog.BumpTime(mt.key(key), mt.sampleRate, tags...)
	return &timeTracker{
		ddEnd: ddEnd,
		panicHandler: func() {
			mt.datadog.BumpSum("bumptime.panic", 1, 1, "tag", mt.key(key)+"#"+strings.Join(tags, "#"))
		},
	}
}

type timeTracker struct {
	ddEnd        Ender
	panicHandler func()
}

func (t *timeTracker) End() {
	defer func() {
		if err := recover(); err != nil {
			t.panicHandler()
		}
	}()
	t.ddEnd.End()
}
