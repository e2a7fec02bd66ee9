package notifier

import (
	"context"
	"time"

	"github.com/viney-shih/goroutines"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/log"
	"github.com/x-xyz/marketcore/base/metrics"
	"github.com/x-xyz/marketcore/domain/notification"
)

const (
	defaultWorkers     = 8
	defaultSendTimeout = 10 * time.Second
	scheduleTimeout    = time.Second
)

type Config struct {
	Sinks       []notification.Sink
	Workers     int
	SendTimeout time.Duration
	Metrics     metrics.Service
}

// Dispatcher fans events out to every sink on a worker pool. Delivery
// failures are logged and counted, they never reach the caller of Notify.
type Dispatcher struct {
	sinks       []notification.Sink
	sendTimeout time.Duration
	met         metrics.Service
	pool        *goroutines.Pool
}

func New(cfg Config) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = defaultSendTimeout
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New("notifier")
	}
	return &Dispatcher{
		sinks:       cfg.Sinks,
		sendTimeout: cfg.SendTimeout,
		met:         cfg.Metrics,
		pool:        goroutines.NewPool(cfg.Workers, goroutines.WithTaskQueueLength(1024)),
	}
}

func (d *Dispatcher) Notify(c ctx.Ctx, event notification.Event) {
	// the request may be over before the event is delivered
	detached := ctx.WithContext(c, context.Background())
	for _, sink := range d.sinks {
		sink := sink
		err := d.pool.ScheduleWithTimeout(scheduleTimeout, func() {
			d.send(detached, sink, event)
		})
		if err != nil {
			d.met.BumpSum("dropped", 1, "sink", sink.Name(), "kind", string(event.Kind))
			c.WithFields(log.Fields{
				"sink":  sink.Name(),
				"event": event,
				"err":   err,
			}).Warn("failed to ScheduleWithTimeout")
		}
	}
}

func (d *Dispatcher) send(c ctx.Ctx, sink notification.Sink, event notification.Event) {
	c, cancel := ctx.WithTimeout(c, d.sendTimeout)
	defer cancel()
	defer d.met.BumpTime("send.time", "sink", sink.Name(), "kind", string(event.Kind)).End()

	if err := sink.Send(c, event); err != nil {
		d.met.BumpSum("send.err", 1, "sink", sink.Name(), "kind", string(event.Kind))
		c.WithFields(log.Fields{
			"sink":  sink.Name(),
			"event": event,
			"err":   err,
		}).Error("failed to Send")
	}
}

// Close waits for nothing, queued events are discarded
func (d *Dispatcher) Close() {
	d.pool.Release()
}
