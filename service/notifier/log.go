package notifier

import (
	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/base/log"
	"github.com/x-xyz/marketcore/domain/notification"
)

// LogSink writes events to the service log, used when no chat channel is configured
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Name() string {
	return "log"
}

func (s *LogSink) Send(c ctx.Ctx, event notification.Event) error {
	c.WithFields(log.Fields{
		"kind":   event.Kind,
		"nftId":  event.NftId,
		"dropId": event.DropId,
		"bidId":  event.BidId,
		"from":   event.From,
		"to":     event.To,
		"amount": event.Amount.String(),
	}).Info("notification")
	return nil
}
