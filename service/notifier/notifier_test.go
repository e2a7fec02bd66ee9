package notifier

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain/notification"
)

var (
	mockCtx = ctx.Background()
)

type recordSink struct {
	mu     sync.Mutex
	name   string
	err    error
	events []notification.Event
	done   chan struct{}
}

func newRecordSink(name string, err error) *recordSink {
	return &recordSink{name: name, err: err, done: make(chan struct{}, 16)}
}

func (s *recordSink) Name() string { return s.name }

func (s *recordSink) Send(c ctx.Ctx, event notification.Event) error {
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
	s.done <- struct{}{}
	return s.err
}

type fakeDiscord struct {
	channelId string
	embed     *discordgo.MessageEmbed
}

func (f *fakeDiscord) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	f.channelId = channelID
	f.embed = embed
	return &discordgo.Message{}, nil
}

type testsuite struct {
	suite.Suite
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func wait(s *recordSink) bool {
	select {
	case <-s.done:
		return true
	case <-time.After(time.Second):
		return false
	}
}

func (ts *testsuite) TestNotifyFansOut() {
	ok := newRecordSink("ok", nil)
	failing := newRecordSink("failing", errors.New("unreachable"))
	d := New(Config{Sinks: []notification.Sink{ok, failing}, Workers: 2})
	defer d.Close()

	cancelled, cancel := ctx.WithCancel(mockCtx)
	cancel()

	event := notification.Event{Kind: notification.KindDropLive, DropId: "d1"}
	d.Notify(cancelled, event)

	ts.Require().True(wait(ok))
	ts.Require().True(wait(failing))
	ts.Equal([]notification.Event{event}, ok.events)
	ts.Equal([]notification.Event{event}, failing.events)
}

func (ts *testsuite) TestDiscordEmbed() {
	fake := &fakeDiscord{}
	sink := &DiscordSink{channelId: "chan", session: fake}

	at := time.Date(2022, 8, 1, 0, 0, 0, 0, time.UTC)
	ts.NoError(sink.Send(mockCtx, notification.Event{
		Kind:   notification.KindSingleNftBidAccepted,
		NftId:  "n1",
		BidId:  "b1",
		From:   "0xaa",
		To:     "0xbb",
		Amount: decimal.RequireFromString("1.5"),
		Time:   at,
	}))

	ts.Equal("chan", fake.channelId)
	ts.Equal("Item sold by auction!", fake.embed.Title)
	ts.Equal("2022-08-01T00:00:00Z", fake.embed.Timestamp)
	names := []string{}
	for _, f := range fake.embed.Fields {
		names = append(names, f.Name)
	}
	ts.Equal([]string{"NFT", "Bid", "Seller", "Buyer", "Price"}, names)
}

func (ts *testsuite) TestLogSink() {
	ts.NoError(NewLogSink().Send(mockCtx, notification.Event{Kind: notification.KindDropClosed}))
}
