package notifier

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/x-xyz/marketcore/base/ctx"
	"github.com/x-xyz/marketcore/domain/notification"
)

type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

// DiscordSink posts events as embeds to one channel through a bot account
type DiscordSink struct {
	channelId string
	session   embedSender
}

func NewDiscordSink(botKey, channelId string) (*DiscordSink, error) {
	session, err := discordgo.New(fmt.Sprintf("Bot %s", botKey))
	if err != nil {
		return nil, err
	}
	return &DiscordSink{channelId: channelId, session: session}, nil
}

func (s *DiscordSink) Name() string {
	return "discord"
}

var titles = map[notification.Kind]string{
	notification.KindDropNftBidAccepted:   "Drop item sold by auction!",
	notification.KindSingleNftBidAccepted: "Item sold by auction!",
	notification.KindDropPending:          "Drop submitted",
	notification.KindDropLive:             "Drop is live!",
	notification.KindDropClosed:           "Drop closed",
}

func (s *DiscordSink) Send(c ctx.Ctx, event notification.Event) error {
	_, err := s.session.ChannelMessageSendEmbed(s.channelId, toEmbed(event))
	return err
}

func toEmbed(event notification.Event) *discordgo.MessageEmbed {
	title, ok := titles[event.Kind]
	if !ok {
		title = string(event.Kind)
	}
	fields := []*discordgo.MessageEmbedField{}
	add := func(name, value string) {
		if value != "" {
			fields = append(fields, &discordgo.MessageEmbedField{Name: name, Value: value})
		}
	}
	add("NFT", event.NftId)
	add("Drop", event.DropId)
	add("Bid", event.BidId)
	add("Seller", string(event.From))
	add("Buyer", string(event.To))
	if !event.Amount.IsZero() {
		add("Price", event.Amount.String())
	}
	return &discordgo.MessageEmbed{
		Title:     title,
		Fields:    fields,
		Timestamp: event.Time.UTC().Format(time.RFC3339),
	}
}
