package openai

import (
	"context"
	"math/rand"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/outletbot/outlet/pkg/outlet"
)

type Plugin struct {
	// client is the OpenAI client to use for the plugin
	client *Client

	// bot is the bot instance
	bot *outlet.Bot

	// log is the logger to use for logging
	log *zerolog.Logger

	cfg *Configuration
}

type Configuration struct {
	// Prompt is the system Prompt to use to prime responses
	Prompt string

	// Chance is the Chance to respond to a mention
	Chance int

	// APIKey is the API key for OpenAI
	APIKey string
}

// NewPlugin creates a new OpenAI plugin
func NewPlugin(cfg Configuration) *Plugin {
	aiClient := NewClient(
		cfg.APIKey,
		WithPrompt(cfg.Prompt),
	)

	return &Plugin{
		client: aiClient,
		cfg:    &cfg,
	}
}

func (p *Plugin) Name() string {
	return "openai"
}

func (p *Plugin) Init(bot *outlet.Bot, log *zerolog.Logger) error {
	p.log = log
	p.bot = bot

	p.log.Info().Msg("initializing OpenAI plugin")

	bot.Command(outlet.Command{
		Name:    "ask",
		Help:    "Asks the assistant a question.",
		MinArgs: 1,
		Handler: p.handleAsk,
	})

	bot.Route(outlet.Route{
		Handler:   p.handleMention,
		EventType: outlet.EventMessageCreate,
	})

	return nil
}

func (p *Plugin) handleAsk(ctx *outlet.Context) error {
	out, err := p.client.Prompt(context.Background(), strings.Join(ctx.Args, " "))
	if err != nil {
		p.log.Error().Err(err).Msg("failed to generate response")
		return errors.Wrap(err, "failed to generate response")
	}

	return ctx.Reply(out)
}

// handleMention answers a roll of the dice's worth of messages that @mention
// the bot.
func (p *Plugin) handleMention(evt *outlet.Event) error {
	m, ok := evt.Data.(*discordgo.MessageCreate)
	if !ok || m.Author == nil || m.Author.ID == p.bot.ID() {
		return nil
	}

	if !mentions(m.Message, p.bot.ID()) {
		return nil
	}

	// the top-level generator is safe for the concurrent handler
	// goroutines discordgo dispatches on
	if rand.Intn(100) >= p.cfg.Chance {
		return nil
	}

	body := stripMention(m.Content, p.bot.ID())
	if body == "" {
		return nil
	}

	p.log.Debug().Str("msg", body).Msg("responding to mention")

	out, err := p.client.Prompt(context.Background(), body)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to generate response")
		return errors.Wrap(err, "failed to generate response")
	}

	if err := p.bot.SendText(m.ChannelID, out); err != nil {
		return errors.Wrap(err, "failed to send message")
	}

	return nil
}

func mentions(m *discordgo.Message, userID string) bool {
	if userID == "" {
		return false
	}

	for _, u := range m.Mentions {
		if u.ID == userID {
			return true
		}
	}

	return false
}

// stripMention removes the bot's mention tokens from the message body.
func stripMention(content, userID string) string {
	content = strings.ReplaceAll(content, "<@"+userID+">", "")
	content = strings.ReplaceAll(content, "<@!"+userID+">", "")

	return strings.TrimSpace(content)
}
