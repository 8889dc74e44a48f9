package prefix

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/outletbot/outlet/pkg/outlet"
)

// Plugin implements the prefix command, letting a guild owner override the
// bot's command prefix for their guild.
type Plugin struct {
	// bot is the bot instance
	bot *outlet.Bot

	// log is the logger to use for logging
	log *zerolog.Logger
}

// NewPlugin creates a new prefix plugin
func NewPlugin() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string {
	return "prefix"
}

func (p *Plugin) Init(bot *outlet.Bot, log *zerolog.Logger) error {
	p.bot = bot
	p.log = log

	p.log.Info().Msg("initializing prefix plugin")

	bot.Command(outlet.Command{
		Name:      "prefix",
		Help:      "Sets the command prefix for this guild. Owner only.",
		MinArgs:   1,
		MaxArgs:   1,
		OwnerOnly: true,
		Handler:   p.handlePrefix,
	})

	return nil
}

func (p *Plugin) handlePrefix(ctx *outlet.Context) error {
	if ctx.Message.GuildID == "" {
		return outlet.NewCommandError("This command only works in a guild")
	}

	newPrefix := ctx.Args[0]

	if err := p.bot.SetGuildPrefix(ctx.Message.GuildID, newPrefix); err != nil {
		return errors.Wrap(err, "failed to store prefix")
	}

	p.log.Info().Str("guild", ctx.Message.GuildID).Str("prefix", newPrefix).Msg("prefix changed")

	return ctx.Send(fmt.Sprintf("Prefix set to `%s`", newPrefix))
}
