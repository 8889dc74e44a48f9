package help

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/outletbot/outlet/pkg/outlet"
)

// Plugin implements the builtin help command
type Plugin struct {
	// bot is the bot instance
	bot *outlet.Bot

	// log is the logger to use for logging
	log *zerolog.Logger
}

// NewPlugin creates a new help plugin
func NewPlugin() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string {
	return "help"
}

func (p *Plugin) Init(bot *outlet.Bot, log *zerolog.Logger) error {
	p.bot = bot
	p.log = log

	p.log.Info().Msg("initializing help plugin")

	bot.Command(outlet.Command{
		Name:    "help",
		Help:    "Shows a list of commands, or help for a specific command.",
		MaxArgs: 1,
		Handler: p.handleHelp,
	})

	return nil
}

func (p *Plugin) handleHelp(ctx *outlet.Context) error {
	prefix := p.bot.Prefix(ctx.Message.GuildID)

	if len(ctx.Args) > 0 {
		name := ctx.Args[0]
		if strings.HasPrefix(name, prefix) && name != prefix {
			name = name[len(prefix):]
		}

		cmd := p.bot.LookupCommand(name)
		if cmd == nil {
			return outlet.NewCommandError("`%s` isn't a command", name)
		}

		return ctx.Send(fmt.Sprintf("%s**%s** %s", prefix, cmd.Name, cmd.Help))
	}

	embed := helpEmbed(prefix, p.bot.Commands())

	return p.bot.SendPaged(ctx.Message.ChannelID, ctx.Author().ID, embed, outlet.DefaultPerPage)
}

// helpEmbed builds the command listing, one field per plugin in command
// registration order.
func helpEmbed(prefix string, cmds []*outlet.Command) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Commands",
		Description: fmt.Sprintf("Do **%shelp <command>** for more information about a command.", prefix),
	}

	groups := make(map[string][]string)
	var order []string

	for _, cmd := range cmds {
		owner := cmd.Plugin
		if owner == "" {
			owner = "bot"
		}

		if _, ok := groups[owner]; !ok {
			order = append(order, owner)
		}
		groups[owner] = append(groups[owner], prefix+cmd.Name)
	}

	for _, owner := range order {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  owner,
			Value: strings.Join(groups[owner], "\n"),
		})
	}

	return embed
}
