package outlet

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Context is passed to command handlers with information about the message
// and helper functions.
type Context struct {
	Bot     *Bot
	Session *discordgo.Session

	// Message is the message that invoked the command
	Message *discordgo.Message

	// Args are the arguments after the command name, with doubled spaces
	// collapsed
	Args []string

	Log *zerolog.Logger
}

// Author returns the author of the invoking message.
func (c *Context) Author() *discordgo.User {
	return c.Message.Author
}

// Send sends a text message to the channel the command came from.
func (c *Context) Send(text string) error {
	return c.Bot.SendText(c.Message.ChannelID, text)
}

// SendEmbed sends an embed to the channel the command came from.
func (c *Context) SendEmbed(embed *discordgo.MessageEmbed) error {
	return c.Bot.SendEmbed(c.Message.ChannelID, embed)
}

// Reply sends a text message referencing the invoking message.
func (c *Context) Reply(text string) error {
	_, err := c.Session.ChannelMessageSendReply(c.Message.ChannelID, text, c.Message.Reference())
	return err
}

// CommandHandler handles a command invocation.
type CommandHandler func(*Context) error

// Command is a chat command registered by a plugin.
type Command struct {
	// Name invokes the command, without the prefix
	Name string

	// Help is the one-line help text shown by the help command
	Help string

	// MinArgs is the minimum number of arguments
	MinArgs int

	// MaxArgs is the maximum number of arguments; 0 means unlimited
	MaxArgs int

	// Permissions are discordgo permission bits the caller must hold in the
	// channel
	Permissions int64

	// OwnerOnly restricts the command to the guild owner
	OwnerOnly bool

	// Plugin is the name of the owning plugin. The bot fills it in during
	// plugin init.
	Plugin string

	Handler CommandHandler
}

// parseCommand splits a message body into a command name and its arguments.
// ok is false when the body is not a command invocation for the prefix.
func parseCommand(content, prefix string) (name string, args []string, ok bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) || content == prefix {
		return "", nil, false
	}

	fields := strings.Fields(content[len(prefix):])
	if len(fields) == 0 {
		return "", nil, false
	}

	return fields[0], fields[1:], true
}

func (cmd *Command) checkArity(args []string) error {
	if len(args) < cmd.MinArgs {
		return MissingArguments(cmd.MinArgs)
	}

	if cmd.MaxArgs > 0 && len(args) > cmd.MaxArgs {
		return TooManyArguments(cmd.MaxArgs)
	}

	return nil
}

// dispatchCommand is the bot's own message route: it turns prefixed messages
// into command invocations.
func (b *Bot) dispatchCommand(evt *Event) error {
	m, ok := evt.Data.(*discordgo.MessageCreate)
	if !ok {
		return nil
	}

	if m.Author == nil || m.Author.ID == b.ID() {
		return nil
	}

	name, args, ok := parseCommand(m.Content, b.Prefix(m.GuildID))
	if !ok {
		return nil
	}

	cmd := b.r.Lookup(name)
	if cmd == nil {
		return nil
	}

	b.log.Info().Str("command", cmd.Name).Msg("command received")

	ctx := &Context{
		Bot:     b,
		Session: evt.Session,
		Message: m.Message,
		Args:    args,
		Log:     b.log,
	}

	if err := b.runCommand(cmd, ctx); err != nil {
		if IsCommandError(err) {
			b.log.Info().Str("command", cmd.Name).Str("reason", err.Error()).Msg("command rejected")
			if serr := ctx.Send(err.Error()); serr != nil {
				return errors.Wrap(serr, "failed to report command error")
			}
			return nil
		}

		return errors.Wrapf(err, "command %s failed", cmd.Name)
	}

	return nil
}

func (b *Bot) runCommand(cmd *Command, ctx *Context) error {
	if err := cmd.checkArity(ctx.Args); err != nil {
		return err
	}

	if err := checkAccess(cmd, ctx); err != nil {
		return err
	}

	return cmd.Handler(ctx)
}

func checkAccess(cmd *Command, ctx *Context) error {
	if cmd.OwnerOnly {
		if ctx.Message.GuildID == "" {
			return NewCommandError("This command only works in a guild")
		}

		g, err := ctx.Session.State.Guild(ctx.Message.GuildID)
		if err != nil {
			return errors.Wrap(err, "failed to look up guild")
		}

		if ctx.Author().ID != g.OwnerID {
			return MissingPermission("Only the owner of the guild can use this command")
		}
	}

	if cmd.Permissions != 0 {
		perms, err := ctx.Session.UserChannelPermissions(ctx.Author().ID, ctx.Message.ChannelID)
		if err != nil {
			return errors.Wrap(err, "failed to look up permissions")
		}

		if perms&cmd.Permissions != cmd.Permissions {
			return MissingPermission("You are missing a permission required by this command")
		}
	}

	return nil
}
