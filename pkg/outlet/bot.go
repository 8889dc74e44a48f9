package outlet

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/outletbot/outlet/internal/db"
	"github.com/outletbot/outlet/internal/discord"
)

// DefaultPrefix is the command prefix used when no other is configured.
const DefaultPrefix = "!"

type options struct {
	log    *zerolog.Logger
	prefix string
	store  *db.Store

	plugins []Plugin
}

type Option func(*options)

func WithLogger(log *zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithPrefix sets the default command prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		if prefix != "" {
			o.prefix = prefix
		}
	}
}

// WithStore sets the store used for guild prefix overrides and plugin
// resources. Without a store those features are disabled.
func WithStore(store *db.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

func WithPlugins(plugins ...Plugin) Option {
	return func(o *options) {
		o.plugins = plugins
	}
}

// Bot represents the instance of the bot. All of the bot's behavior lives in
// plugins; the bot collects them and funnels gateway events into their
// routes, commands and background tasks.
type Bot struct {
	dc    *discord.Client
	r     *Router
	tasks *taskRunner
	pag   *paginators
	store *db.Store

	prefix string

	// current is the plugin being initialized, used to tag its commands
	current string

	log *zerolog.Logger
}

// New creates a new instance of the bot and initializes its plugins.
func New(dc *discord.Client, opts ...Option) (*Bot, error) {
	o := &options{prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(o)
	}

	if o.log == nil {
		l := zerolog.Nop()
		o.log = &l
	}

	b := &Bot{
		dc:     dc,
		r:      NewRouter(),
		tasks:  newTaskRunner(o.log),
		pag:    newPaginators(),
		store:  o.store,
		prefix: o.prefix,
		log:    o.log,
	}

	b.r.AddRoute(NewRoute(EventMessageCreate, b.dispatchCommand))
	b.r.AddRoute(NewRoute(EventReactionAdd, b.pag.handle))

	for _, plug := range append(registered(), o.plugins...) {
		l := o.log.With().Str("plugin", plug.Name()).Logger()
		b.current = plug.Name()
		if err := plug.Init(b, &l); err != nil {
			return nil, errors.Wrapf(err, "failed to init plugin %s", plug.Name())
		}
	}
	b.current = ""

	return b, nil
}

// ID returns the user ID of the bot account, or "" before the gateway is up.
func (b *Bot) ID() string {
	if b.dc == nil || b.dc.State == nil || b.dc.State.User == nil {
		return ""
	}

	return b.dc.State.User.ID
}

// Run connects to the gateway and funnels events into the router until ctx
// is done. Background tasks start on the first ready event and restart on
// every later one.
func (b *Bot) Run(ctx context.Context) error {
	b.dc.OnEvent(func(s *discordgo.Session, data any) {
		evt := fromGateway(s, data)
		if evt == nil {
			return
		}

		if evt.Type == EventReady {
			b.log.Debug().Msg("bot ready")
			b.tasks.Start(ctx)
		}

		if err := b.r.Handle(evt); err != nil {
			b.log.Error().Err(err).Str("event", string(evt.Type)).Msg("event handler failed")
		}
	})

	defer b.tasks.Stop()

	return b.dc.Start(ctx)
}

// Route registers a route handler
func (b *Bot) Route(route Route) {
	b.r.AddRoute(route)
}

// Command registers a chat command. Commands registered during plugin init
// are tagged with the plugin's name.
func (b *Bot) Command(cmd Command) {
	if cmd.Plugin == "" {
		cmd.Plugin = b.current
	}

	b.r.AddCommand(&cmd)
}

// Task registers a background task. Tasks start when the gateway reports
// ready.
func (b *Bot) Task(t Task) {
	b.tasks.Add(t)
}

// Commands returns all registered commands in registration order.
func (b *Bot) Commands() []*Command {
	return b.r.Commands()
}

// LookupCommand returns the command registered under name, or nil.
func (b *Bot) LookupCommand(name string) *Command {
	return b.r.Lookup(name)
}

// Prefix returns the command prefix effective in a guild, honoring a stored
// per-guild override.
func (b *Bot) Prefix(guildID string) string {
	if b.store != nil && guildID != "" {
		if p := b.store.GuildPrefix(guildID); p != "" {
			return p
		}
	}

	return b.prefix
}

// SetGuildPrefix stores a prefix override for a guild.
func (b *Bot) SetGuildPrefix(guildID, prefix string) error {
	if b.store == nil {
		return errors.New("no store configured")
	}

	return b.store.SetGuildPrefix(guildID, prefix)
}

// Resource loads a persisted plugin resource, or "" when unset.
func (b *Bot) Resource(plugin, key string) string {
	if b.store == nil {
		return ""
	}

	return b.store.Resource(plugin, key)
}

// SetResource persists a plugin resource.
func (b *Bot) SetResource(plugin, key, value string) error {
	if b.store == nil {
		return errors.New("no store configured")
	}

	return b.store.SetResource(plugin, key, value)
}

// SendText sends a text message to a channel
func (b *Bot) SendText(channelID, text string) error {
	_, err := b.dc.ChannelMessageSend(channelID, text)
	return err
}

// SendEmbed sends an embed to a channel
func (b *Bot) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	_, err := b.dc.ChannelMessageSendEmbed(channelID, embed)
	return err
}

// SendPaged sends an embed split into pages flipped with reactions by the
// given user. Embeds that fit on one page are sent plain.
func (b *Bot) SendPaged(channelID, userID string, embed *discordgo.MessageEmbed, perPage int) error {
	pages := paginate(embed, perPage)

	msg, err := b.dc.ChannelMessageSendEmbed(channelID, pages[0])
	if err != nil {
		return errors.Wrap(err, "failed to send embed")
	}

	if len(pages) == 1 {
		return nil
	}

	for _, emoji := range []string{emojiPrev, emojiNext} {
		if err := b.dc.MessageReactionAdd(channelID, msg.ID, emoji); err != nil {
			return errors.Wrap(err, "failed to add page reaction")
		}
	}

	b.pag.track(&Paginator{
		pages:     pages,
		userID:    userID,
		channelID: channelID,
		messageID: msg.ID,
		expires:   time.Now().Add(paginatorTTL),
	})

	return nil
}
