package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Client is a Discord gateway client
type Client struct {
	*discordgo.Session
	log zerolog.Logger

	opts options
}

// options are the options for the Discord client
type options struct {
	// Log is the logger to use for logging
	Log zerolog.Logger

	// Guilds is the guild allow-list; empty means stay everywhere
	Guilds mapset.Set[string]

	// Intents are the gateway intents to request
	Intents discordgo.Intent

	// Status is the presence text to set once connected
	Status string
}

// ClientOption is an option for the Discord client
type ClientOption func(*options)

// WithLogger sets the logger to use for logging
func WithLogger(log zerolog.Logger) ClientOption {
	return func(o *options) {
		o.Log = log
	}
}

// WithGuilds sets the guilds the bot is allowed to stay in. Any other guild
// is left on startup.
func WithGuilds(guilds []string) ClientOption {
	return func(o *options) {
		for _, g := range guilds {
			o.Guilds.Add(g)
		}
	}
}

// WithIntents sets the gateway intents to request
func WithIntents(intents discordgo.Intent) ClientOption {
	return func(o *options) {
		o.Intents = intents
	}
}

// WithStatus sets the presence text to set once connected
func WithStatus(status string) ClientOption {
	return func(o *options) {
		o.Status = status
	}
}

// NewClient creates a new Discord client
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	o := &options{
		Guilds:  mapset.NewSet[string](),
		Intents: discordgo.IntentsAllWithoutPrivileged | discordgo.IntentMessageContent,
	}

	for _, opt := range opts {
		opt(o)
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session")
	}

	session.Identify.Intents = o.Intents
	session.StateEnabled = true

	c := &Client{
		Session: session,
		log:     o.Log,

		opts: *o,
	}

	return c, nil
}

// Guilds returns the configured guild allow-list.
func (c *Client) Guilds() []string {
	return c.opts.Guilds.ToSlice()
}

// OnEvent registers a handler for every gateway event
func (c *Client) OnEvent(f func(*discordgo.Session, any)) {
	c.AddHandler(func(s *discordgo.Session, e any) {
		f(s, e)
	})
}

// Start opens the gateway connection and blocks until ctx is done, then
// closes the session.
func (c *Client) Start(ctx context.Context) error {
	if err := c.Open(); err != nil {
		return errors.Wrap(err, "failed to open gateway")
	}
	defer c.Close()

	if c.opts.Status != "" {
		if err := c.UpdateGameStatus(0, c.opts.Status); err != nil {
			c.log.Warn().Err(err).Msg("failed to set status")
		}
	}

	if err := c.ensureGuilds(); err != nil {
		return errors.Wrap(err, "failed to ensure guilds")
	}

	<-ctx.Done()

	return nil
}

// ensureGuilds leaves any guild not in the allow-list. An empty list keeps
// the bot everywhere.
func (c *Client) ensureGuilds() error {
	if c.opts.Guilds.Cardinality() == 0 {
		return nil
	}

	joined, err := c.UserGuilds(200, "", "")
	if err != nil {
		return err
	}

	current := mapset.NewSet[string]()
	for _, g := range joined {
		current.Add(g.ID)
	}

	diff := current.Difference(c.opts.Guilds)
	for _, id := range diff.ToSlice() {
		c.log.Info().Str("guild", id).Msg("leaving guild")
		if err := c.GuildLeave(id); err != nil {
			return err
		}
	}

	return nil
}
