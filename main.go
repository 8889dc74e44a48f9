package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/outletbot/outlet/internal/db"
	"github.com/outletbot/outlet/internal/discord"
	"github.com/outletbot/outlet/pkg/outlet"
	"github.com/outletbot/outlet/plugins/help"
	"github.com/outletbot/outlet/plugins/openai"
	"github.com/outletbot/outlet/plugins/prefix"
)

func main() {
	a := &cli.App{
		Name:  "outlet",
		Usage: "Outlet is a Discord bot whose behavior is organized into plugins",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "discord-token",
				Usage:   "Discord bot token",
				EnvVars: []string{"DISCORD_TOKEN"},
			},
			&cli.StringFlag{
				Name:    "prefix",
				Usage:   "Command prefix",
				Value:   outlet.DefaultPrefix,
				EnvVars: []string{"BOT_PREFIX"},
			},
			&cli.StringSliceFlag{
				Name:    "guilds",
				Usage:   "Guild IDs the bot is allowed to stay in; empty allows all",
				EnvVars: []string{"DISCORD_GUILDS"},
			},
			&cli.StringFlag{
				Name:    "status",
				Usage:   "Presence text to show once connected",
				EnvVars: []string{"BOT_STATUS"},
			},
			&cli.StringFlag{
				Name:    "database-dsn",
				Usage:   "Database DSN",
				Value:   "outlet.sqlite3",
				EnvVars: []string{"DATABASE_DSN"},
			},
			&cli.StringFlag{
				Name:    "open-ai-key",
				Usage:   "OpenAI API key",
				EnvVars: []string{"OPEN_AI_KEY"},
			},
			&cli.StringFlag{
				Name:    "openai-prompt",
				Usage:   "The prompt to use for the system chat",
				Value:   openai.DefaultPrompt,
				EnvVars: []string{"OPENAI_PROMPT"},
			},
			&cli.IntFlag{
				Name:    "openai-chance",
				Usage:   "Chance (0-100) the bot answers when mentioned",
				Value:   openai.DefaultChance,
				EnvVars: []string{"OPENAI_CHANCE"},
			},
		},
		Action: func(c *cli.Context) error {
			log := zerolog.New(os.Stdout).With().Timestamp().Logger()

			// open the database
			store, err := db.Open(c.String("database-dsn"))
			if err != nil {
				return errors.Wrap(err, "failed to open database")
			}

			// start the discord client
			dc, err := discord.NewClient(
				c.String("discord-token"),
				discord.WithLogger(log),
				discord.WithGuilds(c.StringSlice("guilds")),
				discord.WithStatus(c.String("status")),
			)
			if err != nil {
				return err
			}

			b, err := outlet.New(dc,
				outlet.WithLogger(&log),
				outlet.WithPrefix(c.String("prefix")),
				outlet.WithStore(store),
				outlet.WithPlugins(
					help.NewPlugin(),
					prefix.NewPlugin(),
					openai.NewPlugin(openai.Configuration{
						APIKey: c.String("open-ai-key"),
						Prompt: c.String("openai-prompt"),
						Chance: c.Int("openai-chance"),
					}),
				),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return b.Run(ctx)
		},
		Commands: []*cli.Command{
			{
				Name:  "prompt",
				Usage: "Generate a one-shot completion for the given prompt",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "prompt",
						Usage:   "Prompt to complete",
						EnvVars: []string{"PROMPT"},
					},
					&cli.StringFlag{
						Name:    "open-ai-key",
						Usage:   "OpenAI API key",
						EnvVars: []string{"OPEN_AI_KEY"},
					},
				},
				Action: func(c *cli.Context) error {
					oc := openai.NewClient(c.String("open-ai-key"))
					out, err := oc.Prompt(c.Context, c.String("prompt"))
					if err != nil {
						return err
					}
					log.Println(out)
					return nil
				},
			},
		},
	}

	if err := a.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
