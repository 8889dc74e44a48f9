package openai

import (
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outletbot/outlet/internal/discord"
	"github.com/outletbot/outlet/pkg/outlet"
)

func TestMentions(t *testing.T) {
	msg := &discordgo.Message{
		Mentions: []*discordgo.User{{ID: "bot"}, {ID: "someone"}},
	}

	assert.True(t, mentions(msg, "bot"))
	assert.False(t, mentions(msg, "other"))
	assert.False(t, mentions(msg, ""))
	assert.False(t, mentions(&discordgo.Message{}, "bot"))
}

func TestStripMention(t *testing.T) {
	assert.Equal(t, "hello there", stripMention("<@bot> hello there", "bot"))
	assert.Equal(t, "hello there", stripMention("<@!bot> hello there", "bot"))
	assert.Equal(t, "hello", stripMention("hello <@bot>", "bot"))
	assert.Equal(t, "", stripMention("<@bot>", "bot"))
	assert.Equal(t, "untouched", stripMention("untouched", "bot"))
}

func TestPluginRegistersAskCommand(t *testing.T) {
	plug := NewPlugin(Configuration{Chance: DefaultChance})

	b, err := outlet.New(nil, outlet.WithPlugins(plug))
	require.NoError(t, err)

	cmd := b.LookupCommand("ask")
	require.NotNil(t, cmd)
	assert.Equal(t, "openai", cmd.Plugin)
	assert.Equal(t, 1, cmd.MinArgs)
}

// handleMention runs on a fresh goroutine per gateway event, so the chance
// roll must be safe to hit from many invocations at once.
func TestHandleMentionConcurrent(t *testing.T) {
	dc, err := discord.NewClient("token")
	require.NoError(t, err)
	dc.State.User = &discordgo.User{ID: "bot"}

	// Chance 0 stops every roll short of calling out to the API
	plug := NewPlugin(Configuration{Chance: 0})
	_, err = outlet.New(dc, outlet.WithPlugins(plug))
	require.NoError(t, err)

	evt := func() *outlet.Event {
		return &outlet.Event{
			Type: outlet.EventMessageCreate,
			Data: &discordgo.MessageCreate{Message: &discordgo.Message{
				Content:  "<@bot> hello",
				Author:   &discordgo.User{ID: "user"},
				Mentions: []*discordgo.User{{ID: "bot"}},
			}},
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, plug.handleMention(evt()))
		}()
	}
	wg.Wait()
}

func TestClientPromptDefaults(t *testing.T) {
	c := NewClient("key")
	assert.Equal(t, DefaultPrompt, c.sysPrompt)

	c = NewClient("key", WithPrompt("custom"))
	assert.Equal(t, "custom", c.sysPrompt)

	// an empty prompt keeps the default
	c = NewClient("key", WithPrompt(""))
	assert.Equal(t, DefaultPrompt, c.sysPrompt)
}
