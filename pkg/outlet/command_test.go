package outlet

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		content string
		prefix  string
		cmd     string
		args    []string
		ok      bool
	}{
		{name: "plain command", content: "!ping", prefix: "!", cmd: "ping", args: []string{}, ok: true},
		{name: "with args", content: "!kick @someone spamming", prefix: "!", cmd: "kick", args: []string{"@someone", "spamming"}, ok: true},
		{name: "doubled spaces collapse", content: "!say  hello   world", prefix: "!", cmd: "say", args: []string{"hello", "world"}, ok: true},
		{name: "no prefix", content: "ping", prefix: "!", ok: false},
		{name: "prefix only", content: "!", prefix: "!", ok: false},
		{name: "prefix then spaces", content: "!   ", prefix: "!", ok: false},
		{name: "empty prefix never matches", content: "ping", prefix: "", ok: false},
		{name: "multi-char prefix", content: "$$help", prefix: "$$", cmd: "help", args: []string{}, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, ok := parseCommand(tt.content, tt.prefix)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.cmd, cmd)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestCheckArity(t *testing.T) {
	two := &Command{MinArgs: 1, MaxArgs: 2}

	assert.Error(t, two.checkArity(nil))
	assert.NoError(t, two.checkArity([]string{"a"}))
	assert.NoError(t, two.checkArity([]string{"a", "b"}))

	err := two.checkArity([]string{"a", "b", "c"})
	require.Error(t, err)
	assert.True(t, IsCommandError(err))

	unlimited := &Command{MinArgs: 1}
	assert.NoError(t, unlimited.checkArity([]string{"a", "b", "c", "d"}))
}

func TestRunCommandCallsHandler(t *testing.T) {
	b, err := New(nil)
	require.NoError(t, err)

	var got []string
	cmd := &Command{
		Name:    "echo",
		MinArgs: 1,
		Handler: func(ctx *Context) error {
			got = ctx.Args
			return nil
		},
	}

	ctx := &Context{Bot: b, Args: []string{"hello", "world"}}
	require.NoError(t, b.runCommand(cmd, ctx))
	assert.Equal(t, []string{"hello", "world"}, got)
}

func TestRunCommandRejectsArity(t *testing.T) {
	b, err := New(nil)
	require.NoError(t, err)

	var called bool
	cmd := &Command{
		Name:    "echo",
		MinArgs: 2,
		Handler: func(*Context) error {
			called = true
			return nil
		},
	}

	rerr := b.runCommand(cmd, &Context{Bot: b, Args: []string{"only"}})
	require.Error(t, rerr)
	assert.True(t, IsCommandError(rerr))
	assert.False(t, called)
}

func TestOwnerOnlyRejectedOutsideGuild(t *testing.T) {
	b, err := New(nil)
	require.NoError(t, err)

	var called bool
	cmd := &Command{
		Name:      "prefix",
		OwnerOnly: true,
		Handler: func(*Context) error {
			called = true
			return nil
		},
	}

	// a DM has no guild; the caller gets a reply instead of silence
	ctx := &Context{Bot: b, Message: &discordgo.Message{
		Author: &discordgo.User{ID: "user"},
	}}

	rerr := b.runCommand(cmd, ctx)
	require.Error(t, rerr)
	assert.True(t, IsCommandError(rerr))
	assert.False(t, called)
}

func TestDispatchCommand(t *testing.T) {
	b, err := New(nil)
	require.NoError(t, err)

	var got []string
	b.Command(Command{
		Name: "echo",
		Handler: func(ctx *Context) error {
			got = ctx.Args
			return nil
		},
	})

	evt := &Event{
		Type: EventMessageCreate,
		Data: &discordgo.MessageCreate{Message: &discordgo.Message{
			Content: "!echo a b",
			Author:  &discordgo.User{ID: "user"},
		}},
	}

	require.NoError(t, b.dispatchCommand(evt))
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestDispatchIgnoresNonCommands(t *testing.T) {
	b, err := New(nil)
	require.NoError(t, err)

	var called bool
	b.Command(Command{
		Name: "echo",
		Handler: func(*Context) error {
			called = true
			return nil
		},
	})

	for _, content := range []string{"echo a b", "!", "!other", ""} {
		evt := &Event{
			Type: EventMessageCreate,
			Data: &discordgo.MessageCreate{Message: &discordgo.Message{
				Content: content,
				Author:  &discordgo.User{ID: "user"},
			}},
		}
		require.NoError(t, b.dispatchCommand(evt))
	}

	assert.False(t, called)
}

func TestIsCommandError(t *testing.T) {
	assert.True(t, IsCommandError(MissingArguments(1)))
	assert.True(t, IsCommandError(TooManyArguments(2)))
	assert.True(t, IsCommandError(WrongType("`%s` isn't a number.", "x")))
	assert.True(t, IsCommandError(MissingPermission("nope")))

	// wrapping preserves the classification
	assert.True(t, IsCommandError(errors.Wrap(MissingArguments(1), "context")))

	assert.False(t, IsCommandError(errors.New("plain")))
	assert.False(t, IsCommandError(nil))
}

func TestCommandErrorMessages(t *testing.T) {
	assert.Equal(t, "2 argument(s) are required for this command", MissingArguments(2).Error())
	assert.Equal(t, "Only 1 argument(s) are allowed for this command", TooManyArguments(1).Error())
}
