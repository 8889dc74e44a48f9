package outlet

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromGateway(t *testing.T) {
	tests := []struct {
		data any
		want EventType
	}{
		{&discordgo.Ready{}, EventReady},
		{&discordgo.MessageCreate{}, EventMessageCreate},
		{&discordgo.MessageUpdate{}, EventMessageUpdate},
		{&discordgo.MessageDelete{}, EventMessageDelete},
		{&discordgo.MessageReactionAdd{}, EventReactionAdd},
		{&discordgo.MessageReactionRemove{}, EventReactionRemove},
		{&discordgo.ChannelCreate{}, EventChannelCreate},
		{&discordgo.GuildMemberAdd{}, EventMemberJoin},
		{&discordgo.GuildMemberRemove{}, EventMemberLeave},
		{&discordgo.GuildCreate{}, EventGuildJoin},
		{&discordgo.GuildDelete{}, EventGuildLeave},
		{&discordgo.GuildRoleDelete{}, EventRoleDelete},
		{&discordgo.GuildBanAdd{}, EventBanAdd},
		{&discordgo.TypingStart{}, EventTyping},
	}

	for _, tt := range tests {
		evt := fromGateway(nil, tt.data)
		require.NotNil(t, evt, string(tt.want))
		assert.Equal(t, tt.want, evt.Type)
		assert.Equal(t, tt.data, evt.Data)
	}
}

func TestFromGatewayDropsUnknown(t *testing.T) {
	assert.Nil(t, fromGateway(nil, &discordgo.Connect{}))
	assert.Nil(t, fromGateway(nil, "not an event"))
	assert.Nil(t, fromGateway(nil, nil))
}

func TestAsMessage(t *testing.T) {
	msg := &discordgo.Message{Content: "hi"}

	evt := fromGateway(nil, &discordgo.MessageCreate{Message: msg})
	assert.Same(t, msg, evt.AsMessage())

	evt = fromGateway(nil, &discordgo.MessageUpdate{Message: msg})
	assert.Same(t, msg, evt.AsMessage())

	evt = fromGateway(nil, &discordgo.Ready{})
	assert.Nil(t, evt.AsMessage())
}
