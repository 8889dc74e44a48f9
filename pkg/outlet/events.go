package outlet

import "github.com/bwmarrin/discordgo"

// EventType identifies a gateway event funneled through the router.
type EventType string

const (
	EventReady          EventType = "ready"
	EventMessageCreate  EventType = "message_create"
	EventMessageUpdate  EventType = "message_update"
	EventMessageDelete  EventType = "message_delete"
	EventReactionAdd    EventType = "reaction_add"
	EventReactionRemove EventType = "reaction_remove"
	EventChannelCreate  EventType = "channel_create"
	EventChannelUpdate  EventType = "channel_update"
	EventChannelDelete  EventType = "channel_delete"
	EventMemberJoin     EventType = "member_join"
	EventMemberLeave    EventType = "member_leave"
	EventMemberUpdate   EventType = "member_update"
	EventGuildJoin      EventType = "guild_join"
	EventGuildUpdate    EventType = "guild_update"
	EventGuildLeave     EventType = "guild_leave"
	EventRoleCreate     EventType = "role_create"
	EventRoleUpdate     EventType = "role_update"
	EventRoleDelete     EventType = "role_delete"
	EventBanAdd         EventType = "ban_add"
	EventBanRemove      EventType = "ban_remove"
	EventTyping         EventType = "typing"
)

// Event is a single gateway event. Data holds the discordgo payload for the
// event type.
type Event struct {
	Type    EventType
	Session *discordgo.Session
	Data    any
}

// AsMessage returns the message attached to a message event, or nil for
// other event types.
func (e *Event) AsMessage() *discordgo.Message {
	switch d := e.Data.(type) {
	case *discordgo.MessageCreate:
		return d.Message
	case *discordgo.MessageUpdate:
		return d.Message
	case *discordgo.MessageDelete:
		return d.Message
	}
	return nil
}

// fromGateway maps a raw discordgo payload to an Event. Payloads the router
// has no type for map to nil and are dropped.
func fromGateway(s *discordgo.Session, data any) *Event {
	var t EventType

	switch data.(type) {
	case *discordgo.Ready:
		t = EventReady
	case *discordgo.MessageCreate:
		t = EventMessageCreate
	case *discordgo.MessageUpdate:
		t = EventMessageUpdate
	case *discordgo.MessageDelete:
		t = EventMessageDelete
	case *discordgo.MessageReactionAdd:
		t = EventReactionAdd
	case *discordgo.MessageReactionRemove:
		t = EventReactionRemove
	case *discordgo.ChannelCreate:
		t = EventChannelCreate
	case *discordgo.ChannelUpdate:
		t = EventChannelUpdate
	case *discordgo.ChannelDelete:
		t = EventChannelDelete
	case *discordgo.GuildMemberAdd:
		t = EventMemberJoin
	case *discordgo.GuildMemberRemove:
		t = EventMemberLeave
	case *discordgo.GuildMemberUpdate:
		t = EventMemberUpdate
	case *discordgo.GuildCreate:
		t = EventGuildJoin
	case *discordgo.GuildUpdate:
		t = EventGuildUpdate
	case *discordgo.GuildDelete:
		t = EventGuildLeave
	case *discordgo.GuildRoleCreate:
		t = EventRoleCreate
	case *discordgo.GuildRoleUpdate:
		t = EventRoleUpdate
	case *discordgo.GuildRoleDelete:
		t = EventRoleDelete
	case *discordgo.GuildBanAdd:
		t = EventBanAdd
	case *discordgo.GuildBanRemove:
		t = EventBanRemove
	case *discordgo.TypingStart:
		t = EventTyping
	default:
		return nil
	}

	return &Event{Type: t, Session: s, Data: data}
}
