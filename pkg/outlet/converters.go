package outlet

import (
	"regexp"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// Converters turn raw command arguments into usable values. A value that
// can't be converted produces a WrongType CommandError, which the dispatcher
// reports back to the channel.

var mentionRe = regexp.MustCompile(`^<@!?([0-9]+)>$`)

// Number converts a raw argument to a number.
func Number(value string) (float64, error) {
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, WrongType("`%s` isn't a number.", value)
	}

	return n, nil
}

// ParseMention extracts the user ID from an @mention argument.
func ParseMention(value string) (string, error) {
	m := mentionRe.FindStringSubmatch(value)
	if m == nil {
		return "", WrongType("`%s` isn't a mention.", value)
	}

	return m[1], nil
}

// Member resolves an @mention argument to a member of the context's guild.
func Member(ctx *Context, value string) (*discordgo.Member, error) {
	id, err := ParseMention(value)
	if err != nil {
		return nil, err
	}

	if member, err := ctx.Session.State.Member(ctx.Message.GuildID, id); err == nil {
		return member, nil
	}

	member, err := ctx.Session.GuildMember(ctx.Message.GuildID, id)
	if err != nil {
		return nil, WrongType("%s isn't a member of this server", value)
	}

	return member, nil
}
