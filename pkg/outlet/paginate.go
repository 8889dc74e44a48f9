package outlet

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	emojiPrev = "⬅"
	emojiNext = "➡"

	// DefaultPerPage is the default number of embed fields per page
	DefaultPerPage = 10

	// maxPerPage is Discord's embed field limit
	maxPerPage = 25

	// paginatorTTL is how long a paged embed keeps responding to reactions
	paginatorTTL = 2 * time.Minute
)

// Paginator is a sent embed whose fields are split across pages, flipped
// with the arrow reactions by the user it was sent for.
type Paginator struct {
	mu    sync.Mutex
	pages []*discordgo.MessageEmbed
	page  int

	userID    string
	channelID string
	messageID string
	expires   time.Time
}

// paginate splits an embed's fields into page embeds. An embed that fits on
// one page is returned as-is.
func paginate(embed *discordgo.MessageEmbed, perPage int) []*discordgo.MessageEmbed {
	if perPage < 1 || perPage > maxPerPage {
		perPage = DefaultPerPage
	}

	fields := embed.Fields
	if len(fields) <= perPage {
		return []*discordgo.MessageEmbed{embed}
	}

	n := (len(fields) + perPage - 1) / perPage

	pages := make([]*discordgo.MessageEmbed, 0, n)
	for i := 0; i < n; i++ {
		lo := i * perPage
		hi := lo + perPage
		if hi > len(fields) {
			hi = len(fields)
		}

		pages = append(pages, &discordgo.MessageEmbed{
			Title:       embed.Title,
			Description: embed.Description,
			Color:       embed.Color,
			Author:      embed.Author,
			Fields:      fields[lo:hi],
			Footer:      pageFooter(embed, i+1, n),
		})
	}

	return pages
}

func pageFooter(embed *discordgo.MessageEmbed, page, total int) *discordgo.MessageEmbedFooter {
	base := ""
	if embed.Footer != nil && embed.Footer.Text != "" {
		base = embed.Footer.Text + " | "
	}

	return &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%sPage %d/%d", base, page, total),
	}
}

// next flips to the next page, returning it, or nil when already on the last
// page.
func (p *Paginator) next() *discordgo.MessageEmbed {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.page >= len(p.pages)-1 {
		return nil
	}

	p.page++
	return p.pages[p.page]
}

// prev flips to the previous page, returning it, or nil when already on the
// first page.
func (p *Paginator) prev() *discordgo.MessageEmbed {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.page <= 0 {
		return nil
	}

	p.page--
	return p.pages[p.page]
}

// paginators tracks open paged embeds by message ID.
type paginators struct {
	mu   sync.Mutex
	open map[string]*Paginator
}

func newPaginators() *paginators {
	return &paginators{open: make(map[string]*Paginator)}
}

func (ps *paginators) track(p *Paginator) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.prune()
	ps.open[p.messageID] = p
}

// lookup returns the live paginator for a message.
func (ps *paginators) lookup(messageID string) *Paginator {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.prune()

	return ps.open[messageID]
}

// prune drops expired paginators. Called with the mutex held; both track and
// lookup sweep so the map stays bounded even on channels that never react.
func (ps *paginators) prune() {
	now := time.Now()
	for id, p := range ps.open {
		if now.After(p.expires) {
			delete(ps.open, id)
		}
	}
}

// handle is the bot's own reaction route: it flips pages on tracked embeds.
func (ps *paginators) handle(evt *Event) error {
	r, ok := evt.Data.(*discordgo.MessageReactionAdd)
	if !ok {
		return nil
	}

	p := ps.lookup(r.MessageID)
	if p == nil || r.UserID != p.userID {
		return nil
	}

	var target *discordgo.MessageEmbed
	switch r.Emoji.Name {
	case emojiPrev:
		target = p.prev()
	case emojiNext:
		target = p.next()
	default:
		return nil
	}

	if target != nil {
		if _, err := evt.Session.ChannelMessageEditEmbed(r.ChannelID, r.MessageID, target); err != nil {
			return err
		}
	}

	// clear the user's reaction so the button can be pressed again
	_ = evt.Session.MessageReactionRemove(r.ChannelID, r.MessageID, r.Emoji.Name, r.UserID)

	return nil
}
