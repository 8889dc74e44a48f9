package outlet

import (
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsEmbed(n int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Title: "Commands", Description: "desc"}
	for i := 0; i < n; i++ {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("field %d", i),
			Value: "value",
		})
	}
	return embed
}

func TestPaginateSinglePage(t *testing.T) {
	embed := fieldsEmbed(5)

	pages := paginate(embed, 10)
	require.Len(t, pages, 1)

	// a fitting embed is passed through untouched, no footer added
	assert.Same(t, embed, pages[0])
	assert.Nil(t, pages[0].Footer)
}

func TestPaginateSplitsFields(t *testing.T) {
	pages := paginate(fieldsEmbed(25), 10)
	require.Len(t, pages, 3)

	assert.Len(t, pages[0].Fields, 10)
	assert.Len(t, pages[1].Fields, 10)
	assert.Len(t, pages[2].Fields, 5)

	for i, page := range pages {
		assert.Equal(t, "Commands", page.Title)
		require.NotNil(t, page.Footer)
		assert.Equal(t, fmt.Sprintf("Page %d/3", i+1), page.Footer.Text)
	}
}

func TestPaginateKeepsExistingFooter(t *testing.T) {
	embed := fieldsEmbed(12)
	embed.Footer = &discordgo.MessageEmbedFooter{Text: "outlet"}

	pages := paginate(embed, 10)
	require.Len(t, pages, 2)
	assert.Equal(t, "outlet | Page 1/2", pages[0].Footer.Text)
	assert.Equal(t, "outlet | Page 2/2", pages[1].Footer.Text)
}

func TestPaginateRejectsBadPerPage(t *testing.T) {
	// out-of-range per-page values fall back to the default
	pages := paginate(fieldsEmbed(11), 0)
	assert.Len(t, pages, 2)

	pages = paginate(fieldsEmbed(30), 100)
	assert.Len(t, pages, 3)
}

func TestPaginatorFlip(t *testing.T) {
	p := &Paginator{pages: paginate(fieldsEmbed(25), 10)}

	assert.Nil(t, p.prev())

	second := p.next()
	require.NotNil(t, second)
	assert.Equal(t, "Page 2/3", second.Footer.Text)

	third := p.next()
	require.NotNil(t, third)
	assert.Equal(t, "Page 3/3", third.Footer.Text)

	assert.Nil(t, p.next())

	back := p.prev()
	require.NotNil(t, back)
	assert.Equal(t, "Page 2/3", back.Footer.Text)
}

func TestPaginatorsExpire(t *testing.T) {
	ps := newPaginators()

	live := &Paginator{messageID: "live", expires: time.Now().Add(time.Minute)}
	stale := &Paginator{messageID: "stale", expires: time.Now().Add(-time.Minute)}
	ps.track(live)
	ps.track(stale)

	assert.Same(t, live, ps.lookup("live"))
	assert.Nil(t, ps.lookup("stale"))
}

func TestTrackPrunesExpired(t *testing.T) {
	ps := newPaginators()

	// an expired entry must not linger waiting for a reaction that never
	// comes
	ps.track(&Paginator{messageID: "stale", expires: time.Now().Add(-time.Minute)})
	ps.track(&Paginator{messageID: "live", expires: time.Now().Add(time.Minute)})

	assert.Len(t, ps.open, 1)
	assert.Contains(t, ps.open, "live")
}
