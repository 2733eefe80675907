package convos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmoggles/blueskysocial/bluesky"
)

func convoWithUnread(handle string, unread int, sentAt string) *Convo {
	return New(bluesky.ConvoView{
		ID: "convo-" + handle,
		Members: []bluesky.ConvoMember{
			{Handle: "me.bsky.social"},
			{Handle: handle},
		},
		UnreadCount: unread,
		LastMessage: &bluesky.MessageView{SentAt: sentAt},
	}, "me.bsky.social", &fakeChat{})
}

func TestComparisonFilters(t *testing.T) {
	busy := convoWithUnread("alice.bsky.social", 5, "2025-01-02T10:00:00Z")
	quiet := convoWithUnread("bob.bsky.social", 0, "2024-12-01T08:00:00Z")

	assert.True(t, GT(ByUnread, 0)(busy))
	assert.False(t, GT(ByUnread, 0)(quiet))

	assert.True(t, LT(ByUnread, 3)(quiet))
	assert.False(t, LT(ByUnread, 3)(busy))

	assert.True(t, Eq(ByParticipant, "alice.bsky.social")(busy))
	assert.False(t, Eq(ByParticipant, "alice.bsky.social")(quiet))

	assert.True(t, Neq(ByParticipant, "alice.bsky.social")(quiet))
	assert.False(t, Neq(ByParticipant, "alice.bsky.social")(busy))
}

func TestTimeFilters(t *testing.T) {
	busy := convoWithUnread("alice.bsky.social", 5, "2025-01-02T10:00:00Z")
	quiet := convoWithUnread("bob.bsky.social", 0, "2024-12-01T08:00:00Z")
	cutoff := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, After(ByLastMessageTime, cutoff)(busy))
	assert.False(t, After(ByLastMessageTime, cutoff)(quiet))

	assert.True(t, Before(ByLastMessageTime, cutoff)(quiet))
	assert.False(t, Before(ByLastMessageTime, cutoff)(busy))
}

func TestCombinators(t *testing.T) {
	busy := convoWithUnread("alice.bsky.social", 5, "2025-01-02T10:00:00Z")
	quiet := convoWithUnread("bob.bsky.social", 0, "2024-12-01T08:00:00Z")

	unread := GT(ByUnread, 0)
	fromAlice := Eq(ByParticipant, "alice.bsky.social")

	assert.True(t, And(unread, fromAlice)(busy))
	assert.False(t, And(unread, fromAlice)(quiet))

	assert.True(t, Or(unread, fromAlice)(busy))
	assert.False(t, Or(unread, fromAlice)(quiet))

	assert.False(t, Not(unread)(busy))
	assert.True(t, Not(unread)(quiet))

	// nested trees compose
	tree := And(Or(unread, fromAlice), Not(Eq(ByParticipant, "bob.bsky.social")))
	assert.True(t, tree(busy))
	assert.False(t, tree(quiet))
}

func TestCombinatorEmptySets(t *testing.T) {
	c := convoWithUnread("alice.bsky.social", 1, "2025-01-02T10:00:00Z")
	assert.True(t, And[*Convo]()(c))
	assert.False(t, Or[*Convo]()(c))
}

func TestMessageFilters(t *testing.T) {
	early := &DirectMessage{view: bluesky.MessageView{ID: "m1", SentAt: "2025-01-01T09:00:00Z"}}
	late := &DirectMessage{view: bluesky.MessageView{ID: "m2", SentAt: "2025-01-05T09:00:00Z"}}
	cutoff := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)

	assert.False(t, After(BySentAt, cutoff)(early))
	assert.True(t, After(BySentAt, cutoff)(late))
}
