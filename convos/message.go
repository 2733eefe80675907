package convos

import (
	"time"

	"github.com/dmoggles/blueskysocial/bluesky"
)

// DirectMessage is a single message within a conversation.
type DirectMessage struct {
	view  bluesky.MessageView
	convo *Convo
}

// ID returns the message ID.
func (m *DirectMessage) ID() string {
	return m.view.ID
}

// Text returns the message text.
func (m *DirectMessage) Text() string {
	return m.view.Text
}

// SentAt returns when the message was sent. The zero time is returned when
// the timestamp does not parse.
func (m *DirectMessage) SentAt() time.Time {
	return parseSentAt(m.view.SentAt)
}

// Convo returns the conversation the message belongs to.
func (m *DirectMessage) Convo() *Convo {
	return m.convo
}
