// Package convos wraps the Bluesky chat API: conversations, direct
// messages, and client-side filtering of both.
package convos

import (
	"context"
	"time"

	"github.com/dmoggles/blueskysocial/bluesky"
)

// ChatService is the slice of the chat API a conversation needs.
// *bluesky.Client implements it.
type ChatService interface {
	GetMessages(ctx context.Context, convoID string) ([]bluesky.MessageView, error)
	SendMessage(ctx context.Context, convoID, text string) (*bluesky.MessageView, error)
}

// Convo is a conversation between the authenticated user and one other
// participant.
type Convo struct {
	view       bluesky.ConvoView
	selfHandle string
	chat       ChatService
}

// New wraps a conversation view. selfHandle is the authenticated user's
// handle, used to pick out the other participant.
func New(view bluesky.ConvoView, selfHandle string, chat ChatService) *Convo {
	return &Convo{view: view, selfHandle: selfHandle, chat: chat}
}

// ID returns the conversation ID.
func (c *Convo) ID() string {
	return c.view.ID
}

// Participant returns the handle of the other member of the conversation.
func (c *Convo) Participant() string {
	for _, m := range c.view.Members {
		if m.Handle != c.selfHandle {
			return m.Handle
		}
	}
	return ""
}

// UnreadCount returns the number of unread messages.
func (c *Convo) UnreadCount() int {
	return c.view.UnreadCount
}

// Opened reports whether the conversation has been opened.
func (c *Convo) Opened() bool {
	return c.view.Opened
}

// LastMessage returns the text of the last message, or "" when the
// conversation has none.
func (c *Convo) LastMessage() string {
	if c.view.LastMessage == nil {
		return ""
	}
	return c.view.LastMessage.Text
}

// LastMessageTime returns when the last message was sent. The zero time is
// returned when the conversation has no messages or the timestamp does not
// parse.
func (c *Convo) LastMessageTime() time.Time {
	if c.view.LastMessage == nil {
		return time.Time{}
	}
	return parseSentAt(c.view.LastMessage.SentAt)
}

// Messages fetches the conversation's messages, keeping only those that
// pass every given filter.
func (c *Convo) Messages(ctx context.Context, filters ...func(*DirectMessage) bool) ([]*DirectMessage, error) {
	views, err := c.chat.GetMessages(ctx, c.view.ID)
	if err != nil {
		return nil, err
	}

	var messages []*DirectMessage
	for _, view := range views {
		msg := &DirectMessage{view: view, convo: c}
		if matchesAll(msg, filters) {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

// SendMessage sends a direct message in this conversation.
func (c *Convo) SendMessage(ctx context.Context, text string) (*DirectMessage, error) {
	view, err := c.chat.SendMessage(ctx, c.view.ID, text)
	if err != nil {
		return nil, err
	}
	return &DirectMessage{view: *view, convo: c}, nil
}

func matchesAll(msg *DirectMessage, filters []func(*DirectMessage) bool) bool {
	for _, f := range filters {
		if !f(msg) {
			return false
		}
	}
	return true
}

func parseSentAt(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
