package bluesky

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// ListConvos lists the authenticated user's conversations.
func (c *Client) ListConvos(ctx context.Context) ([]ConvoView, error) {
	if !c.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	status, body, err := c.get(ctx, c.chat+listConvosPath, nil)
	if err != nil {
		return nil, fmt.Errorf("list convos: %w", err)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("list convos: API error (status %d): %s", status, body)
	}

	var result struct {
		Convos []ConvoView `json:"convos"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("list convos: unmarshal response: %w", err)
	}
	return result.Convos, nil
}

// GetMessages fetches the messages of a conversation.
func (c *Client) GetMessages(ctx context.Context, convoID string) ([]MessageView, error) {
	if !c.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	q := url.Values{}
	q.Set("convoId", convoID)

	status, body, err := c.get(ctx, c.chat+getMessagesPath, q)
	if err != nil {
		return nil, fmt.Errorf("get messages: %w", err)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("get messages: API error (status %d): %s", status, body)
	}

	var result struct {
		Messages []MessageView `json:"messages"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("get messages: unmarshal response: %w", err)
	}
	return result.Messages, nil
}

// SendMessage sends a direct message in a conversation and returns the sent
// message as the service recorded it.
func (c *Client) SendMessage(ctx context.Context, convoID, text string) (*MessageView, error) {
	if !c.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	body := sendMessageRequest{
		ConvoID: convoID,
		Message: messageInput{Text: text},
	}

	var msg MessageView
	if err := c.postJSON(ctx, c.chat+sendMessagePath, body, &msg); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return &msg, nil
}

type sendMessageRequest struct {
	ConvoID string       `json:"convoId"`
	Message messageInput `json:"message"`
}

type messageInput struct {
	Text string `json:"text"`
}
