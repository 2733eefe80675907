package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmoggles/blueskysocial/bluesky"
)

// ReplyRefs resolves the root and parent references needed to reply to the
// post at parentURI. If the parent is itself a reply, the root of the thread
// is carried over; otherwise the parent is its own root.
func (c *Client) ReplyRefs(ctx context.Context, parentURI string) (*bluesky.ReplyRef, error) {
	repo, collection, rkey, err := bluesky.ParseURI(parentURI)
	if err != nil {
		return nil, err
	}

	parent, err := c.api.GetRecord(ctx, repo, collection, rkey)
	if err != nil {
		return nil, fmt.Errorf("fetch parent record: %w", err)
	}

	parentRef := bluesky.StrongRef{URI: parent.URI, CID: parent.CID}
	rootRef := parentRef

	var value struct {
		Reply *bluesky.ReplyRef `json:"reply"`
	}
	if err := json.Unmarshal(parent.Value, &value); err != nil {
		return nil, fmt.Errorf("decode parent record: %w", err)
	}

	if value.Reply != nil {
		rootRepo, rootCollection, rootKey, err := bluesky.ParseURI(value.Reply.Root.URI)
		if err != nil {
			return nil, err
		}
		root, err := c.api.GetRecord(ctx, rootRepo, rootCollection, rootKey)
		if err != nil {
			return nil, fmt.Errorf("fetch root record: %w", err)
		}
		rootRef = bluesky.StrongRef{URI: root.URI, CID: root.CID}
	}

	return &bluesky.ReplyRef{Root: rootRef, Parent: parentRef}, nil
}
