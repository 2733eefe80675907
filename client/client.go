// Package client is the high-level entry point of the library: it owns the
// authenticated session and exposes posting, replying, threading, and
// conversation listing on top of the lower-level packages.
package client

import (
	"context"
	"fmt"

	"github.com/dmoggles/blueskysocial/bluesky"
	"github.com/dmoggles/blueskysocial/convos"
	"github.com/dmoggles/blueskysocial/post"
)

// Client is an authenticated Bluesky client.
type Client struct {
	api *bluesky.Client
}

// New creates a client for the given PDS. An empty pds selects the default
// service.
func New(pds string) *Client {
	return &Client{api: bluesky.NewClient(pds)}
}

// API exposes the underlying XRPC client.
func (c *Client) API() *bluesky.Client {
	return c.api
}

// Authenticate logs in with a handle and app password.
func (c *Client) Authenticate(ctx context.Context, handle, password string) error {
	return c.api.Login(ctx, handle, password)
}

// Post builds and publishes a post, returning the created record reference.
func (c *Client) Post(ctx context.Context, p *post.Post) (*bluesky.RecordRef, error) {
	return c.publish(ctx, p, nil)
}

// PostReply builds and publishes a post as a reply to the given references.
func (c *Client) PostReply(ctx context.Context, p *post.Post, refs *bluesky.ReplyRef) (*bluesky.RecordRef, error) {
	if err := validateReplyRefs(refs); err != nil {
		return nil, err
	}
	return c.publish(ctx, p, refs)
}

// PostThread publishes posts as a thread: the first becomes the root and
// every subsequent post replies to the previous one. At least two posts are
// required.
func (c *Client) PostThread(ctx context.Context, posts []*post.Post) ([]*bluesky.RecordRef, error) {
	if len(posts) < 2 {
		return nil, fmt.Errorf("at least two posts are required to create a thread, got %d", len(posts))
	}

	refs := make([]*bluesky.RecordRef, 0, len(posts))

	prev, err := c.Post(ctx, posts[0])
	if err != nil {
		return nil, err
	}
	refs = append(refs, prev)

	for _, p := range posts[1:] {
		replyRefs, err := c.ReplyRefs(ctx, prev.URI)
		if err != nil {
			return nil, err
		}
		prev, err = c.PostReply(ctx, p, replyRefs)
		if err != nil {
			return nil, err
		}
		refs = append(refs, prev)
	}
	return refs, nil
}

// Convos lists the authenticated user's conversations.
func (c *Client) Convos(ctx context.Context) ([]*convos.Convo, error) {
	views, err := c.api.ListConvos(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*convos.Convo, 0, len(views))
	for _, view := range views {
		list = append(list, convos.New(view, c.api.Handle(), c.api))
	}
	return list, nil
}

func (c *Client) publish(ctx context.Context, p *post.Post, refs *bluesky.ReplyRef) (*bluesky.RecordRef, error) {
	if !c.api.Authenticated() {
		return nil, bluesky.ErrNotAuthenticated
	}

	record, err := p.Build(ctx, c.api)
	if err != nil {
		return nil, err
	}
	record.Reply = refs

	return c.api.CreateRecord(ctx, bluesky.PostCollection, record)
}

func validateReplyRefs(refs *bluesky.ReplyRef) error {
	switch {
	case refs == nil:
		return fmt.Errorf("reply references are required")
	case refs.Root.URI == "" || refs.Root.CID == "":
		return fmt.Errorf("root reference requires both uri and cid")
	case refs.Parent.URI == "" || refs.Parent.CID == "":
		return fmt.Errorf("parent reference requires both uri and cid")
	}
	return nil
}
