package post

import (
	"bytes"
	"context"
	"strings"

	"golang.org/x/net/html"
)

// WebCard is a link-preview card attachment. Building the post fetches the
// target page, reads its Open Graph meta tags, and uploads the og:image (if
// any) as the card thumbnail. Nothing is cached: every build re-fetches.
type WebCard struct {
	url string
}

// NewWebCard creates a link-preview card for the given page URL.
func NewWebCard(url string) *WebCard {
	return &WebCard{url: url}
}

// URL returns the page URL the card points at.
func (w *WebCard) URL() string {
	return w.url
}

func (w *WebCard) isImage() bool { return false }

// embed builds the external embed. Any failure in the chain (HTML fetch,
// thumbnail download, thumbnail upload) is wrapped into a single CardError
// carrying the page URL and the cause.
func (w *WebCard) embed(ctx context.Context, api API) (*Embed, error) {
	card, err := w.fetchCard(ctx, api)
	if err != nil {
		return nil, &CardError{URL: w.url, Err: err}
	}
	return card, nil
}

func (w *WebCard) fetchCard(ctx context.Context, api API) (*Embed, error) {
	page, err := api.FetchURL(ctx, w.url)
	if err != nil {
		return nil, err
	}

	meta := extractOpenGraph(page)
	external := &External{
		URI:         w.url,
		Title:       meta.title,
		Description: meta.description,
	}

	if meta.image != "" {
		imageURL := meta.image
		// Naively turn a relative URL (just a path) into a full URL.
		if !strings.Contains(imageURL, "://") {
			imageURL = w.url + imageURL
		}
		data, err := api.FetchURL(ctx, imageURL)
		if err != nil {
			return nil, err
		}
		thumb, err := api.UploadBlob(ctx, data, imageMimeType)
		if err != nil {
			return nil, err
		}
		external.Thumb = thumb
	}

	return &Embed{Type: ExternalEmbedType, External: external}, nil
}

type openGraphMeta struct {
	title       string
	description string
	image       string
}

// extractOpenGraph tokenizes the page and picks up the og:title,
// og:description, and og:image meta tags. The first occurrence of each tag
// wins; missing tags stay empty.
func extractOpenGraph(page []byte) openGraphMeta {
	var meta openGraphMeta
	z := html.NewTokenizer(bytes.NewReader(page))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return meta
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "meta" || !hasAttr {
				continue
			}
			var property, content string
			for {
				key, val, more := z.TagAttr()
				switch string(key) {
				case "property":
					property = string(val)
				case "content":
					content = string(val)
				}
				if !more {
					break
				}
			}
			switch property {
			case "og:title":
				if meta.title == "" {
					meta.title = content
				}
			case "og:description":
				if meta.description == "" {
					meta.description = content
				}
			case "og:image":
				if meta.image == "" {
					meta.image = content
				}
			}
		}
	}
}
