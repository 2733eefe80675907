// Package post builds app.bsky.feed.post records: it scans the post text
// for rich links, mentions, hashtags, and bare URLs, rewrites markdown link
// syntax away, produces byte-indexed facets, and assembles the embed section
// from image, video, or link-card attachments.
package post

import "github.com/dmoggles/blueskysocial/bluesky"

// Record $type values.
const (
	RecordType = "app.bsky.feed.post"

	LinkFeatureType    = "app.bsky.richtext.facet#link"
	MentionFeatureType = "app.bsky.richtext.facet#mention"
	TagFeatureType     = "app.bsky.richtext.facet#tag"

	ImagesEmbedType   = "app.bsky.embed.images"
	VideoEmbedType    = "app.bsky.embed.video"
	ExternalEmbedType = "app.bsky.embed.external"
)

// Record is the wire form of a post, ready to be sent as the record body of
// com.atproto.repo.createRecord.
type Record struct {
	Type      string            `json:"$type"`
	Text      string            `json:"text"`
	CreatedAt string            `json:"createdAt"`
	Langs     []string          `json:"langs,omitempty"`
	Facets    []Facet           `json:"facets,omitempty"`
	Embed     *Embed            `json:"embed,omitempty"`
	Reply     *bluesky.ReplyRef `json:"reply,omitempty"`
}

// Facet annotates a byte range of the post text with one feature.
type Facet struct {
	Index    ByteSlice `json:"index"`
	Features []Feature `json:"features"`
}

// ByteSlice is a [ByteStart, ByteEnd) range of UTF-8 byte offsets into the
// post text.
type ByteSlice struct {
	ByteStart int `json:"byteStart"`
	ByteEnd   int `json:"byteEnd"`
}

// Feature is the typed payload of a facet: a link URI, a mention DID, or a
// hashtag.
type Feature struct {
	Type string `json:"$type"`
	URI  string `json:"uri,omitempty"`
	DID  string `json:"did,omitempty"`
	Tag  string `json:"tag,omitempty"`
}

// Embed is the non-text content section of a post. Exactly one shape is
// populated: Images, Video (with Alt and AspectRatio), or External.
type Embed struct {
	Type        string           `json:"$type"`
	Images      []EmbeddedImage  `json:"images,omitempty"`
	Video       *bluesky.BlobRef `json:"video,omitempty"`
	Alt         string           `json:"alt,omitempty"`
	AspectRatio *AspectRatio     `json:"aspectRatio,omitempty"`
	External    *External        `json:"external,omitempty"`
}

// EmbeddedImage is one entry of an images embed.
type EmbeddedImage struct {
	Alt         string           `json:"alt"`
	Image       *bluesky.BlobRef `json:"image"`
	AspectRatio *AspectRatio     `json:"aspectRatio,omitempty"`
}

// AspectRatio is a width:height display hint.
type AspectRatio struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// External is the body of a link-preview card embed.
type External struct {
	URI         string           `json:"uri"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Thumb       *bluesky.BlobRef `json:"thumb,omitempty"`
}
