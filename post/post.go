package post

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dmoggles/blueskysocial/richtext"
)

const (
	// MaxPostLength is the post length limit in characters (not bytes).
	MaxPostLength = 300

	// DefaultMaxImages is the default cap on image attachments.
	DefaultMaxImages = 4
)

// createdAt uses the literal Z suffix, not a +00:00 offset.
const createdAtFormat = "2006-01-02T15:04:05.000000Z07:00"

// Post is a draft post. The text given at construction is the source of
// truth and is never mutated; every Build starts from it. Attachment
// cardinality and exclusivity are validated at construction, so an invalid
// attachment set fails before any network call.
type Post struct {
	text        string
	attachments []Attachment
	langs       []string
	maxImages   int
}

// Option configures a Post at construction.
type Option func(*Post)

// WithAttachments adds attachments to the post. The set must be homogeneous:
// all images (at most the image cap), or exactly one video or web card.
func WithAttachments(attachments ...Attachment) Option {
	return func(p *Post) {
		p.attachments = append(p.attachments, attachments...)
	}
}

// WithMaxImages overrides the image attachment cap.
func WithMaxImages(n int) Option {
	return func(p *Post) {
		p.maxImages = n
	}
}

// New creates a draft post and validates its attachment set.
func New(text string, opts ...Option) (*Post, error) {
	p := &Post{
		text:      text,
		maxImages: DefaultMaxImages,
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := verifyAttachments(p.attachments, p.maxImages); err != nil {
		return nil, err
	}
	return p, nil
}

// AddLanguages adds language tags to the post and returns it, so calls can
// be chained onto New.
func (p *Post) AddLanguages(langs ...string) *Post {
	p.langs = append(p.langs, langs...)
	return p
}

// Text returns the raw text the post was constructed with, before any rich
// link rewriting.
func (p *Post) Text() string {
	return p.text
}

// Attachments returns the attachment set.
func (p *Post) Attachments() []Attachment {
	return p.attachments
}

// Build produces the wire record. It stamps the creation time, rewrites
// markdown links out of the text, assembles facets (resolving mentions
// through api), enforces the length limit, and attaches the embed section.
//
// Build performs network calls (mention resolution, attachment uploads) in
// left-to-right order and returns no partial record: any failure aborts the
// whole build. Calling Build again re-stamps the time and re-resolves
// mentions; attachments other than video are re-uploaded.
func (p *Post) Build(ctx context.Context, api API) (*Record, error) {
	record := &Record{
		Type:      RecordType,
		CreatedAt: time.Now().UTC().Format(createdAtFormat),
	}

	text, links := richtext.RewriteLinks(p.text)
	facets, err := assembleFacets(ctx, api, text, links)
	if err != nil {
		return nil, err
	}

	if n := utf8.RuneCountInString(text); n > MaxPostLength {
		return nil, &PostTooLongError{Text: text, Length: n}
	}

	record.Text = text
	if len(facets) > 0 {
		record.Facets = facets
	}
	if len(p.langs) > 0 {
		record.Langs = p.langs
	}

	embed, err := resolveEmbed(ctx, api, p.attachments)
	if err != nil {
		return nil, err
	}
	record.Embed = embed

	return record, nil
}

// verifyAttachments enforces the attachment invariant: all images up to
// maxImages, or a single non-image attachment. It is a pure function of the
// attachment kinds, so the same invalid set always fails the same way.
func verifyAttachments(attachments []Attachment, maxImages int) error {
	images := 0
	for _, a := range attachments {
		if a.isImage() {
			images++
		}
	}
	if images == len(attachments) {
		if images > maxImages {
			return fmt.Errorf("%w: maximum of %d images allowed per post, got %d", ErrTooManyImages, maxImages, images)
		}
		return nil
	}
	if len(attachments) > 1 {
		return fmt.Errorf("%w: got %d attachments", ErrInvalidAttachments, len(attachments))
	}
	return nil
}
