package post

import "context"

// Attachment is content embedded in a post: an Image, a Video, or a
// WebCard. The set of kinds is closed; each kind knows how to upload what it
// needs and produce its embed fragment.
type Attachment interface {
	// embed uploads the attachment's data through api and returns its
	// embed fragment.
	embed(ctx context.Context, api API) (*Embed, error)

	// isImage distinguishes the repeatable image kind from the
	// single-occurrence kinds for the cardinality check.
	isImage() bool
}

// resolveEmbed builds the embed section for a validated, homogeneous
// attachment list. With several images, each contributes one entry and the
// fragments are merged; mutual exclusivity guarantees the non-image kinds
// never take part in a merge.
func resolveEmbed(ctx context.Context, api API, attachments []Attachment) (*Embed, error) {
	if len(attachments) == 0 {
		return nil, nil
	}

	var merged *Embed
	for _, a := range attachments {
		fragment, err := a.embed(ctx, api)
		if err != nil {
			return nil, err
		}
		if merged == nil {
			merged = fragment
			continue
		}
		merged.Images = append(merged.Images, fragment.Images...)
	}
	return merged, nil
}
