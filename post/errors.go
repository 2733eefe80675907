package post

import (
	"errors"
	"fmt"
)

var (
	// ErrTooManyImages is returned when a post carries more image
	// attachments than allowed.
	ErrTooManyImages = errors.New("too many images")

	// ErrInvalidAttachments is returned when attachments mix images with a
	// non-image, or carry more than one non-image attachment.
	ErrInvalidAttachments = errors.New("only one non-image attachment allowed per post")

	// ErrImageTooLarge is returned at construction when image data exceeds
	// the blob size limit.
	ErrImageTooLarge = errors.New("image file size too large")

	// ErrUnsupportedVideoFormat is returned at upload time when a video
	// file extension has no known MIME type.
	ErrUnsupportedVideoFormat = errors.New("unsupported video format")
)

// PostTooLongError is returned by Build when the final text exceeds
// MaxPostLength characters. It carries the offending text so callers can log
// it without re-deriving it.
type PostTooLongError struct {
	Text   string
	Length int
}

func (e *PostTooLongError) Error() string {
	return fmt.Sprintf("maximum of %d characters allowed per post, got %d: %s", MaxPostLength, e.Length, e.Text)
}

// AspectRatioError is returned when an attachment requires an aspect ratio
// that was neither supplied nor derivable from its data.
type AspectRatioError struct {
	// Attachment names the offending attachment: an image's alt text or a
	// video's file path.
	Attachment string
}

func (e *AspectRatioError) Error() string {
	return fmt.Sprintf("aspect ratio required but could not be determined for %s", e.Attachment)
}

// CardError wraps any failure in the link-card chain (HTML fetch, parse,
// thumbnail download, thumbnail upload) into one error naming the card URL.
type CardError struct {
	URL string
	Err error
}

func (e *CardError) Error() string {
	return fmt.Sprintf("failed to fetch embed card for %s: %v", e.URL, e.Err)
}

func (e *CardError) Unwrap() error {
	return e.Err
}
