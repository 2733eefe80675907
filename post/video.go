package post

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmoggles/blueskysocial/bluesky"
)

// videoMimeTypes maps file extensions to upload MIME types. Matching is
// exact; lowercase extensions are expected.
var videoMimeTypes = map[string]string{
	"mp4":  "video/mp4",
	"mpeg": "video/mpeg",
	"webm": "video/webm",
	"mov":  "video/quicktime",
}

// Video is a video attachment. The file is read and uploaded lazily on the
// first Build, and the uploaded blob reference is cached so repeated builds
// of the same post do not re-upload the video.
type Video struct {
	path               string
	alt                string
	aspectRatio        *AspectRatio
	requireAspectRatio bool

	blob *bluesky.BlobRef // cached across builds
}

// VideoOption configures a Video.
type VideoOption func(*Video)

// WithVideoAspectRatio sets an explicit aspect ratio for the embed.
func WithVideoAspectRatio(width, height int) VideoOption {
	return func(v *Video) {
		v.aspectRatio = &AspectRatio{Width: width, Height: height}
	}
}

// RequireVideoAspectRatio makes a missing aspect ratio a build error.
// Video dimensions are not derived from the file, so this requires
// WithVideoAspectRatio to be set as well.
func RequireVideoAspectRatio() VideoOption {
	return func(v *Video) {
		v.requireAspectRatio = true
	}
}

// NewVideo creates a video attachment for the file at path. The file is not
// touched until the post is built, so a missing file or unsupported format
// surfaces at upload time, not here.
func NewVideo(path string, alt string, opts ...VideoOption) *Video {
	v := &Video{path: path, alt: alt}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Alt returns the accessibility description.
func (v *Video) Alt() string {
	return v.alt
}

func (v *Video) isImage() bool { return false }

func (v *Video) embed(ctx context.Context, api API) (*Embed, error) {
	blob, err := v.upload(ctx, api)
	if err != nil {
		return nil, err
	}

	embed := &Embed{
		Type:  VideoEmbedType,
		Video: blob,
		Alt:   v.alt,
	}
	if v.aspectRatio != nil {
		embed.AspectRatio = v.aspectRatio
	} else if v.requireAspectRatio {
		return nil, &AspectRatioError{Attachment: v.path}
	}
	return embed, nil
}

func (v *Video) upload(ctx context.Context, api API) (*bluesky.BlobRef, error) {
	if v.blob != nil {
		return v.blob, nil
	}

	data, err := os.ReadFile(v.path)
	if err != nil {
		return nil, fmt.Errorf("read video file: %w", err)
	}

	ext := v.path[strings.LastIndex(v.path, ".")+1:]
	mimeType, ok := videoMimeTypes[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVideoFormat, ext)
	}

	blob, err := api.UploadBlob(ctx, data, mimeType)
	if err != nil {
		return nil, err
	}
	v.blob = blob
	return blob, nil
}
