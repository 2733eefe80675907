package post

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/disintegration/imaging"
)

// imageMimeType is used for every image upload regardless of the original
// format.
const imageMimeType = "image/png"

// maxImageBytes is the blob size limit the service enforces on images.
const maxImageBytes = 1_000_000

// Image is an image attachment. The image data is loaded and size-checked at
// construction; upload happens on each Build (image blobs are not cached
// across builds).
type Image struct {
	alt                string
	data               []byte
	aspectRatio        *AspectRatio
	requireAspectRatio bool
}

// ImageOption configures an Image.
type ImageOption func(*Image)

// WithImageAspectRatio sets an explicit aspect ratio, which takes priority
// over deriving one from the image data.
func WithImageAspectRatio(width, height int) ImageOption {
	return func(img *Image) {
		img.aspectRatio = &AspectRatio{Width: width, Height: height}
	}
}

// RequireImageAspectRatio makes an unresolvable aspect ratio a build error
// instead of omitting the field.
func RequireImageAspectRatio() ImageOption {
	return func(img *Image) {
		img.requireAspectRatio = true
	}
}

// NewImage loads an image from a local file. alt is the accessibility
// description shown where the image cannot be.
func NewImage(path string, alt string, opts ...ImageOption) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image file: %w", err)
	}
	return newImage(data, alt, opts...)
}

// NewImageFromURL downloads an image.
func NewImageFromURL(ctx context.Context, url string, alt string, opts ...ImageOption) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("download image: HTTP error (status %d)", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	return newImage(data, alt, opts...)
}

// NewImageFromReader reads image data from r.
func NewImageFromReader(r io.Reader, alt string, opts ...ImageOption) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image data: %w", err)
	}
	return newImage(data, alt, opts...)
}

func newImage(data []byte, alt string, opts ...ImageOption) (*Image, error) {
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("%w: %d bytes maximum, got %d bytes", ErrImageTooLarge, maxImageBytes, len(data))
	}
	img := &Image{alt: alt, data: data}
	for _, opt := range opts {
		opt(img)
	}
	return img, nil
}

// Alt returns the accessibility description.
func (img *Image) Alt() string {
	return img.alt
}

func (img *Image) isImage() bool { return true }

func (img *Image) embed(ctx context.Context, api API) (*Embed, error) {
	ratio, err := img.resolveAspectRatio()
	if err != nil {
		return nil, err
	}

	blob, err := api.UploadBlob(ctx, img.data, imageMimeType)
	if err != nil {
		return nil, err
	}

	return &Embed{
		Type: ImagesEmbedType,
		Images: []EmbeddedImage{{
			Alt:         img.alt,
			Image:       blob,
			AspectRatio: ratio,
		}},
	}, nil
}

// resolveAspectRatio prefers an explicit ratio, then tries to derive one
// from the image bytes. A missing ratio is an error only when the image was
// marked as requiring one; otherwise the field is omitted.
func (img *Image) resolveAspectRatio() (*AspectRatio, error) {
	if img.aspectRatio != nil {
		return img.aspectRatio, nil
	}
	ratio := imageAspectRatio(img.data)
	if ratio == nil && img.requireAspectRatio {
		return nil, &AspectRatioError{Attachment: img.alt}
	}
	return ratio, nil
}

// imageAspectRatio derives width and height by decoding the image data.
// Returns nil when the data does not decode as an image.
func imageAspectRatio(data []byte) *AspectRatio {
	decoded, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	bounds := decoded.Bounds()
	return &AspectRatio{Width: bounds.Dx(), Height: bounds.Dy()}
}
