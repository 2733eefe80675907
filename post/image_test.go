package post

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodePNG produces a real PNG of the given dimensions so aspect ratio
// derivation has something to decode.
func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func TestNewImageFromReader(t *testing.T) {
	img, err := NewImageFromReader(bytes.NewReader([]byte("imagedata")), "alt text")
	require.NoError(t, err)
	assert.Equal(t, "alt text", img.Alt())
}

func TestNewImageRejectsOversizedData(t *testing.T) {
	_, err := NewImageFromReader(bytes.NewReader(make([]byte, maxImageBytes+1)), "")
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestNewImageFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pic.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 4, 2), 0o644))

	img, err := NewImage(path, "a picture")
	require.NoError(t, err)
	assert.Equal(t, "a picture", img.Alt())
}

func TestNewImageMissingFile(t *testing.T) {
	_, err := NewImage(filepath.Join(t.TempDir(), "absent.png"), "")
	assert.Error(t, err)
}

func TestImageEmbedUploadsAsPNG(t *testing.T) {
	api := &fakeAPI{}
	img, err := NewImageFromReader(bytes.NewReader(encodePNG(t, 4, 2)), "alt")
	require.NoError(t, err)

	embed, err := img.embed(context.Background(), api)
	require.NoError(t, err)

	require.Len(t, api.uploads, 1)
	assert.Equal(t, "image/png", api.uploads[0].mimeType)
	assert.Equal(t, ImagesEmbedType, embed.Type)
	require.Len(t, embed.Images, 1)
	assert.Equal(t, "alt", embed.Images[0].Alt)
	assert.Equal(t, &AspectRatio{Width: 4, Height: 2}, embed.Images[0].AspectRatio)
}

func TestImageExplicitAspectRatioWins(t *testing.T) {
	img, err := NewImageFromReader(bytes.NewReader(encodePNG(t, 4, 2)), "alt", WithImageAspectRatio(16, 9))
	require.NoError(t, err)

	embed, err := img.embed(context.Background(), &fakeAPI{})
	require.NoError(t, err)
	assert.Equal(t, &AspectRatio{Width: 16, Height: 9}, embed.Images[0].AspectRatio)
}

func TestImageUndecodableDataOmitsAspectRatio(t *testing.T) {
	img, err := NewImageFromReader(bytes.NewReader([]byte("not an image")), "alt")
	require.NoError(t, err)

	embed, err := img.embed(context.Background(), &fakeAPI{})
	require.NoError(t, err)
	assert.Nil(t, embed.Images[0].AspectRatio)
}

func TestImageRequiredAspectRatioFails(t *testing.T) {
	img, err := NewImageFromReader(bytes.NewReader([]byte("not an image")), "broken", RequireImageAspectRatio())
	require.NoError(t, err)

	api := &fakeAPI{}
	_, err = img.embed(context.Background(), api)
	var ratioErr *AspectRatioError
	require.ErrorAs(t, err, &ratioErr)
	assert.Equal(t, "broken", ratioErr.Attachment)
	assert.Empty(t, api.uploads)
}

func TestBuildMergesImageEmbeds(t *testing.T) {
	api := &fakeAPI{}
	first, err := NewImageFromReader(bytes.NewReader(encodePNG(t, 2, 2)), "first")
	require.NoError(t, err)
	second, err := NewImageFromReader(bytes.NewReader(encodePNG(t, 3, 3)), "second")
	require.NoError(t, err)

	p, err := New("two pictures", WithAttachments(first, second))
	require.NoError(t, err)

	record, err := p.Build(context.Background(), api)
	require.NoError(t, err)

	require.NotNil(t, record.Embed)
	assert.Equal(t, ImagesEmbedType, record.Embed.Type)
	require.Len(t, record.Embed.Images, 2)
	assert.Equal(t, "first", record.Embed.Images[0].Alt)
	assert.Equal(t, "second", record.Embed.Images[1].Alt)
	assert.Len(t, api.uploads, 2)
}

func TestImageUploadsEveryBuild(t *testing.T) {
	api := &fakeAPI{}
	img, err := NewImageFromReader(bytes.NewReader(encodePNG(t, 2, 2)), "alt")
	require.NoError(t, err)

	p, err := New("pic", WithAttachments(img))
	require.NoError(t, err)

	_, err = p.Build(context.Background(), api)
	require.NoError(t, err)
	_, err = p.Build(context.Background(), api)
	require.NoError(t, err)
	assert.Len(t, api.uploads, 2)
}
