package post

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardPage = `<html><head>
<meta property="og:title" content="Example Title" />
<meta property="og:description" content="An example page." />
<meta property="og:image" content="https://example.com/thumb.png" />
</head><body></body></html>`

func TestWebCardEmbed(t *testing.T) {
	api := &fakeAPI{pages: map[string][]byte{
		"https://example.com/page":      []byte(cardPage),
		"https://example.com/thumb.png": []byte("thumbdata"),
	}}

	card := NewWebCard("https://example.com/page")
	embed, err := card.embed(context.Background(), api)
	require.NoError(t, err)

	assert.Equal(t, ExternalEmbedType, embed.Type)
	require.NotNil(t, embed.External)
	assert.Equal(t, "https://example.com/page", embed.External.URI)
	assert.Equal(t, "Example Title", embed.External.Title)
	assert.Equal(t, "An example page.", embed.External.Description)
	require.NotNil(t, embed.External.Thumb)

	require.Len(t, api.uploads, 1)
	assert.Equal(t, "image/png", api.uploads[0].mimeType)
	assert.Equal(t, []byte("thumbdata"), api.uploads[0].data)
}

func TestWebCardRelativeThumbnailURL(t *testing.T) {
	page := `<meta property="og:title" content="T"/><meta property="og:image" content="/thumb.png"/>`
	api := &fakeAPI{pages: map[string][]byte{
		"https://example.com":           []byte(page),
		"https://example.com/thumb.png": []byte("thumbdata"),
	}}

	card := NewWebCard("https://example.com")
	_, err := card.embed(context.Background(), api)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com", "https://example.com/thumb.png"}, api.fetchedURLs)
}

func TestWebCardMissingTags(t *testing.T) {
	api := &fakeAPI{pages: map[string][]byte{
		"https://example.com": []byte("<html><head></head></html>"),
	}}

	card := NewWebCard("https://example.com")
	embed, err := card.embed(context.Background(), api)
	require.NoError(t, err)

	assert.Empty(t, embed.External.Title)
	assert.Empty(t, embed.External.Description)
	assert.Nil(t, embed.External.Thumb)
	assert.Empty(t, api.uploads)
}

func TestWebCardFetchFailureWrapsCardError(t *testing.T) {
	cause := errors.New("connection refused")
	api := &fakeAPI{fetchErr: cause}

	card := NewWebCard("https://example.com")
	_, err := card.embed(context.Background(), api)

	var cardErr *CardError
	require.ErrorAs(t, err, &cardErr)
	assert.Equal(t, "https://example.com", cardErr.URL)
	assert.ErrorIs(t, err, cause)
}

func TestWebCardUploadFailureWrapsCardError(t *testing.T) {
	cause := errors.New("blob rejected")
	api := &fakeAPI{
		pages: map[string][]byte{
			"https://example.com":           []byte(cardPage),
			"https://example.com/thumb.png": []byte("thumbdata"),
		},
		uploadErr: cause,
	}

	card := NewWebCard("https://example.com")
	_, err := card.embed(context.Background(), api)

	var cardErr *CardError
	require.ErrorAs(t, err, &cardErr)
	assert.ErrorIs(t, err, cause)
}

func TestExtractOpenGraphFirstTagWins(t *testing.T) {
	page := `<meta property="og:title" content="first"/><meta property="og:title" content="second"/>`
	meta := extractOpenGraph([]byte(page))
	assert.Equal(t, "first", meta.title)
}
