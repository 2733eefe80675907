package post

import (
	"context"

	"github.com/dmoggles/blueskysocial/bluesky"
)

// HandleResolver resolves a handle to a DID. An unresolvable handle is
// reported as bluesky.ErrInvalidHandle; any other error is treated as a
// transport or server failure.
type HandleResolver interface {
	ResolveHandle(ctx context.Context, handle string) (string, error)
}

// BlobUploader uploads raw bytes with a MIME type and returns the blob
// reference to place in an embed.
type BlobUploader interface {
	UploadBlob(ctx context.Context, data []byte, mimeType string) (*bluesky.BlobRef, error)
}

// URLFetcher downloads an arbitrary URL. Used only by the link-card path
// for the page HTML and its thumbnail image.
type URLFetcher interface {
	FetchURL(ctx context.Context, url string) ([]byte, error)
}

// API is the full set of network collaborators a build needs.
// *bluesky.Client implements it.
type API interface {
	HandleResolver
	BlobUploader
	URLFetcher
}
