package post

import (
	"context"
	"fmt"

	"github.com/dmoggles/blueskysocial/bluesky"
)

// fakeAPI is a canned API implementation for build tests. Zero value
// resolves every handle to "did:plc:test" and uploads every blob.
type fakeAPI struct {
	dids        map[string]string // handle -> did, nil means resolve all
	resolveErr  error
	uploadErr   error
	uploads     []fakeUpload
	pages       map[string][]byte // url -> body for FetchURL
	fetchErr    error
	fetchedURLs []string
}

type fakeUpload struct {
	data     []byte
	mimeType string
}

func (f *fakeAPI) ResolveHandle(ctx context.Context, handle string) (string, error) {
	if f.resolveErr != nil {
		return "", f.resolveErr
	}
	if f.dids == nil {
		return "did:plc:test", nil
	}
	did, ok := f.dids[handle]
	if !ok {
		return "", fmt.Errorf("%w: %s", bluesky.ErrInvalidHandle, handle)
	}
	return did, nil
}

func (f *fakeAPI) UploadBlob(ctx context.Context, data []byte, mimeType string) (*bluesky.BlobRef, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploads = append(f.uploads, fakeUpload{data: data, mimeType: mimeType})
	return &bluesky.BlobRef{
		Type:     "blob",
		MimeType: mimeType,
		Size:     len(data),
		Ref:      bluesky.BlobLink{Link: fmt.Sprintf("link-%d", len(f.uploads))},
	}, nil
}

func (f *fakeAPI) FetchURL(ctx context.Context, url string) ([]byte, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	f.fetchedURLs = append(f.fetchedURLs, url)
	body, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("no page for %s", url)
	}
	return body, nil
}
