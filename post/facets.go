package post

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmoggles/blueskysocial/bluesky"
	"github.com/dmoggles/blueskysocial/richtext"
)

// assembleFacets converts the rich-link spans and the mention, bare-URL, and
// hashtag scans of text into wire facets. All spans are character offsets
// into text; the produced facets index UTF-8 byte offsets.
//
// Mentions are resolved to DIDs through resolver. A handle the service
// reports as unresolvable is silently dropped and stays plain text; any
// other resolver failure aborts the build.
//
// Facets are appended in scan order (rich links, mentions, bare URLs,
// hashtags) and stable-sorted by byte start, so that order also decides ties.
func assembleFacets(ctx context.Context, resolver HandleResolver, text string, links []richtext.LinkSpan) ([]Facet, error) {
	var facets []Facet

	for _, l := range links {
		facets = append(facets, linkFacet(text, l.Start, l.End, l.URL))
	}

	for _, m := range richtext.ScanMentions(text) {
		did, err := resolver.ResolveHandle(ctx, m.Value)
		if err != nil {
			if errors.Is(err, bluesky.ErrInvalidHandle) {
				continue
			}
			return nil, fmt.Errorf("resolve mention @%s: %w", m.Value, err)
		}
		facets = append(facets, Facet{
			Index:    byteRange(text, m.Start, m.End),
			Features: []Feature{{Type: MentionFeatureType, DID: did}},
		})
	}

	for _, u := range richtext.ScanURLs(text) {
		facets = append(facets, linkFacet(text, u.Start, u.End, u.Value))
	}

	for _, h := range richtext.ScanHashtags(text) {
		facets = append(facets, Facet{
			Index:    byteRange(text, h.Start, h.End),
			Features: []Feature{{Type: TagFeatureType, Tag: h.Value}},
		})
	}

	slices.SortStableFunc(facets, func(a, b Facet) int {
		return a.Index.ByteStart - b.Index.ByteStart
	})
	return facets, nil
}

func linkFacet(text string, start, end int, uri string) Facet {
	return Facet{
		Index:    byteRange(text, start, end),
		Features: []Feature{{Type: LinkFeatureType, URI: uri}},
	}
}

func byteRange(text string, start, end int) ByteSlice {
	return ByteSlice{
		ByteStart: richtext.CharToByte(text, start),
		ByteEnd:   richtext.CharToByte(text, end),
	}
}
