package richtext

import "regexp"

// LinkSpan is a markdown link that has been rewritten into plain display
// text. Start and End are character offsets of the visible text within the
// rewritten buffer.
type LinkSpan struct {
	Start int
	End   int
	URL   string
}

// The bracketed body is any bytes, non-greedy, so arbitrary Unicode display
// text is tolerated; the URL part is a strict character class. Whitespace
// just inside the parens is allowed and discarded.
var markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\(\s*(https?://[^\s)]+)\s*\)`)

// RewriteFirstLink finds the leftmost markdown-style link "[text](url)" in
// text and removes the markdown syntax, keeping only the visible text. It
// returns the rewritten text and the span of the visible text within it.
// ok is false when text contains no markdown link; the text is returned
// unchanged.
//
// Removal shifts every offset after the match, so callers handling multiple
// links must re-run the rewrite on the returned text until ok is false
// rather than scanning once. RewriteLinks does exactly that.
func RewriteFirstLink(text string) (rewritten string, span LinkSpan, ok bool) {
	b := []byte(text)
	loc := markdownLinkPattern.FindSubmatchIndex(b)
	if loc == nil {
		return text, LinkSpan{}, false
	}

	charStart := ByteToChar(text, loc[0])
	textStart := ByteToChar(text, loc[2])
	textEnd := ByteToChar(text, loc[3])
	charEnd := ByteToChar(text, loc[1])

	runes := []rune(text)
	rewritten = string(runes[:charStart]) + string(runes[textStart:textEnd]) + string(runes[charEnd:])

	span = LinkSpan{
		Start: charStart,
		End:   charStart + (textEnd - textStart),
		URL:   string(b[loc[4]:loc[5]]),
	}
	return rewritten, span, true
}

// RewriteLinks runs RewriteFirstLink to fixpoint, collecting one span per
// markdown link. Rewriting proceeds left to right, so spans already
// collected are never moved by later rewrites and every returned span is a
// character range into the final text.
func RewriteLinks(text string) (string, []LinkSpan) {
	var spans []LinkSpan
	for {
		rewritten, span, ok := RewriteFirstLink(text)
		if !ok {
			return text, spans
		}
		text = rewritten
		spans = append(spans, span)
	}
}
