package richtext

import "regexp"

// Span is a single scanner match. Start and End are character offsets into
// the scanned text, [Start, End). Value carries the matched payload: the
// handle without its leading "@", the tag without its leading "#", or the
// URL as written.
type Span struct {
	Start int
	End   int
	Value string
}

var (
	// Handle syntax per https://atproto.com/specs/handle#handle-identifier-syntax.
	// The leading [$|\W] class demands a non-word character before the "@",
	// so a mention at the very start of the text is not matched.
	mentionPattern = regexp.MustCompile(`[$|\W](@([a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)`)

	// Same boundary trick as mentions; a hashtag at position 0 is not
	// matched.
	hashtagPattern = regexp.MustCompile(`[\W](#\w+)`)

	// Naive URL pattern based on https://stackoverflow.com/a/3809435,
	// tweaked so trailing sentence punctuation is not absorbed into the
	// match.
	urlPattern = regexp.MustCompile(`[$|\W](https?://(www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_+.~#?&/=]*[-a-zA-Z0-9@%_+~#/=])?)`)
)

// ScanMentions finds @handle mentions in text. The span value is the handle
// without the leading "@".
func ScanMentions(text string) []Span {
	return scan(text, mentionPattern, 1)
}

// ScanHashtags finds #tag hashtags in text. The span value is the tag
// without the leading "#".
func ScanHashtags(text string) []Span {
	return scan(text, hashtagPattern, 1)
}

// ScanURLs finds bare http(s) URLs in text. The span value is the URL.
func ScanURLs(text string) []Span {
	return scan(text, urlPattern, 0)
}

// scan runs pattern over the UTF-8 bytes of text and reports every match of
// capture group 1 as a character-offset span. trim strips that many leading
// bytes ("@" or "#") from the span value.
func scan(text string, pattern *regexp.Regexp, trim int) []Span {
	b := []byte(text)
	var spans []Span
	for _, loc := range pattern.FindAllSubmatchIndex(b, -1) {
		spans = append(spans, Span{
			Start: ByteToChar(text, loc[2]),
			End:   ByteToChar(text, loc[3]),
			Value: string(b[loc[2]+trim : loc[3]]),
		})
	}
	return spans
}
