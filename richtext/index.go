// Package richtext implements the text scanning and rewriting used to
// annotate Bluesky posts. Facet spans are discovered by regex scans over the
// UTF-8 byte encoding of the post text and reported in character offsets; the
// wire format wants byte offsets, so the package also converts between the
// two index spaces.
package richtext

import "unicode/utf8"

// CharToByte converts a character index in text to the corresponding byte
// index in its UTF-8 encoding. Index 0 maps to 0, and any index at or beyond
// the number of characters clamps to the total byte length.
func CharToByte(text string, charIndex int) int {
	if charIndex <= 0 {
		return 0
	}
	if charIndex >= utf8.RuneCountInString(text) {
		return len(text)
	}
	byteIndex := 0
	for i := 0; i < charIndex; i++ {
		_, size := utf8.DecodeRuneInString(text[byteIndex:])
		byteIndex += size
	}
	return byteIndex
}

// ByteToChar converts a byte index in the UTF-8 encoding of text to the
// corresponding character index. Index 0 maps to 0, and any index at or
// beyond the byte length clamps to the total character count. A byte index
// that lands in the middle of a multi-byte sequence rounds down to the start
// of that character; rounding down keeps spans computed before a text
// rewrite consistent with the rewritten buffer.
func ByteToChar(text string, byteIndex int) int {
	if byteIndex <= 0 {
		return 0
	}
	if byteIndex >= len(text) {
		return utf8.RuneCountInString(text)
	}
	for byteIndex > 0 && !utf8.RuneStart(text[byteIndex]) {
		byteIndex--
	}
	return utf8.RuneCountInString(text[:byteIndex])
}
