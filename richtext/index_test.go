package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharToByte(t *testing.T) {
	tests := []struct {
		name string
		text string
		char int
		want int
	}{
		{"ascii start", "hello", 0, 0},
		{"ascii middle", "hello", 3, 3},
		{"ascii end", "hello", 5, 5},
		{"past end clamps", "hello", 10, 5},
		{"negative clamps", "hello", -1, 0},
		{"after emoji", "a🎉b", 2, 5},
		{"emoji start", "🎉abc", 1, 4},
		{"multiple emoji", "🎉🎤x", 2, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CharToByte(tt.text, tt.char))
		})
	}
}

func TestByteToChar(t *testing.T) {
	tests := []struct {
		name string
		text string
		byte int
		want int
	}{
		{"ascii start", "hello", 0, 0},
		{"ascii middle", "hello", 3, 3},
		{"past end clamps", "hello", 10, 5},
		{"negative clamps", "hello", -2, 0},
		{"after emoji", "a🎉b", 5, 2},
		{"mid codepoint rounds down", "a🎉b", 3, 1},
		{"emoji end", "🎉", 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ByteToChar(tt.text, tt.byte))
		})
	}
}

func TestIndexRoundTripASCII(t *testing.T) {
	text := "plain ascii text"
	for i := 0; i <= len(text); i++ {
		assert.Equal(t, i, CharToByte(text, i))
		assert.Equal(t, i, ByteToChar(text, i))
	}
}
