package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShortText(t *testing.T) {
	chunks, err := Split("short text", 3000, 200)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

func TestSplitInvalidParams(t *testing.T) {
	_, err := Split("text", 0, 0)
	assert.Error(t, err)
	_, err = Split("text", 100, -1)
	assert.Error(t, err)
	_, err = Split("text", 100, 100)
	assert.Error(t, err)
	_, err = Split("text", 100, 150)
	assert.Error(t, err)
}

func TestSplitOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 100) // 1000 runes
	chunks, err := Split(text, 300, 50)
	require.NoError(t, err)

	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		curr := []rune(chunks[i])
		// Each chunk starts with the last 50 runes of its predecessor.
		assert.Equal(t, string(prev[len(prev)-50:]), string(curr[:50]))
	}
}

func TestSplitChunkCount(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		size    int
		overlap int
	}{
		{"exact single chunk", 3000, 3000, 200},
		{"one rune past a chunk", 3001, 3000, 200},
		{"several windows", 10000, 3000, 200},
		{"no overlap", 10000, 2500, 0},
		{"window boundary", 5800, 3000, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := strings.Repeat("x", tt.length)
			chunks, err := Split(text, tt.size, tt.overlap)
			require.NoError(t, err)

			step := tt.size - tt.overlap
			want := (tt.length - tt.overlap + step - 1) / step
			if tt.length <= tt.size {
				want = 1
			}
			assert.Len(t, chunks, want)
		})
	}
}

func TestSplitRuneSafety(t *testing.T) {
	text := strings.Repeat("日本語テキスト処理", 100) // 800 runes, multi-byte
	chunks, err := Split(text, 300, 30)
	require.NoError(t, err)
	for _, c := range chunks {
		for _, r := range c {
			assert.NotEqual(t, '�', r)
		}
	}

	// Reassembling without the overlapping prefixes restores the text.
	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0])
	for _, c := range chunks[1:] {
		runes := []rune(c)
		rebuilt.WriteString(string(runes[30:]))
	}
	assert.Equal(t, text, rebuilt.String())
}
