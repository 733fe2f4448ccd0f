package htmlchunk

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)

	return string(data)
}

// TestSplitLongDocumentAcrossChunkSizes sweeps a realistic, heavily nested
// document across a range of chunk budgets, the way a caller would while
// tuning a message size limit: no chunk may exceed its budget, and the
// chunks' text content must match the original regardless of budget.
//
// Below the size of its biggest sibling group the document needs
// subdividing, which reopens wrapper tags at each split point; the
// tag-stripped content is what's guaranteed to survive, not the raw bytes.
func TestSplitLongDocumentAcrossChunkSizes(t *testing.T) {
	html := readFixture(t, "long.html")
	wantText := textOnly(t, html)

	for _, budget := range []int{100, 200, 400, 800, 1600, 4096} {
		chunks, err := Split(html, budget, nil)
		require.NoErrorf(t, err, "budget=%d", budget)

		var gotText strings.Builder

		for _, c := range chunks {
			require.LessOrEqualf(t, len(c), budget, "budget=%d chunk=%q", budget, c)
			gotText.WriteString(textOnly(t, c))
		}

		require.Equal(t, wantText, gotText.String(), "budget=%d", budget)
	}
}

// textOnly strips all tags, leaving only the tokenizer's Text tokens
// concatenated in order.
func textOnly(t *testing.T, html string) string {
	t.Helper()

	g, err := FromString(html)
	require.NoError(t, err)

	var sb strings.Builder

	for _, tok := range g.Tokens {
		if tok.Kind() == KindText {
			sb.WriteString(tok.Slice())
		}
	}

	return sb.String()
}

func TestSplitShortFixtureSingleChunk(t *testing.T) {
	html := readFixture(t, "short.html")

	chunks, err := Split(html, 4096, nil)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Equal(t, html, chunks[0])
}

// TestSplitSample1NoSplitCodeBlock splits a fixture whose Rust code block
// (398 bytes with its tags) fits the 450-byte budget on its own: with "pre"
// in noSplit the block lands intact in one chunk, the prose before and after
// it goes into separate chunks, and the chunks join back to the input.
func TestSplitSample1NoSplitCodeBlock(t *testing.T) {
	html := readFixture(t, "sample1.html")

	chunks, err := Split(html, 450, []string{"pre"})
	require.NoError(t, err)
	require.Equal(t, html, strings.Join(chunks, ""))

	var sawIntactBlock bool

	for _, c := range chunks {
		if strings.Contains(c, "<pre><code") {
			require.Contains(t, c, "</code></pre>")
			sawIntactBlock = true
		}
	}

	require.True(t, sawIntactBlock)
}
