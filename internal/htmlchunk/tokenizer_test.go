package htmlchunk

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, html string) []Token {
	t.Helper()

	tz := NewTokenizer(html)

	var toks []Token

	for {
		tok, err := tz.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		require.NoError(t, err)

		toks = append(toks, tok)
	}

	return toks
}

func TestTokenizerEmptyInput(t *testing.T) {
	tz := NewTokenizer("")

	_, err := tz.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestTokenizerPlainText(t *testing.T) {
	toks := collectTokens(t, "just text, no tags")

	require.Len(t, toks, 1)
	assert.Equal(t, KindText, toks[0].Kind())
	assert.Equal(t, "just text, no tags", toks[0].Slice())
	assert.Equal(t, 0, toks[0].Index())
}

func TestTokenizerLeadingTextThenTag(t *testing.T) {
	toks := collectTokens(t, "Hello <b>world</b>")

	require.Len(t, toks, 4)
	assert.Equal(t, KindText, toks[0].Kind())
	assert.Equal(t, "Hello ", toks[0].Slice())
	assert.Equal(t, KindOpenTag, toks[1].Kind())
	assert.Equal(t, "<b>", toks[1].Slice())
	assert.Equal(t, KindText, toks[2].Kind())
	assert.Equal(t, "world", toks[2].Slice())
	assert.Equal(t, KindCloseTag, toks[3].Kind())
	assert.Equal(t, "</b>", toks[3].Slice())
}

func TestTokenizerIndicesTrackByteOffsets(t *testing.T) {
	toks := collectTokens(t, "ab<i>cd</i>")

	require.Len(t, toks, 4)
	assert.Equal(t, 0, toks[0].Index())
	assert.Equal(t, 2, toks[1].Index())
	assert.Equal(t, 5, toks[2].Index())
	assert.Equal(t, 7, toks[3].Index())
}

func TestTokenizerCloseTagWithWhitespaceBeforeSlash(t *testing.T) {
	toks := collectTokens(t, "< / div>")

	require.Len(t, toks, 1)
	assert.Equal(t, KindCloseTag, toks[0].Kind())
}

func TestTokenizerSelfClosingTagIsOpen(t *testing.T) {
	toks := collectTokens(t, "<br/>")

	require.Len(t, toks, 1)
	assert.Equal(t, KindOpenTag, toks[0].Kind())
}

func TestTokenizerUnterminatedTag(t *testing.T) {
	tz := NewTokenizer("hello <b world")

	tok, err := tz.Next()
	require.NoError(t, err)
	assert.Equal(t, "hello ", tok.Slice())

	_, err = tz.Next()

	var unterminated *UnterminatedTagError
	require.ErrorAs(t, err, &unterminated)
	assert.ErrorIs(t, err, ErrUnterminatedTag)
	assert.Equal(t, 6, unterminated.Index)
}

func TestTokenizerConsecutiveTags(t *testing.T) {
	toks := collectTokens(t, "<b><i></i></b>")

	require.Len(t, toks, 4)
	assert.Equal(t, KindOpenTag, toks[0].Kind())
	assert.Equal(t, KindOpenTag, toks[1].Kind())
	assert.Equal(t, KindCloseTag, toks[2].Kind())
	assert.Equal(t, KindCloseTag, toks[3].Kind())
}
