package htmlchunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenIsClose(t *testing.T) {
	assert.True(t, newToken(KindCloseTag, "</div>", 0).IsClose())
	assert.False(t, newToken(KindOpenTag, "<div>", 0).IsClose())
	assert.False(t, newToken(KindOpenTag, "<br/>", 0).IsClose())
}

func TestTokenTagName(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		want string
	}{
		{"simple open", newToken(KindOpenTag, "<div>", 0), "div"},
		{"simple close", newToken(KindCloseTag, "</div>", 0), "div"},
		{"with attributes", newToken(KindOpenTag, `<div class='main'>`, 0), "div"},
		{"self closing", newToken(KindOpenTag, "<br/>", 0), "br/"},
		{"malformed missing close bracket", newToken(KindOpenTag, "<div", 0), "div"},
		{"text token has no tag name", newToken(KindText, "hello", 0), ""},
		{"empty tag is documented UB, returns empty", newToken(KindOpenTag, "<>", 0), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tok.TagName())
		})
	}
}

func TestTokenMatchesTagName(t *testing.T) {
	assert.True(t, newToken(KindOpenTag, "<div>", 0).MatchesTagName("div"))
	assert.False(t, newToken(KindOpenTag, "<span>", 0).MatchesTagName("div"))
	assert.True(t, newToken(KindOpenTag, "<br/>", 0).MatchesTagName("br/"))
}

func TestTokenLenSince(t *testing.T) {
	tok := newToken(KindText, "Hello", 0)
	assert.Equal(t, tok.Len(), tok.LenSince(tok))

	start := newToken(KindText, "Hello", 10)
	end := newToken(KindText, "World", 100)
	assert.Equal(t, 95, end.LenSince(start))
}
