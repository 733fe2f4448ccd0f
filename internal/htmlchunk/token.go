package htmlchunk

import "strings"

// TokenKind distinguishes the three kinds of token the tokenizer produces.
type TokenKind int

const (
	// KindText is literal text between tags.
	KindText TokenKind = iota
	// KindOpenTag is a raw "<...>" opening tag, including self-closing
	// forms like "<br/>", which are treated as opens: there is no separate
	// self-closing kind.
	KindOpenTag
	// KindCloseTag is a raw "</...>" closing tag.
	KindCloseTag
)

// Token is a view into the original input: a slice and the byte offset at
// which it starts. Tokens never copy their source text.
type Token struct {
	kind  TokenKind
	slice string
	index int
}

func newToken(kind TokenKind, slice string, index int) Token {
	return Token{kind: kind, slice: slice, index: index}
}

// Kind reports whether this is text, an open tag, or a close tag.
func (t Token) Kind() TokenKind { return t.kind }

// Slice returns the exact source substring this token covers.
func (t Token) Slice() string { return t.slice }

// Index returns the byte offset of Slice within the original input.
func (t Token) Index() int { return t.index }

// Len returns the byte length of Slice.
func (t Token) Len() int { return len(t.slice) }

// IsOpen reports whether this token is an open tag.
func (t Token) IsOpen() bool { return t.kind == KindOpenTag }

// IsClose reports whether this token is a close tag.
func (t Token) IsClose() bool { return t.kind == KindCloseTag }

// String returns the token's raw source text.
func (t Token) String() string { return t.slice }

// LenSince returns the byte span from start's index through the end of t,
// i.e. t.Index() + t.Len() - start.Index(). Used to measure the full byte
// length of a tag subtree given its opening and closing tokens.
func (t Token) LenSince(start Token) int {
	return t.index + t.Len() - start.index
}

// TagName extracts the tag name from an open or close tag: trim '<', '>',
// leading '/', surrounding whitespace, then take the first
// whitespace-separated word. Self-closing "<br/>" yields "br/". Returns ""
// for non-tag tokens and for the undefined-behavior empty tag "<>".
func (t Token) TagName() string {
	if t.kind != KindOpenTag && t.kind != KindCloseTag {
		return ""
	}

	s := strings.TrimSpace(t.slice)
	s = strings.TrimPrefix(s, "<")
	s = strings.TrimSuffix(s, ">")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "/")

	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}

	return fields[0]
}

// MatchesTagName reports whether TagName() equals tag.
func (t Token) MatchesTagName(tag string) bool {
	return t.TagName() == tag
}
