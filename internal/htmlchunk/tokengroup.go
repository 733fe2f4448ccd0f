package htmlchunk

import (
	"errors"
	"io"
	"strings"
)

// TokenGroup is an ordered sequence of tokens with a cached total byte
// length. A group is balanced when every open tag has a matching close tag
// at a later position with proper nesting. The top-level grouper in Split
// only ever produces balanced groups; FromString rejects a close tag with no
// open tag before it, but keeps open tags that are never closed.
//
// A TokenGroup borrows from the input string for its lifetime and is never
// mutated once handed to a caller.
type TokenGroup struct {
	Tokens []Token
	Len    int
}

// FromString tokenizes html into a single TokenGroup without any top-level
// partitioning. It is the secondary surface for callers that already know
// their input is a single balanced fragment, or that want to call Subdivide
// themselves. It returns *UnbalancedTokenError for a close tag with no
// matching open tag; open tags left unclosed are not an error here
// (Subdivide reports them).
func FromString(html string) (TokenGroup, error) {
	var g TokenGroup

	tz := NewTokenizer(html)

	for {
		tok, err := tz.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return g, err
		}

		g.push(tok)
	}

	if _, err := g.prepareOpenCloseMap(); err != nil {
		return g, err
	}

	return g, nil
}

// String serializes the group back into its raw source form.
func (g TokenGroup) String() string {
	var sb strings.Builder

	for _, tok := range g.Tokens {
		sb.WriteString(tok.Slice())
	}

	return sb.String()
}

// push appends token, applying the empty-tag collapse rule: a CloseTag
// immediately following an OpenTag at the tail drops both, so "<b></b>"
// never materializes and never consumes budget.
func (g *TokenGroup) push(tok Token) {
	if tok.IsClose() {
		if n := len(g.Tokens); n > 0 && g.Tokens[n-1].IsOpen() {
			g.pop()
			return
		}
	}

	g.Tokens = append(g.Tokens, tok)
	g.Len += tok.Len()
}

func (g *TokenGroup) pop() Token {
	n := len(g.Tokens)
	tok := g.Tokens[n-1]
	g.Tokens = g.Tokens[:n-1]
	g.Len -= tok.Len()

	return tok
}

func (g *TokenGroup) isAllOpen() bool {
	for _, tok := range g.Tokens {
		if !tok.IsOpen() {
			return false
		}
	}

	return true
}

func (g *TokenGroup) openFromStack(stack []Token) {
	for _, tok := range stack {
		g.push(tok)
	}
}

func (g *TokenGroup) closeFromStack(stack []Token, closeOf map[Token]Token) {
	for i := len(stack) - 1; i >= 0; i-- {
		g.push(closeOf[stack[i]])
	}
}

func newGroupFromStack(stack []Token) TokenGroup {
	var g TokenGroup
	g.openFromStack(stack)

	return g
}

// wrap produces a new balanced group: stack's opens, in order; the tokens in
// g.Tokens[start:end]; then stack's matching closes, in reverse.
func (g *TokenGroup) wrap(start, end int, stack []Token, closeOf map[Token]Token) TokenGroup {
	var out TokenGroup

	out.openFromStack(stack)

	for _, tok := range g.Tokens[start:end] {
		out.push(tok)
	}

	out.closeFromStack(stack, closeOf)

	return out
}

// prepareOpenCloseMap builds the open-tag -> matching-close-tag map with a
// single pass, keeping the first close seen for each open. The map is keyed
// by Token value (slice + index + kind), not by slice text alone: two
// distinct opens can share identical text, and only the byte offset makes
// the identity unique.
//
// A leftover open stack at the end is tolerated here (intermediate groups
// may legitimately have more opens than closes); underflow on a close is
// not, and fails with *UnbalancedTokenError.
func (g *TokenGroup) prepareOpenCloseMap() (map[Token]Token, error) {
	closeOf := make(map[Token]Token, len(g.Tokens))

	var stack []Token

	for _, tok := range g.Tokens {
		switch tok.Kind() {
		case KindOpenTag:
			stack = append(stack, tok)
		case KindCloseTag:
			if len(stack) == 0 {
				return nil, &UnbalancedTokenError{Token: tok}
			}

			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if _, ok := closeOf[open]; !ok {
				closeOf[open] = tok
			}
		case KindText:
		}
	}

	return closeOf, nil
}

// closeTokenIndex locates, by linear scan forward from openIndex, the index
// of the close token paired with g.Tokens[openIndex] in closeOf. This is the
// cost of treating a no-split subtree atomically: one linear scan to its end.
func (g *TokenGroup) closeTokenIndex(openIndex int, closeOf map[Token]Token) (int, error) {
	openTok := g.Tokens[openIndex]

	closeTok, ok := closeOf[openTok]
	if !ok {
		return 0, &UnbalancedTokenError{Token: openTok}
	}

	for i := openIndex; i < len(g.Tokens); i++ {
		if g.Tokens[i] == closeTok {
			return i, nil
		}
	}

	return 0, &UnbalancedTokenError{Token: closeTok}
}

// Subdivide reconstructs g — a balanced group that exceeds maxChunkSize — as
// a sequence of balanced groups each within budget, by closing and
// re-opening the currently-open tag stack at split points and by breaking
// text on whitespace under UTF-8 constraints.
//
// Tags named in noSplit are treated atomically: the subdivider refuses to
// break their subtree, ejecting it whole into its own group instead. If a
// no-split subtree alone exceeds maxChunkSize, Subdivide still returns its
// best-effort groups alongside *SubdividedExceedingTheLimitError.
func (g *TokenGroup) Subdivide(maxChunkSize int, noSplit []string) ([]TokenGroup, error) {
	if maxChunkSize <= 0 {
		return nil, &InvalidLenError{Size: maxChunkSize}
	}

	noSplitSet := make(map[string]struct{}, len(noSplit))
	for _, tag := range noSplit {
		noSplitSet[tag] = struct{}{}
	}

	closeOf, err := g.prepareOpenCloseMap()
	if err != nil {
		return nil, err
	}

	var (
		stack           []Token
		futureCloseLen  int
		groups          []TokenGroup
		cur             TokenGroup
	)

	index := 0
	for index < len(g.Tokens) {
		tok := g.Tokens[index]

		switch tok.Kind() {
		case KindOpenTag:
			next, err := g.subdivideOpenTag(tok, index, &cur, &stack, &futureCloseLen, &groups, closeOf, noSplitSet, maxChunkSize)
			if err != nil {
				return nil, err
			}

			index = next

		case KindCloseTag:
			cur.push(tok)
			futureCloseLen -= tok.Len()

			if len(stack) == 0 {
				return nil, &UnbalancedTokenError{Token: tok}
			}

			stack = stack[:len(stack)-1]
			index++

		case KindText:
			if err := g.subdivideText(tok, &cur, stack, &futureCloseLen, &groups, closeOf, maxChunkSize); err != nil {
				return nil, err
			}

			index++
		}
	}

	if len(stack) > 0 {
		return nil, &UnbalancedTokenError{Token: stack[len(stack)-1]}
	}

	if len(cur.Tokens) > 0 && !cur.isAllOpen() {
		groups = append(groups, cur)
	}

	for _, tg := range groups {
		if tg.Len > maxChunkSize {
			return groups, &SubdividedExceedingTheLimitError{Groups: groups}
		}
	}

	return groups, nil
}

func (g *TokenGroup) subdivideOpenTag(
	tok Token,
	index int,
	cur *TokenGroup,
	stack *[]Token,
	futureCloseLen *int,
	groups *[]TokenGroup,
	closeOf map[Token]Token,
	noSplitSet map[string]struct{},
	maxChunkSize int,
) (int, error) {
	closeTok, ok := closeOf[tok]
	if !ok {
		return 0, &UnbalancedTokenError{Token: tok}
	}

	closeLen := closeTok.Len()
	lenTillClose := closeTok.LenSince(tok)

	if _, noSplit := noSplitSet[tok.TagName()]; noSplit && cur.Len+*futureCloseLen+lenTillClose > maxChunkSize {
		closeIdx, err := g.closeTokenIndex(index, closeOf)
		if err != nil {
			return 0, err
		}

		cur.closeFromStack(*stack, closeOf)
		*groups = append(*groups, *cur)
		*groups = append(*groups, g.wrap(index, closeIdx+1, *stack, closeOf))
		*cur = newGroupFromStack(*stack)

		return closeIdx + 1, nil
	}

	if cur.Len+tok.Len()+closeLen+*futureCloseLen >= maxChunkSize {
		if cur.isAllOpen() {
			return 0, &SubdivisionImpossibleError{Group: *cur}
		}

		cur.closeFromStack(*stack, closeOf)
		*groups = append(*groups, *cur)
		*cur = newGroupFromStack(*stack)
	}

	*futureCloseLen += closeLen
	cur.push(tok)
	*stack = append(*stack, tok)

	return index + 1, nil
}

func (g *TokenGroup) subdivideText(
	tok Token,
	cur *TokenGroup,
	stack []Token,
	futureCloseLen *int,
	groups *[]TokenGroup,
	closeOf map[Token]Token,
	maxChunkSize int,
) error {
	if cur.Len+*futureCloseLen+tok.Len() <= maxChunkSize {
		cur.push(tok)
		return nil
	}

	text := tok.Slice()
	textStart := tok.Index()

	for {
		if *futureCloseLen+cur.Len > maxChunkSize {
			return &SubdivisionImpossibleError{Group: *cur}
		}

		availLen := maxChunkSize - *futureCloseLen - cur.Len
		if availLen == 0 {
			cur.closeFromStack(stack, closeOf)
			*groups = append(*groups, *cur)
			*cur = newGroupFromStack(stack)

			availLen = maxChunkSize - *futureCloseLen - cur.Len
			if availLen == 0 {
				return &SubdivisionImpossibleError{Group: *cur}
			}
		}

		segment, ok := PrefixUpToWhitespace(text, availLen)
		if !ok {
			return &SubdivisionImpossibleUnicodeError{Token: tok}
		}

		cur.push(newToken(KindText, segment, textStart))

		text = text[len(segment):]
		textStart += len(segment)

		cur.closeFromStack(stack, closeOf)
		*groups = append(*groups, *cur)
		*cur = newGroupFromStack(stack)

		if len(text) == 0 {
			break
		}
	}

	return nil
}
