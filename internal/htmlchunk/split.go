package htmlchunk

import (
	"errors"
	"io"
	"strings"
)

// prepareTokenGroups streams the tokenizer output into maximal top-level
// balanced groups: tokens accumulate into the current group until the open
// stack returns to empty, at which point the group flushes. Every token
// appears in exactly one output group.
//
// Most of the HTML this splitter handles is markdown-like formatting
// converted to HTML, so there is rarely a root element: text mostly looks
// like "Some text <b>bold <i>italic</i></b> blah blah", a handful of
// sibling groups rather than one big tree.
func prepareTokenGroups(html string) ([]TokenGroup, error) {
	var (
		groups []TokenGroup
		stack  []Token
		cur    TokenGroup
	)

	tz := NewTokenizer(html)

	for {
		tok, err := tz.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, err
		}

		cur.push(tok)

		switch tok.Kind() {
		case KindOpenTag:
			stack = append(stack, tok)
		case KindCloseTag:
			if len(stack) == 0 {
				return nil, &UnbalancedTokenError{Token: tok}
			}

			stack = stack[:len(stack)-1]
		case KindText:
		}

		if len(stack) == 0 {
			groups = append(groups, cur)
			cur = TokenGroup{}
		}
	}

	if len(stack) > 0 {
		return nil, &UnbalancedTokenError{Token: stack[len(stack)-1]}
	}

	return groups, nil
}

// Split divides text into an ordered list of chunks, each at most
// maxChunkSize bytes, preserving the markup's meaning: every chunk is a
// self-contained balanced fragment, and the chunks' tag-stripped
// concatenation equals the input's tag-stripped content.
//
// Tags named in noSplit are kept intact inside a single chunk whenever their
// subtree fits the budget on its own.
//
// We prefer starting a new chunk over tightly packing the current one:
// readability in chat-like targets beats density. If a no-split subtree is
// intrinsically larger than maxChunkSize, Split still returns its best-effort
// chunks alongside *SplitExceededTheLimitError.
func Split(text string, maxChunkSize int, noSplit []string) ([]string, error) {
	if maxChunkSize <= 0 {
		return nil, &InvalidLenError{Size: maxChunkSize}
	}

	groups, err := prepareTokenGroups(text)
	if err != nil {
		return nil, err
	}

	var (
		chunks      []string
		chunk       strings.Builder
		hasExceeded bool
	)

	flush := func() {
		if chunk.Len() == 0 {
			return
		}

		chunks = append(chunks, chunk.String())
		chunk.Reset()
	}

	for _, tg := range groups {
		if chunk.Len()+tg.Len <= maxChunkSize {
			chunk.WriteString(tg.String())
			continue
		}

		if tg.Len <= maxChunkSize {
			flush()
			chunks = append(chunks, tg.String())

			continue
		}

		flush()

		subGroups, err := tg.Subdivide(maxChunkSize, noSplit)
		if err != nil {
			var exceeded *SubdividedExceedingTheLimitError
			if errors.As(err, &exceeded) {
				hasExceeded = true
				subGroups = exceeded.Groups
			} else {
				return nil, err
			}
		}

		for _, sg := range subGroups {
			chunks = append(chunks, sg.String())
		}
	}

	flush()

	if hasExceeded {
		return chunks, &SplitExceededTheLimitError{Chunks: chunks}
	}

	return chunks, nil
}
