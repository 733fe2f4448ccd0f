package chunkbot

import "golang.org/x/text/width"

// foldWidth folds fullwidth and halfwidth punctuation/forms to their
// canonical width. Markdown-to-HTML renderers occasionally leave fullwidth
// punctuation in CJK captions. The sender applies it to each chunk right
// before sending, after htmlchunk.Split and the ChunkBytes metric have
// already measured the unfolded chunk.
func foldWidth(s string) string {
	folded, err := width.Fold.String(s)
	if err != nil {
		return s
	}

	return folded
}
