// Package htmlchunk splits lightweight HTML (the kind produced by rendering
// messenger-flavored markdown: bold, italics, links, code, spoilers, emoji
// tags) into an ordered sequence of chunks, each no larger than a
// caller-supplied byte budget, without breaking the markup.
//
// The entry point is Split. It tokenizes the input, partitions it into
// top-level balanced groups, and greedily packs those groups into chunks,
// falling back to TokenGroup.Subdivide for any single group that alone
// exceeds the budget.
//
// The package does no I/O, holds no state between calls, and is safe to call
// concurrently on independent inputs: a Token borrows its Slice from the
// input string for as long as the caller keeps that string alive.
package htmlchunk
