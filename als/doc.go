// Package als reads, edits, and writes Ableton Live set documents (.als
// files): gzip-compressed XML with an <Ableton> wrapper around a single
// <LiveSet> object.
//
// The package exposes typed views over the underlying XML tree (tracks,
// device chains, mixers, sends) and a track insertion/removal engine that
// preserves the document's referential integrity: unique track IDs, unique
// pointee IDs with a monotonically increasing NextPointeeId counter, rewritten
// routing targets, and a send matrix kept aligned with the set of return
// tracks.
//
// Writing an unmodified document reproduces the original XML byte stream
// exactly, including Ableton's prolog and trailing newline.
//
// All mutation is synchronous and in-place; the package does no locking, and
// mutating operations are not transactional. Callers that need atomicity
// should mutate a Clone and swap on success.
package als
