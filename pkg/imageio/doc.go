// Package imageio discovers, decodes and thumbnails gallery images.
//
// # Discovery
//
// [Scan] lists the files of one folder whose extension is .jpg, .jpeg or
// .png. Matching is case sensitive and subfolders are not traversed.
//
// # Decoding
//
// A [Loader] decodes every discovered file on a bounded worker pool
// (golang.org/x/sync/errgroup) to learn its intrinsic size. Results are
// joined before Load returns, in discovery order. A file that fails to
// decode is logged and returned with a zero size, which the layout engine
// skips; it never aborts the load.
//
// # Thumbnails
//
// A [Thumbnailer] produces resized bitmaps for placements. It owns a
// [Store] of decoded thumbnails keyed by image id and size, guarded by a
// mutex, and optionally a byte cache from
// [github.com/matzehuels/illustgrid/pkg/cache] holding PNG-encoded
// thumbnails across runs. Eviction is explicit: [Store.Reset] when the
// folder changes, [Store.Retain] to drop sizes that are no longer shown.
package imageio
