// ABOUTME: Root gcarena package providing version information and package documentation
// ABOUTME: The collector lives in arena; graph, heapdump and metrics support it

// Package gcarena is an embeddable tracing garbage collector. Values are
// allocated in an arena.Arena and referenced through typed handles. A
// stop-the-world mark-and-sweep collection reclaims everything not
// reachable from the arena's roots, cycles included.
//
// Subpackages:
//   - arena: allocation, rooting, handles and collection
//   - graph: reachability, paths to roots, dominators and retained size over snapshots
//   - heapdump: JSON snapshots, optionally zstd or lz4 compressed
//   - metrics: Prometheus series fed by arena events
package gcarena

// Version is the semantic version of gcarena and its tools.
const Version = "0.1.0-dev"
