// Package order models production orders (pedidos) as they move through the
// fulfillment pipeline.
//
// The package includes:
//   - Order: the aggregate holding identity, group key, stage markers, tracking
//     code and per-item attributes
//   - Marker: a single stage flag with truthiness semantics (a stored value of
//     true, a non-empty text or a non-zero number counts as set)
//   - Field: the tracked fields in notification priority order
//   - Stage: the five mutually exclusive pipeline stages and Classify
//
// Stage markers are monotonic for reading purposes: a later marker implies the
// earlier ones, so Classify picks the most advanced marker set. Markers may
// still be written in any order by upstream actors; nothing here enforces the
// sequence.
package order
