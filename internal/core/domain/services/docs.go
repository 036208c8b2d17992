// Package services provides the pure domain services of order tracking.
//
// The package includes:
//   - StageProjector: partitions a snapshot of orders into the five pipeline
//     stages and groups sibling line items for display
//   - TransitionDetector: compares the before and after images of one order
//     write and derives at most one StageEvent worth notifying
//
// Both are stateless and safe for concurrent use; neither performs I/O.
package services
