// Package kernel holds the primitives shared by every aggregate of the order
// tracking domain.
//
// Today that is UUID, the identifier type for users (token owners, order
// owners) and for notification token rows. Order identifiers are deliberately
// not UUIDs: the order store hands out opaque keys, see order.ID.
package kernel
