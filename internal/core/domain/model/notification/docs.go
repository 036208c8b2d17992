// Package notification models push recipients and delivery outcomes.
//
// The package includes:
//   - Token: a device registration against the push transport, unique by its
//     token value and owned by a user
//   - Message: the payload sent to every recipient of one event
//   - Outcome and Delivery: the per-recipient result of a send
//
// A token is created on registration, refreshed (never duplicated) when the
// same value registers again and deleted once the transport reports it as
// permanently invalid.
package notification
