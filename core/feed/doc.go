// Package feed consumes the append-only change log of auction documents.
//
// The log is a CouchDB-style _changes feed filtered server-side by a design
// document this package also publishes. The consumer keeps a cursor, polls
// batch by batch, and sleeps between empty batches to avoid busy-polling.
//
// # Delivery semantics
//
// The feed may redeliver documents; consumers downstream are re-entrant and
// state-driven, and terminal outcomes are deduplicated separately. Rows are
// delivered strictly in feed order, one at a time, and an in-flight row is
// never interrupted by shutdown.
package feed
