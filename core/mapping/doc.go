// Package mapping provides the processed-auctions idempotency store.
//
// The changes feed may redeliver an auction document; the embedded-auction
// family uses this store to guarantee a terminal outcome is reconciled at
// most once per auction id. The store is a plain key set: Has reports whether
// an id was handled, Put marks it.
//
// # Backends
//
// Selected by configuration:
//   - sqlite: durable local file (default), survives restarts
//   - mysql: durable shared database
//   - redis: fast cache for deployments that already run one
package mapping
