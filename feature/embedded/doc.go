// Package embedded processes auctions over lots that keep per-auction state
// in embedded sub-records, each back-referencing its auction through
// relatedProcessID. Lot locking for this family happens upstream, so only
// terminal outcomes are reported here.
//
// # Idempotency
//
// The feed may redeliver a terminal event. Two guards keep the externally
// visible effect at most once: the processed-auctions mapping is consulted
// before any remote mutation, and a lot sub-record that is no longer active
// short-circuits as already reported. Successful outcomes create a contract
// from the auction's own contract data, augmented with a transfer token
// extracted from the auction resource; failure to obtain the token aborts
// without marking the event handled, so a later delivery retries the whole
// report.
package embedded
