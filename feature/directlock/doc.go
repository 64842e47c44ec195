// Package directlock processes auctions over lots that carry the lock state
// themselves: a top-level status and an ordered claimant list whose last
// entry is the auction currently holding or acquiring the lock.
//
// # State machine
//
// An auction in pending.verification runs the prepare phase: fetch the lot,
// acquire or reuse the lock, convert the lot's assets into auction items and
// documents, then activate lot and auction. Every other status runs the
// report phase, which releases the lock to pending.sold (auction complete)
// or back to active.salable.
//
// Both phases are re-entrant: they read remote state first and route to a
// no-op branch when an earlier delivery already performed the transition. A
// lot locked by a different claimant invalidates the auction; claims are
// rejected, never queued.
package directlock
