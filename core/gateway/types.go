package gateway

import "encoding/json"

// Lot statuses.
const (
	LotStatusSalable     = "active.salable"
	LotStatusAwaiting    = "active.awaiting"
	LotStatusAuction     = "active.auction"
	LotStatusPendingSold = "pending.sold"
)

// Auction statuses.
const (
	AuctionStatusPendingVerification = "pending.verification"
	AuctionStatusTendering           = "active.tendering"
	AuctionStatusInvalid             = "invalid"
	AuctionStatusComplete            = "complete"
	AuctionStatusCancelled           = "cancelled"
	AuctionStatusUnsuccessful        = "unsuccessful"
)

// LotAuctionStatusActive marks a lot's embedded auction sub-record that has
// not been reported yet.
const LotAuctionStatusActive = "active"

// Auction is a snapshot of one auction document, either delivered by the
// changes feed or fetched directly from the auctions API.
type Auction struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	// Type is the procurementMethodType tag used for dispatch.
	Type string `json:"procurementMethodType"`
	// LotID references the merchandising object this auction sells.
	LotID string `json:"merchandisingObject,omitempty"`
	// ContractTerms is present only for auctions whose terminal outcome
	// produces a contract.
	ContractTerms map[string]any   `json:"contractTerms,omitempty"`
	Contracts     []map[string]any `json:"contracts,omitempty"`
	Items         []Item           `json:"items,omitempty"`
}

// LotAuction is one entry of a lot's auctions list. The wire shape differs
// between the two lot families: a plain auction id string for lots that carry
// a top-level claimant list, or an object with a relatedProcessID
// back-reference for lots with embedded auction sub-records. Both decode into
// this type.
type LotAuction struct {
	ID               string `json:"id,omitempty"`
	RelatedProcessID string `json:"relatedProcessID,omitempty"`
	Status           string `json:"status,omitempty"`
}

func (a *LotAuction) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &a.ID)
	}
	type plain LotAuction
	return json.Unmarshal(b, (*plain)(a))
}

// LotContract is a contract sub-record nested in a lot.
type LotContract struct {
	ID               string `json:"id,omitempty"`
	ContractID       string `json:"contractID,omitempty"`
	RelatedProcessID string `json:"relatedProcessID,omitempty"`
	Status           string `json:"status,omitempty"`
}

// Lot is the sellable bundle of assets whose auction lifecycle this worker
// coordinates. It is always fetched fresh, never cached.
type Lot struct {
	ID string `json:"id"`
	// Rev is the lot's revision, used as an If-Match precondition on the
	// lock-acquiring patch so that two claimants racing for a salable lot
	// cannot both append themselves.
	Rev           string       `json:"rev,omitempty"`
	Status        string       `json:"status"`
	LotIdentifier string       `json:"lotIdentifier,omitempty"`
	Auctions      []LotAuction `json:"auctions,omitempty"`
	Assets        []string     `json:"assets,omitempty"`
	Contracts     []LotContract `json:"contracts,omitempty"`
}

// ClaimantIDs returns the lot's auctions list as plain ids, preserving order.
// The last entry is the current claimant while the lot is locked.
func (l Lot) ClaimantIDs() []string {
	ids := make([]string, 0, len(l.Auctions))
	for _, a := range l.Auctions {
		ids = append(ids, a.ID)
	}
	return ids
}

// LastClaimant returns the id of the lot's current claimant, or "" if the
// auctions list is empty.
func (l Lot) LastClaimant() string {
	if len(l.Auctions) == 0 {
		return ""
	}
	return l.Auctions[len(l.Auctions)-1].ID
}

// LotPatch is a partial lot update. Auctions replaces the whole claimant
// list; the lock-acquire step appends to the list it just read.
type LotPatch struct {
	Status   string   `json:"status,omitempty"`
	Auctions []string `json:"auctions,omitempty"`
}

// AuctionPatch is a partial auction update.
type AuctionPatch struct {
	Status string `json:"status,omitempty"`
	Items  []Item `json:"items,omitempty"`
	// DGFID carries the lot identifier onto the formed auction.
	DGFID string `json:"dgfID,omitempty"`
}

// Item is one sellable position of an auction, converted from an asset.
type Item struct {
	ID                        string           `json:"id,omitempty"`
	Description               string           `json:"description,omitempty"`
	Classification            map[string]any   `json:"classification,omitempty"`
	AdditionalClassifications []map[string]any `json:"additionalClassifications,omitempty"`
	Address                   map[string]any   `json:"address,omitempty"`
	Unit                      map[string]any   `json:"unit,omitempty"`
	Quantity                  json.Number      `json:"quantity,omitempty"`
	Location                  map[string]any   `json:"location,omitempty"`
	Documents                 []Document       `json:"documents,omitempty"`
}

// Asset is a remote asset record. Complex assets nest further items, each
// separately convertible.
type Asset struct {
	ID                        string           `json:"id"`
	Status                    string           `json:"status,omitempty"`
	Title                     string           `json:"title,omitempty"`
	Classification            map[string]any   `json:"classification,omitempty"`
	AdditionalClassifications []map[string]any `json:"additionalClassifications,omitempty"`
	Address                   map[string]any   `json:"address,omitempty"`
	Unit                      map[string]any   `json:"unit,omitempty"`
	Quantity                  json.Number      `json:"quantity,omitempty"`
	Location                  map[string]any   `json:"location,omitempty"`
	Items                     []Item           `json:"items,omitempty"`
	Documents                 []Document       `json:"documents,omitempty"`
}

// Document is a document record attached to an asset, item or auction.
type Document struct {
	ID           string `json:"id,omitempty"`
	Hash         string `json:"hash,omitempty"`
	Description  string `json:"description,omitempty"`
	Title        string `json:"title,omitempty"`
	URL          string `json:"url,omitempty"`
	Format       string `json:"format,omitempty"`
	DocumentType string `json:"documentType,omitempty"`
	DocumentOf   string `json:"documentOf,omitempty"`
	RelatedItem  string `json:"relatedItem,omitempty"`
}

// Contract is a contract created in the contracting service.
type Contract struct {
	ID         string `json:"id"`
	ContractID string `json:"contractID,omitempty"`
	Status     string `json:"status,omitempty"`
}
