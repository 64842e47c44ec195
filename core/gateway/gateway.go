package gateway

import "context"

// LotGateway is the client for the lots resource. Get reports absence with
// the second return value; errors are reserved for genuine failures.
type LotGateway interface {
	Get(ctx context.Context, id string) (Lot, bool, error)
	Patch(ctx context.Context, id string, patch LotPatch) (Lot, error)
	// PatchWithRev patches the lot with an If-Match precondition on rev. A
	// concurrent writer surfaces as a 412 StatusError.
	PatchWithRev(ctx context.Context, id, rev string, patch LotPatch) (Lot, error)
	// PatchSubitem patches one nested sub-record (auctions, contracts) of
	// the lot.
	PatchSubitem(ctx context.Context, lotID, subitemName, subitemID string, patch map[string]any) error
}

// AuctionGateway is the client for the auctions resource.
type AuctionGateway interface {
	Get(ctx context.Context, id string) (Auction, bool, error)
	Patch(ctx context.Context, id string, patch AuctionPatch) (Auction, error)
	// CreateDocument attaches a document sub-resource to the auction.
	CreateDocument(ctx context.Context, auctionID string, doc Document) (Document, error)
	// ExtractCredentials returns the transfer token owned by the auction.
	ExtractCredentials(ctx context.Context, id string) (string, error)
	// GetFile fetches raw document bytes from the source document store by
	// url.
	GetFile(ctx context.Context, url string) ([]byte, error)
}

// AssetGateway is the client for the assets resource.
type AssetGateway interface {
	Get(ctx context.Context, id string) (Asset, bool, error)
}

// ContractGateway is the client for the contracting resource.
type ContractGateway interface {
	Create(ctx context.Context, data map[string]any) (Contract, error)
}
