package embedded

import (
	"context"
	"testing"
	"time"

	"auction-courier/core/gateway"
	gatewaymocks "auction-courier/core/gateway/mocks"
	"auction-courier/core/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore is an in-memory processed-auctions mapping for tests.
type memStore struct {
	keys map[string]bool
}

func newMemStore() *memStore { return &memStore{keys: map[string]bool{}} }

func (s *memStore) Has(ctx context.Context, key string) (bool, error) { return s.keys[key], nil }

func (s *memStore) Put(ctx context.Context, key string) error {
	s.keys[key] = true
	return nil
}

type embeddedMocks struct {
	lots      *gatewaymocks.LotGateway
	auctions  *gatewaymocks.AuctionGateway
	contracts *gatewaymocks.ContractGateway
	processed *memStore
}

func newTestStrategy() (*Strategy, *embeddedMocks) {
	m := &embeddedMocks{
		lots:      new(gatewaymocks.LotGateway),
		auctions:  new(gatewaymocks.AuctionGateway),
		contracts: new(gatewaymocks.ContractGateway),
		processed: newMemStore(),
	}
	policy := retry.NewPolicyWith(2, time.Millisecond, zap.NewNop())
	s := New(m.lots, m.auctions, m.contracts, m.processed, policy, zap.NewNop())
	return s, m
}

func completeAuction(id, lotID string) gateway.Auction {
	return gateway.Auction{
		ID:            id,
		Status:        gateway.AuctionStatusComplete,
		Type:          "sellout.english",
		LotID:         lotID,
		ContractTerms: map[string]any{"type": "lease"},
		Contracts: []map[string]any{{
			"awardID":    "award-1",
			"contractID": "UA-2026-C1",
			"items":      []any{map[string]any{"id": "item-1"}},
			"suppliers":  []any{map[string]any{"name": "ACME"}},
			"value":      map[string]any{"amount": 1000},
			"dateSigned": "2026-08-30T12:00:00Z",
			"documents":  []any{},
		}},
	}
}

func lotWithSubRecords(lotID, auctionID string) gateway.Lot {
	return gateway.Lot{
		ID:     lotID,
		Status: gateway.LotStatusAuction,
		Auctions: []gateway.LotAuction{
			{ID: "sub-1", RelatedProcessID: auctionID, Status: gateway.LotAuctionStatusActive},
		},
		Contracts: []gateway.LotContract{{ID: "lc-1"}},
	}
}

func TestProcess_SuccessfulAuctionEndToEnd(t *testing.T) {
	s, m := newTestStrategy()
	ctx := context.Background()
	auction := completeAuction("A2", "L2")

	m.lots.On("Get", mock.Anything, "L2").Return(lotWithSubRecords("L2", "A2"), true, nil)
	m.auctions.On("ExtractCredentials", mock.Anything, "A2").Return("tok-9", nil)

	m.contracts.On("Create", mock.Anything, mock.MatchedBy(func(data map[string]any) bool {
		return data["contractType"] == ContractType &&
			data["contractID"] == "UA-2026-C1" &&
			data["transfer_token"] == "tok-9" &&
			data["merchandisingObject"] == "L2"
	})).Return(gateway.Contract{ID: "C1", ContractID: "UA-2026-C1"}, nil).Once()

	m.lots.On("PatchSubitem", mock.Anything, "L2", "auctions", "sub-1",
		map[string]any{"status": gateway.AuctionStatusComplete}).Return(nil).Once()
	m.lots.On("PatchSubitem", mock.Anything, "L2", "contracts", "lc-1",
		map[string]any{
			"contractID":       "UA-2026-C1",
			"relatedProcessID": "C1",
			"status":           "active",
		}).Return(nil).Once()

	s.Process(ctx, auction)

	m.lots.AssertExpectations(t)
	m.contracts.AssertExpectations(t)

	handled, err := m.processed.Has(ctx, "A2")
	require.NoError(t, err)
	assert.True(t, handled)
}

func TestProcess_RedeliveredAuctionIsNoOp(t *testing.T) {
	s, m := newTestStrategy()
	ctx := context.Background()
	require.NoError(t, m.processed.Put(ctx, "A2"))

	s.Process(ctx, completeAuction("A2", "L2"))

	m.lots.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	m.contracts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProcess_UnsuccessfulAuctionOnlyClosesSubRecord(t *testing.T) {
	s, m := newTestStrategy()
	ctx := context.Background()

	auction := completeAuction("A3", "L3")
	auction.Status = gateway.AuctionStatusCancelled

	m.lots.On("Get", mock.Anything, "L3").Return(lotWithSubRecords("L3", "A3"), true, nil)
	m.lots.On("PatchSubitem", mock.Anything, "L3", "auctions", "sub-1",
		map[string]any{"status": gateway.AuctionStatusCancelled}).Return(nil).Once()

	s.Process(ctx, auction)

	m.lots.AssertExpectations(t)
	m.contracts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.auctions.AssertNotCalled(t, "ExtractCredentials", mock.Anything, mock.Anything)

	handled, _ := m.processed.Has(ctx, "A3")
	assert.True(t, handled)
}

func TestProcess_ContractOnlyAuctionSkipsLot(t *testing.T) {
	s, m := newTestStrategy()
	ctx := context.Background()

	auction := completeAuction("A4", "")

	m.auctions.On("ExtractCredentials", mock.Anything, "A4").Return("tok-4", nil)
	m.contracts.On("Create", mock.Anything, mock.MatchedBy(func(data map[string]any) bool {
		_, hasLot := data["merchandisingObject"]
		return !hasLot
	})).Return(gateway.Contract{ID: "C4"}, nil).Once()

	s.Process(ctx, auction)

	m.contracts.AssertExpectations(t)
	m.lots.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	m.lots.AssertNotCalled(t, "PatchSubitem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	handled, _ := m.processed.Has(ctx, "A4")
	assert.True(t, handled)
}

func TestProcess_TransferTokenFailureLeavesEventUnmarked(t *testing.T) {
	s, m := newTestStrategy()
	ctx := context.Background()
	auction := completeAuction("A5", "L5")

	m.lots.On("Get", mock.Anything, "L5").Return(lotWithSubRecords("L5", "A5"), true, nil)
	m.auctions.On("ExtractCredentials", mock.Anything, "A5").
		Return("", &gateway.StatusError{Code: 403})

	s.Process(ctx, auction)

	m.contracts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.lots.AssertNotCalled(t, "PatchSubitem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	handled, _ := m.processed.Has(ctx, "A5")
	assert.False(t, handled, "a failed report must be retryable on redelivery")
}

func TestProcess_AlreadyReportedSubRecordSkipsWithoutMarking(t *testing.T) {
	s, m := newTestStrategy()
	ctx := context.Background()
	auction := completeAuction("A6", "L6")

	lot := lotWithSubRecords("L6", "A6")
	lot.Auctions[0].Status = gateway.AuctionStatusComplete
	m.lots.On("Get", mock.Anything, "L6").Return(lot, true, nil)

	s.Process(ctx, auction)

	m.contracts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	m.lots.AssertNotCalled(t, "PatchSubitem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProcess_NonTerminalStatusIsIgnored(t *testing.T) {
	s, m := newTestStrategy()

	auction := completeAuction("A7", "L7")
	auction.Status = "active.tendering"

	m.lots.On("Get", mock.Anything, "L7").Return(lotWithSubRecords("L7", "A7"), true, nil)

	s.Process(context.Background(), auction)

	m.contracts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	handled, _ := m.processed.Has(context.Background(), "A7")
	assert.False(t, handled)
}

func TestProcess_MissingLotDropsEvent(t *testing.T) {
	s, m := newTestStrategy()

	m.lots.On("Get", mock.Anything, "L8").Return(gateway.Lot{}, false, nil)

	s.Process(context.Background(), completeAuction("A8", "L8"))

	m.contracts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	handled, _ := m.processed.Has(context.Background(), "A8")
	assert.False(t, handled)
}
