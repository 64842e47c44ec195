package directlock

import (
	"context"
	"testing"
	"time"

	storemocks "auction-courier/core/docstore/mocks"
	"auction-courier/core/gateway"
	gatewaymocks "auction-courier/core/gateway/mocks"
	"auction-courier/core/queue"
	"auction-courier/core/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type strategyMocks struct {
	lots     *gatewaymocks.LotGateway
	auctions *gatewaymocks.AuctionGateway
	assets   *gatewaymocks.AssetGateway
	docs     *storemocks.Store
	transfer *queue.Queue
}

func newTestStrategy() (*Strategy, *strategyMocks) {
	m := &strategyMocks{
		lots:     new(gatewaymocks.LotGateway),
		auctions: new(gatewaymocks.AuctionGateway),
		assets:   new(gatewaymocks.AssetGateway),
		docs:     new(storemocks.Store),
		transfer: queue.New(16),
	}
	policy := retry.NewPolicyWith(2, time.Millisecond, zap.NewNop())
	s := New(m.lots, m.auctions, m.assets, m.docs, m.transfer, policy, zap.NewNop())
	return s, m
}

func pendingAuction(id, lotID string) gateway.Auction {
	return gateway.Auction{
		ID:     id,
		Status: gateway.AuctionStatusPendingVerification,
		Type:   "rubble.standard",
		LotID:  lotID,
	}
}

func TestPrepare_SalableLotEndToEnd(t *testing.T) {
	s, m := newTestStrategy()
	ctx := context.Background()

	lot := gateway.Lot{
		ID:            "L1",
		Rev:           "1-a",
		Status:        gateway.LotStatusSalable,
		LotIdentifier: "Q01-L1",
		Assets:        []string{"AS1"},
	}
	m.lots.On("Get", mock.Anything, "L1").Return(lot, true, nil)

	lockPatch := gateway.LotPatch{Status: gateway.LotStatusAwaiting, Auctions: []string{"A1"}}
	locked := lot
	locked.Status = gateway.LotStatusAwaiting
	locked.Auctions = []gateway.LotAuction{{ID: "A1"}}
	m.lots.On("PatchWithRev", mock.Anything, "L1", "1-a", lockPatch).Return(locked, nil)

	asset := gateway.Asset{
		ID:             "AS1",
		Status:         "active",
		Title:          "Scrap bundle",
		Classification: map[string]any{"id": "07.1"},
		Quantity:       "5",
	}
	m.assets.On("Get", mock.Anything, "AS1").Return(asset, true, nil)

	m.auctions.On("Patch", mock.Anything, "A1", mock.MatchedBy(func(p gateway.AuctionPatch) bool {
		return p.DGFID == "Q01-L1" &&
			len(p.Items) == 1 &&
			p.Items[0].ID == "AS1" &&
			p.Items[0].Description == "Scrap bundle"
	})).Return(gateway.Auction{}, nil).Once()

	m.lots.On("Patch", mock.Anything, "L1",
		gateway.LotPatch{Status: gateway.LotStatusAuction}).Return(gateway.Lot{}, nil).Once()
	m.auctions.On("Patch", mock.Anything, "A1",
		gateway.AuctionPatch{Status: gateway.AuctionStatusTendering}).Return(gateway.Auction{}, nil).Once()

	s.Process(ctx, pendingAuction("A1", "L1"))

	m.lots.AssertExpectations(t)
	m.auctions.AssertExpectations(t)
	m.assets.AssertExpectations(t)
}

func TestPrepare_RedeliveryWithHeldLockDoesNotReappendClaimant(t *testing.T) {
	s, m := newTestStrategy()

	lot := gateway.Lot{
		ID:       "L1",
		Rev:      "2-b",
		Status:   gateway.LotStatusAwaiting,
		Auctions: []gateway.LotAuction{{ID: "A1"}},
		Assets:   []string{"AS1"},
	}
	m.lots.On("Get", mock.Anything, "L1").Return(lot, true, nil)
	m.assets.On("Get", mock.Anything, "AS1").Return(gateway.Asset{ID: "AS1", Title: "Scrap"}, true, nil)
	m.auctions.On("Patch", mock.Anything, "A1", mock.AnythingOfType("gateway.AuctionPatch")).
		Return(gateway.Auction{}, nil)
	m.lots.On("Patch", mock.Anything, "L1",
		gateway.LotPatch{Status: gateway.LotStatusAuction}).Return(gateway.Lot{}, nil)

	s.Process(context.Background(), pendingAuction("A1", "L1"))

	m.lots.AssertNotCalled(t, "PatchWithRev", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPrepare_LockAlreadyFinalizedOnlySwitchesAuction(t *testing.T) {
	s, m := newTestStrategy()

	lot := gateway.Lot{
		ID:       "L1",
		Status:   gateway.LotStatusAuction,
		Auctions: []gateway.LotAuction{{ID: "A1"}},
	}
	m.lots.On("Get", mock.Anything, "L1").Return(lot, true, nil)
	m.auctions.On("Patch", mock.Anything, "A1",
		gateway.AuctionPatch{Status: gateway.AuctionStatusTendering}).Return(gateway.Auction{}, nil).Once()

	s.Process(context.Background(), pendingAuction("A1", "L1"))

	m.auctions.AssertExpectations(t)
	m.lots.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything, mock.Anything)
	m.lots.AssertNotCalled(t, "PatchWithRev", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.assets.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestPrepare_MissingLotInvalidatesAuction(t *testing.T) {
	s, m := newTestStrategy()

	m.lots.On("Get", mock.Anything, "L1").Return(gateway.Lot{}, false, nil)
	m.auctions.On("Patch", mock.Anything, "A1",
		gateway.AuctionPatch{Status: gateway.AuctionStatusInvalid}).Return(gateway.Auction{}, nil).Once()

	s.Process(context.Background(), pendingAuction("A1", "L1"))

	m.auctions.AssertExpectations(t)
}

func TestPrepare_LotHeldByAnotherAuctionInvalidates(t *testing.T) {
	s, m := newTestStrategy()

	lot := gateway.Lot{
		ID:       "L1",
		Status:   gateway.LotStatusAwaiting,
		Auctions: []gateway.LotAuction{{ID: "other"}},
	}
	m.lots.On("Get", mock.Anything, "L1").Return(lot, true, nil)
	m.auctions.On("Patch", mock.Anything, "A1",
		gateway.AuctionPatch{Status: gateway.AuctionStatusInvalid}).Return(gateway.Auction{}, nil).Once()

	s.Process(context.Background(), pendingAuction("A1", "L1"))

	m.auctions.AssertExpectations(t)
	m.lots.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything, mock.Anything)
	m.lots.AssertNotCalled(t, "PatchWithRev", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPrepare_ZeroItemsReleasesLockAndInvalidates(t *testing.T) {
	s, m := newTestStrategy()

	lot := gateway.Lot{
		ID:     "L1",
		Rev:    "1-a",
		Status: gateway.LotStatusSalable,
		Assets: []string{"AS1"},
	}
	m.lots.On("Get", mock.Anything, "L1").Return(lot, true, nil)
	locked := lot
	locked.Status = gateway.LotStatusAwaiting
	m.lots.On("PatchWithRev", mock.Anything, "L1", "1-a", mock.AnythingOfType("gateway.LotPatch")).
		Return(locked, nil)
	m.assets.On("Get", mock.Anything, "AS1").Return(gateway.Asset{}, false, nil)

	m.lots.On("Patch", mock.Anything, "L1",
		gateway.LotPatch{Status: gateway.LotStatusSalable}).Return(gateway.Lot{}, nil).Once()
	m.auctions.On("Patch", mock.Anything, "A1",
		gateway.AuctionPatch{Status: gateway.AuctionStatusInvalid}).Return(gateway.Auction{}, nil).Once()

	s.Process(context.Background(), pendingAuction("A1", "L1"))

	m.lots.AssertExpectations(t)
	m.auctions.AssertExpectations(t)
	m.auctions.AssertNotCalled(t, "Patch", mock.Anything, "A1",
		gateway.AuctionPatch{Status: gateway.AuctionStatusTendering})
}

func TestPrepare_LockConflictRetriesThenGivesUp(t *testing.T) {
	s, m := newTestStrategy()

	lot := gateway.Lot{ID: "L1", Rev: "1-a", Status: gateway.LotStatusSalable, Assets: []string{"AS1"}}
	m.lots.On("Get", mock.Anything, "L1").Return(lot, true, nil)
	m.lots.On("PatchWithRev", mock.Anything, "L1", "1-a", mock.AnythingOfType("gateway.LotPatch")).
		Return(gateway.Lot{}, &gateway.StatusError{Code: 412})

	s.Process(context.Background(), pendingAuction("A1", "L1"))

	// Two attempts per the test policy, then the event is dropped without any
	// further writes.
	m.lots.AssertNumberOfCalls(t, "PatchWithRev", 2)
	m.auctions.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything, mock.Anything)
}

func TestReport_CompleteAuctionMovesLotToPendingSold(t *testing.T) {
	s, m := newTestStrategy()

	lot := gateway.Lot{ID: "L1", Status: gateway.LotStatusAuction, Auctions: []gateway.LotAuction{{ID: "A1"}}}
	m.lots.On("Get", mock.Anything, "L1").Return(lot, true, nil)
	m.lots.On("Patch", mock.Anything, "L1",
		gateway.LotPatch{Status: gateway.LotStatusPendingSold}).Return(gateway.Lot{}, nil).Once()

	auction := pendingAuction("A1", "L1")
	auction.Status = gateway.AuctionStatusComplete
	s.Process(context.Background(), auction)

	m.lots.AssertExpectations(t)
}

func TestReport_UnsuccessfulAuctionReleasesLot(t *testing.T) {
	s, m := newTestStrategy()

	lot := gateway.Lot{ID: "L1", Status: gateway.LotStatusAuction, Auctions: []gateway.LotAuction{{ID: "A1"}}}
	m.lots.On("Get", mock.Anything, "L1").Return(lot, true, nil)
	m.lots.On("Patch", mock.Anything, "L1",
		gateway.LotPatch{Status: gateway.LotStatusSalable}).Return(gateway.Lot{}, nil).Once()

	auction := pendingAuction("A1", "L1")
	auction.Status = gateway.AuctionStatusUnsuccessful
	s.Process(context.Background(), auction)

	m.lots.AssertExpectations(t)
}

func TestReport_AlreadyReportedLotIsLeftAlone(t *testing.T) {
	s, m := newTestStrategy()

	lot := gateway.Lot{ID: "L1", Status: gateway.LotStatusPendingSold}
	m.lots.On("Get", mock.Anything, "L1").Return(lot, true, nil)

	auction := pendingAuction("A1", "L1")
	auction.Status = gateway.AuctionStatusComplete
	s.Process(context.Background(), auction)

	m.lots.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything, mock.Anything)
}

func TestReport_MissingLotDropsEvent(t *testing.T) {
	s, m := newTestStrategy()

	m.lots.On("Get", mock.Anything, "L1").Return(gateway.Lot{}, false, nil)

	auction := pendingAuction("A1", "L1")
	auction.Status = gateway.AuctionStatusCancelled
	s.Process(context.Background(), auction)

	m.lots.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything, mock.Anything)
	m.auctions.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 0, m.transfer.Len())
}
