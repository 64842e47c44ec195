package directlock

import (
	"context"

	"auction-courier/core/docstore"
	"auction-courier/core/gateway"
	"auction-courier/core/logger"
	"auction-courier/core/queue"
	"auction-courier/core/retry"

	"go.uber.org/zap"
)

// Strategy drives auctions whose lot carries the lock state directly: a
// top-level status and an append-only claimant list whose last entry holds
// the lock.
type Strategy struct {
	lots     gateway.LotGateway
	auctions gateway.AuctionGateway
	assets   gateway.AssetGateway
	docs     docstore.Store
	transfer *queue.Queue
	retry    *retry.Policy
	logger   *zap.Logger
}

// New creates the direct-lock strategy.
func New(
	lots gateway.LotGateway,
	auctions gateway.AuctionGateway,
	assets gateway.AssetGateway,
	docs docstore.Store,
	transfer *queue.Queue,
	policy *retry.Policy,
	log *zap.Logger,
) *Strategy {
	return &Strategy{
		lots:     lots,
		auctions: auctions,
		assets:   assets,
		docs:     docs,
		transfer: transfer,
		retry:    policy,
		logger:   log,
	}
}

func (s *Strategy) Name() string { return "directlock" }

// Process routes the auction to prepare or report by its status.
func (s *Strategy) Process(ctx context.Context, auction gateway.Auction) {
	if auction.Status == gateway.AuctionStatusPendingVerification {
		s.prepare(ctx, auction)
	} else {
		s.report(ctx, auction)
	}
}

// prepare locks the lot, forms the auction from the lot's assets and
// activates both resources.
func (s *Strategy) prepare(ctx context.Context, auction gateway.Auction) {
	s.logger.Info("Prepare auction", zap.String("auction", auction.ID))

	lot, ok := s.receiveLot(ctx, auction)
	if !ok {
		return
	}
	if !s.formAuction(ctx, lot, auction) {
		return
	}
	s.activate(ctx, lot, auction)
}

// receiveLot fetches the lot fresh and acquires the lock when the lot is
// salable. The second return value is false when processing must stop here,
// either because the lot is unusable or because the lock is already held and
// only the auction switch remained.
func (s *Strategy) receiveLot(ctx context.Context, auction gateway.Auction) (gateway.Lot, bool) {
	lot, found, err := s.lots.Get(ctx, auction.LotID)
	if err != nil {
		s.logger.Error("Failed to get lot",
			zap.String("lot", auction.LotID),
			zap.Error(err),
		)
		return gateway.Lot{}, false
	}
	if !found {
		s.invalidate(ctx, auction.ID)
		return gateway.Lot{}, false
	}
	s.logger.Info("Received lot", zap.String("lot", lot.ID))

	unusable := (lot.Status == gateway.LotStatusAwaiting && auction.ID != lot.LastClaimant()) ||
		(lot.Status != gateway.LotStatusSalable &&
			lot.Status != gateway.LotStatusAwaiting &&
			lot.Status != gateway.LotStatusAuction)
	switch {
	case unusable:
		s.logger.Warn("Lot status is not usable for this auction",
			logger.MessageID(logger.MsgInvalidLotStatus),
			zap.String("lot", lot.ID),
			zap.String("status", lot.Status),
		)
		s.invalidate(ctx, auction.ID)
		return gateway.Lot{}, false
	case lot.Status == gateway.LotStatusAuction && auction.ID == lot.LastClaimant():
		// Lock already finalized by an earlier delivery; only the auction
		// switch remains.
		s.switchAuctionStatus(ctx, auction.ID, gateway.AuctionStatusTendering)
		return gateway.Lot{}, false
	case lot.Status == gateway.LotStatusAwaiting && auction.ID == lot.LastClaimant():
		// Lock already held by this auction.
		return lot, true
	}

	// Lock lot. The revision precondition makes a concurrent claimant
	// surface as a 412 instead of a silent double-append; the retried
	// re-read then observes the winner.
	claimants := append(lot.ClaimantIDs(), auction.ID)
	patch := gateway.LotPatch{Status: gateway.LotStatusAwaiting, Auctions: claimants}
	var locked gateway.Lot
	err = s.retry.Do(ctx, func() error {
		var patchErr error
		locked, patchErr = s.lots.PatchWithRev(ctx, lot.ID, lot.Rev, patch)
		return patchErr
	})
	if err != nil {
		s.logger.Error("Failed to lock lot",
			logger.MessageID(logger.MsgLockLot),
			zap.String("lot", lot.ID),
			zap.Error(err),
		)
		return gateway.Lot{}, false
	}
	s.logger.Info("Lock lot",
		logger.MessageID(logger.MsgLockLot),
		zap.String("lot", lot.ID),
		zap.String("auction", auction.ID),
	)
	if locked.ID == "" {
		locked = lot
	}
	return locked, true
}

// formAuction converts the lot's assets into items and documents and patches
// them onto the auction. Zero items is a terminal failure: the lock is
// released and the auction invalidated.
func (s *Strategy) formAuction(ctx context.Context, lot gateway.Lot, auction gateway.Auction) bool {
	items, documents := s.createItems(ctx, lot.Assets)

	if len(items) == 0 {
		s.switchLotStatus(ctx, lot.ID, gateway.LotStatusSalable)
		s.invalidate(ctx, auction.ID)
		return false
	}

	patch := gateway.AuctionPatch{Items: items, DGFID: lot.LotIdentifier}
	err := s.retry.Do(ctx, func() error {
		_, patchErr := s.auctions.Patch(ctx, auction.ID, patch)
		return patchErr
	})
	if err != nil {
		s.logger.Error("Failed to form auction from lot",
			zap.String("auction", auction.ID),
			zap.String("lot", lot.ID),
			zap.Error(err),
		)
		return false
	}
	s.logger.Info("Auction formed from lot",
		zap.String("auction", auction.ID),
		zap.String("lot", lot.ID),
	)

	for _, document := range documents {
		if _, err := s.auctions.CreateDocument(ctx, auction.ID, document); err != nil {
			s.logger.Error("Failed to add document to auction",
				zap.String("auction", auction.ID),
				zap.String("hash", document.Hash),
				zap.Error(err),
			)
			continue
		}
		s.logger.Info("Added document to auction",
			zap.String("auction", auction.ID),
			zap.String("hash", document.Hash),
			zap.String("related_item", document.RelatedItem),
		)
	}
	return true
}

// activate finalizes the lock: lot to active.auction, auction to tendering.
func (s *Strategy) activate(ctx context.Context, lot gateway.Lot, auction gateway.Auction) {
	s.switchLotStatus(ctx, lot.ID, gateway.LotStatusAuction)
	s.switchAuctionStatus(ctx, auction.ID, gateway.AuctionStatusTendering)
}

// report releases the lock according to the auction's terminal outcome.
func (s *Strategy) report(ctx context.Context, auction gateway.Auction) {
	s.logger.Info("Report auction results", zap.String("auction", auction.ID))

	lot, found, err := s.lots.Get(ctx, auction.LotID)
	if err != nil {
		s.logger.Error("Failed to get lot for report",
			zap.String("lot", auction.LotID),
			zap.Error(err),
		)
		return
	}
	if !found {
		// The lot may legitimately be gone; the event is dropped without
		// retry.
		s.logger.Warn("Lot not found when reporting auction results",
			zap.String("lot", auction.LotID),
			zap.String("auction", auction.ID),
		)
		return
	}

	if lot.Status != gateway.LotStatusAuction {
		s.logger.Info("Auction results already reported to lot",
			zap.String("lot", lot.ID),
			zap.String("auction", auction.ID),
		)
		return
	}

	next := gateway.LotStatusSalable
	if auction.Status == gateway.AuctionStatusComplete {
		next = gateway.LotStatusPendingSold
	}
	s.switchLotStatus(ctx, lot.ID, next)
}

func (s *Strategy) invalidate(ctx context.Context, auctionID string) {
	s.switchAuctionStatus(ctx, auctionID, gateway.AuctionStatusInvalid)
}

func (s *Strategy) switchAuctionStatus(ctx context.Context, auctionID, status string) {
	err := s.retry.Do(ctx, func() error {
		_, patchErr := s.auctions.Patch(ctx, auctionID, gateway.AuctionPatch{Status: status})
		return patchErr
	})
	if err != nil {
		s.logger.Error("Failed to switch auction status",
			logger.MessageID(logger.MsgSwitchAuctionStatus),
			zap.String("auction", auctionID),
			zap.String("status", status),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("Switch auction status",
		logger.MessageID(logger.MsgSwitchAuctionStatus),
		zap.String("auction", auctionID),
		zap.String("status", status),
	)
}

func (s *Strategy) switchLotStatus(ctx context.Context, lotID, status string) {
	err := s.retry.Do(ctx, func() error {
		_, patchErr := s.lots.Patch(ctx, lotID, gateway.LotPatch{Status: status})
		return patchErr
	})
	if err != nil {
		s.logger.Error("Failed to switch lot status",
			logger.MessageID(logger.MsgSwitchLotStatus),
			zap.String("lot", lotID),
			zap.String("status", status),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("Switch lot status",
		logger.MessageID(logger.MsgSwitchLotStatus),
		zap.String("lot", lotID),
		zap.String("status", status),
	)
}
