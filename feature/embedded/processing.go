package embedded

import (
	"context"

	"auction-courier/core/gateway"
	"auction-courier/core/logger"
	"auction-courier/core/mapping"
	"auction-courier/core/retry"

	"go.uber.org/zap"
)

// unsuccessfulStatuses are the terminal outcomes that only close the lot's
// embedded auction sub-record.
var unsuccessfulStatuses = map[string]bool{
	gateway.AuctionStatusCancelled:    true,
	gateway.AuctionStatusUnsuccessful: true,
}

// successfulStatuses are the terminal outcomes that additionally produce a
// contract.
var successfulStatuses = map[string]bool{
	gateway.AuctionStatusComplete: true,
}

// Strategy reports terminal auction outcomes into lots whose per-auction
// state is nested in embedded sub-records, keyed by a relatedProcessID
// back-reference. Lot locking for this family happens upstream; there is no
// prepare phase.
type Strategy struct {
	lots      gateway.LotGateway
	auctions  gateway.AuctionGateway
	contracts gateway.ContractGateway
	processed mapping.Store
	retry     *retry.Policy
	logger    *zap.Logger
}

// New creates the embedded-auction strategy.
func New(
	lots gateway.LotGateway,
	auctions gateway.AuctionGateway,
	contracts gateway.ContractGateway,
	processed mapping.Store,
	policy *retry.Policy,
	log *zap.Logger,
) *Strategy {
	return &Strategy{
		lots:      lots,
		auctions:  auctions,
		contracts: contracts,
		processed: processed,
		retry:     policy,
		logger:    log,
	}
}

func (s *Strategy) Name() string { return "embedded" }

// Process reports the auction's terminal outcome at most once: a redelivered
// event id short-circuits before any remote mutation.
func (s *Strategy) Process(ctx context.Context, auction gateway.Auction) {
	handled, err := s.processed.Has(ctx, auction.ID)
	if err != nil {
		s.logger.Error("Failed to check auctions mapping",
			zap.String("auction", auction.ID),
			zap.Error(err),
		)
		return
	}
	if handled {
		s.logger.Debug("Auction already handled", zap.String("auction", auction.ID))
		return
	}
	s.report(ctx, auction)
}

func (s *Strategy) report(ctx context.Context, auction gateway.Auction) {
	s.logger.Info("Report auction results", zap.String("auction", auction.ID))

	lotProcessing := auction.LotID != ""
	contractProcessing := auction.ContractTerms != nil

	var lot gateway.Lot
	var lotAuction gateway.LotAuction
	if lotProcessing {
		var ok bool
		lot, ok = s.getLot(ctx, auction)
		if !ok {
			return
		}
		lotAuction, ok = s.checkLotAuction(lot, auction)
		if !ok {
			return
		}
	}

	switch {
	case unsuccessfulStatuses[auction.Status]:
		if lotProcessing {
			if !s.switchLotAuctionStatus(ctx, auction.Status, lot.ID, lotAuction.ID) {
				return
			}
		}
		s.markHandled(ctx, auction.ID)

	case successfulStatuses[auction.Status]:
		var contract gateway.Contract
		if contractProcessing {
			data, err := makeContract(auction)
			if err != nil {
				s.logger.Error("Failed to build contract data",
					logger.MessageID(logger.MsgCreateContract),
					zap.String("auction", auction.ID),
					zap.Error(err),
				)
				return
			}

			token, err := s.extractTransferToken(ctx, auction.ID)
			if err != nil {
				// Without the transfer token the contract cannot change
				// ownership; permanent abort, the event stays unmarked.
				s.logger.Error("Failed to extract transfer token from auction",
					zap.String("auction", auction.ID),
					zap.Error(err),
				)
				return
			}
			data["transfer_token"] = token

			var ok bool
			contract, ok = s.postContract(ctx, auction, data)
			if !ok {
				return
			}
		}
		if lotProcessing {
			if !s.switchLotAuctionStatus(ctx, auction.Status, lot.ID, lotAuction.ID) {
				return
			}
		}
		if lotProcessing && contractProcessing {
			s.updateLotContract(ctx, lot, contract)
		}
		s.markHandled(ctx, auction.ID)

	default:
		s.logger.Warn("Auction status is not terminal",
			zap.String("auction", auction.ID),
			zap.String("status", auction.Status),
		)
	}
}

func (s *Strategy) getLot(ctx context.Context, auction gateway.Auction) (gateway.Lot, bool) {
	lot, found, err := s.lots.Get(ctx, auction.LotID)
	if err != nil {
		s.logger.Error("Failed to get lot",
			zap.String("lot", auction.LotID),
			zap.Error(err),
		)
		return gateway.Lot{}, false
	}
	if !found {
		s.logger.Warn("Lot not found when reporting auction results",
			zap.String("lot", auction.LotID),
			zap.String("auction", auction.ID),
		)
		return gateway.Lot{}, false
	}
	s.logger.Info("Received lot", zap.String("lot", lot.ID))
	return lot, true
}

// checkLotAuction finds the embedded sub-record back-referencing the auction.
// A sub-record no longer active means the outcome was already reported.
func (s *Strategy) checkLotAuction(lot gateway.Lot, auction gateway.Auction) (gateway.LotAuction, bool) {
	for _, la := range lot.Auctions {
		if la.RelatedProcessID != auction.ID {
			continue
		}
		if la.Status != gateway.LotAuctionStatusActive {
			s.logger.Info("Auction results already reported to lot",
				zap.String("lot", lot.ID),
				zap.String("auction", auction.ID),
			)
			return gateway.LotAuction{}, false
		}
		return la, true
	}
	s.logger.Warn("Auction not found in lot",
		zap.String("lot", lot.ID),
		zap.String("auction", auction.ID),
	)
	return gateway.LotAuction{}, false
}

func (s *Strategy) switchLotAuctionStatus(ctx context.Context, status, lotID, lotAuctionID string) bool {
	err := s.retry.Do(ctx, func() error {
		return s.lots.PatchSubitem(ctx, lotID, "auctions", lotAuctionID, map[string]any{"status": status})
	})
	if err != nil {
		s.logger.Error("Failed to switch lot auction status",
			logger.MessageID(logger.MsgSwitchLotAuctionStatus),
			zap.String("lot", lotID),
			zap.String("lot_auction", lotAuctionID),
			zap.Error(err),
		)
		return false
	}
	s.logger.Info("Switch lot auction status",
		logger.MessageID(logger.MsgSwitchLotAuctionStatus),
		zap.String("lot", lotID),
		zap.String("lot_auction", lotAuctionID),
		zap.String("status", status),
	)
	return true
}

func (s *Strategy) extractTransferToken(ctx context.Context, auctionID string) (string, error) {
	var token string
	err := s.retry.Do(ctx, func() error {
		var exErr error
		token, exErr = s.auctions.ExtractCredentials(ctx, auctionID)
		return exErr
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("Extracted transfer token from auction", zap.String("auction", auctionID))
	return token, nil
}

func (s *Strategy) postContract(ctx context.Context, auction gateway.Auction, data map[string]any) (gateway.Contract, bool) {
	var contract gateway.Contract
	err := s.retry.Do(ctx, func() error {
		var createErr error
		contract, createErr = s.contracts.Create(ctx, data)
		return createErr
	})
	if err != nil {
		s.logger.Error("Failed to create contract",
			logger.MessageID(logger.MsgCreateContract),
			zap.String("auction", auction.ID),
			zap.Error(err),
		)
		return gateway.Contract{}, false
	}
	s.logger.Info("Created contract",
		logger.MessageID(logger.MsgCreateContract),
		zap.String("contract", contract.ID),
		zap.String("lot", auction.LotID),
	)
	return contract, true
}

// updateLotContract patches the lot's existing contract sub-record with the
// created contract's identifiers and activates it.
func (s *Strategy) updateLotContract(ctx context.Context, lot gateway.Lot, contract gateway.Contract) {
	if len(lot.Contracts) == 0 {
		s.logger.Warn("Lot has no contract sub-record to update",
			logger.MessageID(logger.MsgUpdateContract),
			zap.String("lot", lot.ID),
		)
		return
	}
	patch := map[string]any{
		"contractID":       contract.ContractID,
		"relatedProcessID": contract.ID,
		"status":           "active",
	}
	err := s.retry.Do(ctx, func() error {
		return s.lots.PatchSubitem(ctx, lot.ID, "contracts", lot.Contracts[0].ID, patch)
	})
	if err != nil {
		s.logger.Error("Failed to update lot contract data",
			logger.MessageID(logger.MsgUpdateContract),
			zap.String("lot", lot.ID),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("Update lot contract data",
		logger.MessageID(logger.MsgUpdateContract),
		zap.String("lot", lot.ID),
		zap.String("contract", contract.ID),
	)
}

func (s *Strategy) markHandled(ctx context.Context, auctionID string) {
	if err := s.processed.Put(ctx, auctionID); err != nil {
		s.logger.Error("Failed to mark auction as handled",
			zap.String("auction", auctionID),
			zap.Error(err),
		)
	}
}
