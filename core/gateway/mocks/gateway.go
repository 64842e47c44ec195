package mocks

import (
	"context"

	"auction-courier/core/gateway"

	"github.com/stretchr/testify/mock"
)

// LotGateway is a mock implementation of gateway.LotGateway
type LotGateway struct {
	mock.Mock
}

func (m *LotGateway) Get(ctx context.Context, id string) (gateway.Lot, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(gateway.Lot), args.Bool(1), args.Error(2)
}

func (m *LotGateway) Patch(ctx context.Context, id string, patch gateway.LotPatch) (gateway.Lot, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(gateway.Lot), args.Error(1)
}

func (m *LotGateway) PatchWithRev(ctx context.Context, id, rev string, patch gateway.LotPatch) (gateway.Lot, error) {
	args := m.Called(ctx, id, rev, patch)
	return args.Get(0).(gateway.Lot), args.Error(1)
}

func (m *LotGateway) PatchSubitem(ctx context.Context, lotID, subitemName, subitemID string, patch map[string]any) error {
	args := m.Called(ctx, lotID, subitemName, subitemID, patch)
	return args.Error(0)
}

// AuctionGateway is a mock implementation of gateway.AuctionGateway
type AuctionGateway struct {
	mock.Mock
}

func (m *AuctionGateway) Get(ctx context.Context, id string) (gateway.Auction, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(gateway.Auction), args.Bool(1), args.Error(2)
}

func (m *AuctionGateway) Patch(ctx context.Context, id string, patch gateway.AuctionPatch) (gateway.Auction, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(gateway.Auction), args.Error(1)
}

func (m *AuctionGateway) CreateDocument(ctx context.Context, auctionID string, doc gateway.Document) (gateway.Document, error) {
	args := m.Called(ctx, auctionID, doc)
	return args.Get(0).(gateway.Document), args.Error(1)
}

func (m *AuctionGateway) ExtractCredentials(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *AuctionGateway) GetFile(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

// AssetGateway is a mock implementation of gateway.AssetGateway
type AssetGateway struct {
	mock.Mock
}

func (m *AssetGateway) Get(ctx context.Context, id string) (gateway.Asset, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(gateway.Asset), args.Bool(1), args.Error(2)
}

// ContractGateway is a mock implementation of gateway.ContractGateway
type ContractGateway struct {
	mock.Mock
}

func (m *ContractGateway) Create(ctx context.Context, data map[string]any) (gateway.Contract, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(gateway.Contract), args.Error(1)
}
