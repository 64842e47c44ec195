package mocks

import (
	"context"

	"auction-courier/core/docstore"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of docstore.Store
type Store struct {
	mock.Mock
}

func (m *Store) RegisterUpload(ctx context.Context, hash string) (docstore.RegisteredUpload, error) {
	args := m.Called(ctx, hash)
	return args.Get(0).(docstore.RegisteredUpload), args.Error(1)
}

func (m *Store) Upload(ctx context.Context, uploadURL string, data []byte) error {
	args := m.Called(ctx, uploadURL, data)
	return args.Error(0)
}
