package oracle

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Dispatch(ctx context.Context, req Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
