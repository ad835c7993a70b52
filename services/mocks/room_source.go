package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hotel-frontend/models"
)

// MockRoomSource is a mock implementation of services.RoomSource
type MockRoomSource struct {
	mock.Mock
}

func (m *MockRoomSource) FetchRooms(ctx context.Context) ([]models.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Room), args.Error(1)
}
