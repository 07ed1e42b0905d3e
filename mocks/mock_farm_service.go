package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gauss2302/agrogame/internal/domain"
)

// MockFarmService is a mock type for the farm.Service interface
type MockFarmService struct {
	mock.Mock
}

// GetOrCreateFarm provides a mock function with given fields: ctx, farmID
func (_m *MockFarmService) GetOrCreateFarm(ctx context.Context, farmID int64) (*domain.FarmView, error) {
	ret := _m.Called(ctx, farmID)

	var r0 *domain.FarmView
	if rf, ok := ret.Get(0).(func(context.Context, int64) *domain.FarmView); ok {
		r0 = rf(ctx, farmID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.FarmView)
	}

	return r0, ret.Error(1)
}

// PlantCrop provides a mock function with given fields: ctx, farmID, plotID, crop
func (_m *MockFarmService) PlantCrop(ctx context.Context, farmID int64, plotID int64, crop domain.CropType) (*domain.PlantResult, error) {
	ret := _m.Called(ctx, farmID, plotID, crop)

	var r0 *domain.PlantResult
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64, domain.CropType) *domain.PlantResult); ok {
		r0 = rf(ctx, farmID, plotID, crop)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.PlantResult)
	}

	return r0, ret.Error(1)
}

// AdvancePlotStage provides a mock function with given fields: ctx, farmID, plotID, target
func (_m *MockFarmService) AdvancePlotStage(ctx context.Context, farmID int64, plotID int64, target domain.Stage) (*domain.Plot, error) {
	ret := _m.Called(ctx, farmID, plotID, target)

	var r0 *domain.Plot
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64, domain.Stage) *domain.Plot); ok {
		r0 = rf(ctx, farmID, plotID, target)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Plot)
	}

	return r0, ret.Error(1)
}

// HarvestCrop provides a mock function with given fields: ctx, farmID, plotID
func (_m *MockFarmService) HarvestCrop(ctx context.Context, farmID int64, plotID int64) (*domain.HarvestResult, error) {
	ret := _m.Called(ctx, farmID, plotID)

	var r0 *domain.HarvestResult
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64) *domain.HarvestResult); ok {
		r0 = rf(ctx, farmID, plotID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.HarvestResult)
	}

	return r0, ret.Error(1)
}

// ClaimRealProducts provides a mock function with given fields: ctx, farmID, req
func (_m *MockFarmService) ClaimRealProducts(ctx context.Context, farmID int64, req domain.ClaimRequest) (*domain.ClaimResult, error) {
	ret := _m.Called(ctx, farmID, req)

	var r0 *domain.ClaimResult
	if rf, ok := ret.Get(0).(func(context.Context, int64, domain.ClaimRequest) *domain.ClaimResult); ok {
		r0 = rf(ctx, farmID, req)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.ClaimResult)
	}

	return r0, ret.Error(1)
}

// GetDeliveryStatus provides a mock function with given fields: ctx, farmID
func (_m *MockFarmService) GetDeliveryStatus(ctx context.Context, farmID int64) (*domain.DeliveryStatus, error) {
	ret := _m.Called(ctx, farmID)

	var r0 *domain.DeliveryStatus
	if rf, ok := ret.Get(0).(func(context.Context, int64) *domain.DeliveryStatus); ok {
		r0 = rf(ctx, farmID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.DeliveryStatus)
	}

	return r0, ret.Error(1)
}

// GetHarvestStats provides a mock function with given fields: ctx, farmID
func (_m *MockFarmService) GetHarvestStats(ctx context.Context, farmID int64) (*domain.HarvestStats, error) {
	ret := _m.Called(ctx, farmID)

	var r0 *domain.HarvestStats
	if rf, ok := ret.Get(0).(func(context.Context, int64) *domain.HarvestStats); ok {
		r0 = rf(ctx, farmID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.HarvestStats)
	}

	return r0, ret.Error(1)
}

// GetHarvestHistory provides a mock function with given fields: ctx, farmID, limit
func (_m *MockFarmService) GetHarvestHistory(ctx context.Context, farmID int64, limit int) ([]domain.HarvestHistoryEntry, error) {
	ret := _m.Called(ctx, farmID, limit)

	var r0 []domain.HarvestHistoryEntry
	if rf, ok := ret.Get(0).(func(context.Context, int64, int) []domain.HarvestHistoryEntry); ok {
		r0 = rf(ctx, farmID, limit)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.HarvestHistoryEntry)
	}

	return r0, ret.Error(1)
}

// GetPlot provides a mock function with given fields: ctx, farmID, plotID
func (_m *MockFarmService) GetPlot(ctx context.Context, farmID int64, plotID int64) (*domain.Plot, error) {
	ret := _m.Called(ctx, farmID, plotID)

	var r0 *domain.Plot
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64) *domain.Plot); ok {
		r0 = rf(ctx, farmID, plotID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Plot)
	}

	return r0, ret.Error(1)
}

// ListActivePlots provides a mock function with given fields: ctx
func (_m *MockFarmService) ListActivePlots(ctx context.Context) ([]domain.Plot, error) {
	ret := _m.Called(ctx)

	var r0 []domain.Plot
	if rf, ok := ret.Get(0).(func(context.Context) []domain.Plot); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Plot)
	}

	return r0, ret.Error(1)
}

// ListOrders provides a mock function with given fields: ctx, farmID, limit
func (_m *MockFarmService) ListOrders(ctx context.Context, farmID int64, limit int) ([]domain.DeliveryOrder, error) {
	ret := _m.Called(ctx, farmID, limit)

	var r0 []domain.DeliveryOrder
	if rf, ok := ret.Get(0).(func(context.Context, int64, int) []domain.DeliveryOrder); ok {
		r0 = rf(ctx, farmID, limit)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.DeliveryOrder)
	}

	return r0, ret.Error(1)
}

// GetOrder provides a mock function with given fields: ctx, farmID, orderID
func (_m *MockFarmService) GetOrder(ctx context.Context, farmID int64, orderID int64) (*domain.DeliveryOrder, error) {
	ret := _m.Called(ctx, farmID, orderID)

	var r0 *domain.DeliveryOrder
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64) *domain.DeliveryOrder); ok {
		r0 = rf(ctx, farmID, orderID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.DeliveryOrder)
	}

	return r0, ret.Error(1)
}

// UpdateOrderStatus provides a mock function with given fields: ctx, farmID, orderID, status
func (_m *MockFarmService) UpdateOrderStatus(ctx context.Context, farmID int64, orderID int64, status domain.OrderStatus) (*domain.DeliveryOrder, error) {
	ret := _m.Called(ctx, farmID, orderID, status)

	var r0 *domain.DeliveryOrder
	if rf, ok := ret.Get(0).(func(context.Context, int64, int64, domain.OrderStatus) *domain.DeliveryOrder); ok {
		r0 = rf(ctx, farmID, orderID, status)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.DeliveryOrder)
	}

	return r0, ret.Error(1)
}

// NewMockFarmService creates a new instance of MockFarmService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockFarmService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFarmService {
	m := &MockFarmService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
