// Package mocks holds testify mocks for the ports interfaces.
package mocks

import (
	"context"

	"github.com/bnema/parceltrack/internal/domain"
	"github.com/bnema/parceltrack/internal/ports"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type MockCarrierSource struct {
	mock.Mock
}

var _ ports.CarrierSource = (*MockCarrierSource)(nil)

func NewMockCarrierSource(t testingT) *MockCarrierSource {
	m := &MockCarrierSource{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCarrierSource) FetchAll(ctx context.Context) ([]domain.Carrier, error) {
	args := m.Called(ctx)
	carriers, _ := args.Get(0).([]domain.Carrier)
	return carriers, args.Error(1)
}

type MockTrackingSource struct {
	mock.Mock
}

var _ ports.TrackingSource = (*MockTrackingSource)(nil)

func NewMockTrackingSource(t testingT) *MockTrackingSource {
	m := &MockTrackingSource{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTrackingSource) Query(ctx context.Context, carrierCode, invoiceNo string) (domain.TrackingResult, error) {
	args := m.Called(ctx, carrierCode, invoiceNo)
	result, _ := args.Get(0).(domain.TrackingResult)
	return result, args.Error(1)
}

type MockScopeDefaultsRepository struct {
	mock.Mock
}

var _ ports.ScopeDefaultsRepository = (*MockScopeDefaultsRepository)(nil)

func NewMockScopeDefaultsRepository(t testingT) *MockScopeDefaultsRepository {
	m := &MockScopeDefaultsRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockScopeDefaultsRepository) Load(ctx context.Context) (domain.ScopeDefaults, error) {
	args := m.Called(ctx)
	defaults, _ := args.Get(0).(domain.ScopeDefaults)
	return defaults, args.Error(1)
}

func (m *MockScopeDefaultsRepository) Save(ctx context.Context, defaults domain.ScopeDefaults) error {
	args := m.Called(ctx, defaults)
	return args.Error(0)
}

type MockSecretStore struct {
	mock.Mock
}

var _ ports.SecretStore = (*MockSecretStore)(nil)

func NewMockSecretStore(t testingT) *MockSecretStore {
	m := &MockSecretStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSecretStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSecretStore) Put(ctx context.Context, key string, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockSecretStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
