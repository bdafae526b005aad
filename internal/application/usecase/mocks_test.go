package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/axion-crm/internal/domain/entity"
)

// Ids de prueba con forma de uuid, como las claves primarias de la base.
const (
	userU1    = "0b6f6f1e-3c1d-4a55-9a0e-000000000001"
	userU2    = "0b6f6f1e-3c1d-4a55-9a0e-000000000002"
	cardC3    = "7d2e9c40-8f1b-4c7a-b1d3-0000000000c3"
	collabC1  = "5a4c1b2e-6d3f-4e8a-9b7c-0000000000c1"
	missingID = "9e8d7c6b-5a49-4382-a1b0-00000000dead"
)

// MockUserRepo implementación mock de repository.UserProfileRepository.
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *entity.UserProfile) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.UserProfile)
	return u, args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.UserProfile)
	return u, args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, u *entity.UserProfile) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.UserProfile, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]*entity.UserProfile)
	return list, args.Error(1)
}

func (m *MockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockCollaboratorRepo implementación mock de repository.CollaboratorRepository.
type MockCollaboratorRepo struct {
	mock.Mock
}

func (m *MockCollaboratorRepo) List(ctx context.Context) ([]*entity.Collaborator, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.Collaborator)
	return list, args.Error(1)
}

func (m *MockCollaboratorRepo) GetByID(ctx context.Context, id string) (*entity.Collaborator, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Collaborator)
	return c, args.Error(1)
}

func (m *MockCollaboratorRepo) Upsert(ctx context.Context, c *entity.Collaborator) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCollaboratorRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockFlowCardRepo implementación mock de repository.FlowCardRepository.
type MockFlowCardRepo struct {
	mock.Mock
}

func (m *MockFlowCardRepo) List(ctx context.Context) ([]*entity.FlowCard, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*entity.FlowCard)
	return list, args.Error(1)
}

func (m *MockFlowCardRepo) GetByID(ctx context.Context, id string) (*entity.FlowCard, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.FlowCard)
	return c, args.Error(1)
}

// MockAuditRepo implementación mock de repository.AuditLogRepository.
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Insert(ctx context.Context, e *entity.AuditLog) error {
	return m.Called(ctx, e).Error(0)
}
