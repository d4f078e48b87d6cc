package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"campusmarket/internal/models"
	"campusmarket/internal/repository"
	"campusmarket/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input service.RegisterInput) (*models.User, string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, email, otp string) error {
	args := m.Called(ctx, email, otp)
	return args.Error(0)
}

func (m *MockAuthService) VerifyID(ctx context.Context, userID, idPhotoURL string) error {
	args := m.Called(ctx, userID, idPhotoURL)
	return args.Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) IssueSession(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) VerifyToken(tokenString string) (string, error) {
	args := m.Called(tokenString)
	return args.String(0), args.Error(1)
}

type MockGoogleService struct {
	mock.Mock
}

func (m *MockGoogleService) ExchangeCredential(ctx context.Context, credential string) (*models.User, string, bool, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Bool(2), args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.Bool(2), args.Error(3)
}

type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) Create(ctx context.Context, userID string, input service.CreateItemInput) (*models.Item, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemService) List(ctx context.Context, filter repository.ItemFilter, page, limit int) ([]models.Item, int, error) {
	args := m.Called(ctx, filter, page, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Item), args.Int(1), args.Error(2)
}

type MockLostFoundService struct {
	mock.Mock
}

func (m *MockLostFoundService) Create(ctx context.Context, userID string, input service.CreateLostFoundInput) (*models.LostFoundPost, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LostFoundPost), args.Error(1)
}

func (m *MockLostFoundService) List(ctx context.Context, filter repository.LostFoundFilter, page, limit int) ([]models.LostFoundPost, int, error) {
	args := m.Called(ctx, filter, page, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.LostFoundPost), args.Int(1), args.Error(2)
}

func (m *MockLostFoundService) GetByID(ctx context.Context, postID string) (*models.LostFoundPost, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LostFoundPost), args.Error(1)
}

func (m *MockLostFoundService) Update(ctx context.Context, userID, postID string, input service.UpdateLostFoundInput) (*models.LostFoundPost, error) {
	args := m.Called(ctx, userID, postID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LostFoundPost), args.Error(1)
}

func (m *MockLostFoundService) Delete(ctx context.Context, userID, postID string) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*service.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Profile), args.Error(1)
}
