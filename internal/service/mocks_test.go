package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"campusmarket/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByGoogleIDOrEmail(ctx context.Context, googleID, email string) (*models.User, error) {
	args := m.Called(ctx, googleID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) LinkGoogleAccount(ctx context.Context, userID, googleID string, photo *string) error {
	args := m.Called(ctx, userID, googleID, photo)
	return args.Error(0)
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockUserRepository) SetIDPhoto(ctx context.Context, userID, idPhotoURL string) error {
	args := m.Called(ctx, userID, idPhotoURL)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePresence(ctx context.Context, userID string, online bool) error {
	args := m.Called(ctx, userID, online)
	return args.Error(0)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) CreateSession(ctx context.Context, session *models.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) GetSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

type MockOTPRepository struct {
	mock.Mock
}

func (m *MockOTPRepository) UpsertCode(ctx context.Context, email, code string, expiresAt time.Time) error {
	args := m.Called(ctx, email, code, expiresAt)
	return args.Error(0)
}

func (m *MockOTPRepository) GetCode(ctx context.Context, email string) (*models.EmailVerification, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmailVerification), args.Error(1)
}

func (m *MockOTPRepository) DeleteCode(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendOTP(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}
