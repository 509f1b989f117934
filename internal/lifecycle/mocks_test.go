package lifecycle_test

import (
	"context"

	"visioblog/backend/internal/lifecycle"
	"visioblog/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetAdminByID(id string) (*models.Admin, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockStorage) GetDefaultAdmin() (*models.Admin, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func (m *MockStorage) SaveRequest(req *models.ChatRequest) error {
	args := m.Called(req)
	return args.Error(0)
}

func (m *MockStorage) GetRequestByID(id string) (*models.ChatRequest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatRequest), args.Error(1)
}

func (m *MockStorage) GetRequestsByRequester(requesterID string) ([]models.ChatRequest, error) {
	args := m.Called(requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatRequest), args.Error(1)
}

func (m *MockStorage) GetRequestsByStatus(status models.RequestStatus) ([]models.ChatRequest, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatRequest), args.Error(1)
}

func (m *MockStorage) UpdateRequestStatus(id string, from, to models.RequestStatus) (bool, error) {
	args := m.Called(id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) DeleteRequest(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) SaveVideos(videos []models.Video) error {
	args := m.Called(videos)
	return args.Error(0)
}

func (m *MockStorage) GetVideos() ([]models.Video, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Video), args.Error(1)
}

func (m *MockStorage) CacheVideoList(videos []models.Video) error {
	args := m.Called(videos)
	return args.Error(0)
}

func (m *MockStorage) GetCachedVideoList() ([]models.Video, bool, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]models.Video), args.Bool(1), args.Error(2)
}

// recordedNotification captures one Notify call.
type recordedNotification struct {
	Kind lifecycle.Kind
	Req  *models.ChatRequest
	To   lifecycle.Recipient
}

// recordingNotifier collects notifications; Err, when set, makes every call
// fail the way a broken mail provider would.
type recordingNotifier struct {
	Sent []recordedNotification
	Err  error
}

func (n *recordingNotifier) Notify(ctx context.Context, kind lifecycle.Kind, req *models.ChatRequest, to lifecycle.Recipient) error {
	n.Sent = append(n.Sent, recordedNotification{Kind: kind, Req: req, To: to})
	return n.Err
}
