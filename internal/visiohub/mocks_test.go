package visiohub_test

import (
	"sync"

	"visioblog/backend/internal/models"
	"visioblog/backend/internal/storage"
)

// fakeStorage serves chat requests from a map. Everything else on the
// interface is inherited from the embedded nil Storage and panics if touched:
// the hub must only ever read requests.
type fakeStorage struct {
	storage.Storage
	requests map[string]*models.ChatRequest
}

func newFakeStorage(reqs ...*models.ChatRequest) *fakeStorage {
	s := &fakeStorage{requests: make(map[string]*models.ChatRequest)}
	for _, r := range reqs {
		s.requests[r.ID] = r
	}
	return s
}

func (s *fakeStorage) GetRequestByID(id string) (*models.ChatRequest, error) {
	if r, ok := s.requests[id]; ok {
		return r, nil
	}
	return nil, storage.ErrRequestNotFound
}

// mockClient is an in-process peer: outbound signals land in Send, where tests
// read them back.
type mockClient struct {
	UserID string
	Role   models.Role
	RoomID string
	Send   chan models.SignalMessage

	closeOnce sync.Once
	closed    chan struct{}
}

func newMockClient(userID string, role models.Role, roomID string) *mockClient {
	return &mockClient{
		UserID: userID,
		Role:   role,
		RoomID: roomID,
		Send:   make(chan models.SignalMessage, 8),
		closed: make(chan struct{}),
	}
}

func (c *mockClient) GetUserID() string                           { return c.UserID }
func (c *mockClient) GetRole() models.Role                        { return c.Role }
func (c *mockClient) GetRoomID() string                           { return c.RoomID }
func (c *mockClient) GetSendChannel() chan<- models.SignalMessage { return c.Send }
func (c *mockClient) Run()                                        {}
func (c *mockClient) Close()                                      { c.closeOnce.Do(func() { close(c.closed) }) }

func (c *mockClient) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// received drains everything currently buffered on the client's channel.
func (c *mockClient) received() []models.SignalMessage {
	var out []models.SignalMessage
	for {
		select {
		case msg := <-c.Send:
			out = append(out, msg)
		default:
			return out
		}
	}
}
