package storage_test

import (
	"testing"

	"visioblog/backend/internal/models"
	"visioblog/backend/internal/storage"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestStorage(t *testing.T) *storage.Service {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, db.AutoMigrate(&models.ChatRequest{}, &models.Admin{}), "automigrate")
	return storage.NewStorageService(db, nil)
}

func pendingRequest() *models.ChatRequest {
	return &models.ChatRequest{
		RequesterID:   "user-1",
		Pseudo:        "alice",
		Content:       "about your latest video",
		ScheduledDate: "2025-03-01",
		ScheduledTime: "18:00",
		Status:        models.StatusPending,
		OwnerAdminID:  "admin-1",
	}
}

func TestSaveAndGetRequest(t *testing.T) {
	s := openTestStorage(t)

	req := pendingRequest()
	require.NoError(t, s.SaveRequest(req))
	require.NotEmpty(t, req.ID, "BeforeCreate should assign an id")

	got, err := s.GetRequestByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, req.Content, got.Content)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestGetRequestByID_NotFound(t *testing.T) {
	s := openTestStorage(t)

	_, err := s.GetRequestByID("no-such-id")
	assert.ErrorIs(t, err, storage.ErrRequestNotFound)
}

func TestUpdateRequestStatus_CompareAndSet(t *testing.T) {
	s := openTestStorage(t)

	req := pendingRequest()
	require.NoError(t, s.SaveRequest(req))

	ok, err := s.UpdateRequestStatus(req.ID, models.StatusPending, models.StatusValidated)
	require.NoError(t, err)
	assert.True(t, ok, "first transition out of pending must win")

	// The losing transition sees zero rows affected and must not overwrite.
	ok, err = s.UpdateRequestStatus(req.ID, models.StatusPending, models.StatusRefused)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := s.GetRequestByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusValidated, got.Status)
}

func TestUpdateRequestStatus_MissingRequest(t *testing.T) {
	s := openTestStorage(t)

	ok, err := s.UpdateRequestStatus("no-such-id", models.StatusPending, models.StatusValidated)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetRequestsByRequesterAndStatus(t *testing.T) {
	s := openTestStorage(t)

	first := pendingRequest()
	require.NoError(t, s.SaveRequest(first))

	second := pendingRequest()
	second.ScheduledDate = "2025-03-08"
	require.NoError(t, s.SaveRequest(second))

	other := pendingRequest()
	other.RequesterID = "user-2"
	require.NoError(t, s.SaveRequest(other))

	_, err := s.UpdateRequestStatus(second.ID, models.StatusPending, models.StatusRefused)
	require.NoError(t, err)

	mine, err := s.GetRequestsByRequester("user-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	pending, err := s.GetRequestsByStatus(models.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2) // first and other

	refused, err := s.GetRequestsByStatus(models.StatusRefused)
	require.NoError(t, err)
	assert.Len(t, refused, 1)
	assert.Equal(t, second.ID, refused[0].ID)
}

func TestDeleteRequest(t *testing.T) {
	s := openTestStorage(t)

	req := pendingRequest()
	require.NoError(t, s.SaveRequest(req))
	require.NoError(t, s.DeleteRequest(req.ID))

	_, err := s.GetRequestByID(req.ID)
	assert.ErrorIs(t, err, storage.ErrRequestNotFound)
}

func TestGetDefaultAdmin(t *testing.T) {
	s := openTestStorage(t)

	_, err := s.GetDefaultAdmin()
	assert.ErrorIs(t, err, storage.ErrAdminNotFound)

	admin := &models.Admin{Pseudo: "titi", Email: "titi@blog.local"}
	require.NoError(t, s.DB.Create(admin).Error)

	got, err := s.GetDefaultAdmin()
	require.NoError(t, err)
	assert.Equal(t, "titi", got.Pseudo)
}
