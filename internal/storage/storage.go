package storage

import (
	"context"
	"errors"

	"visioblog/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Not-found sentinels. Callers match these with errors.Is instead of poking at
// gorm.ErrRecordNotFound directly.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrAdminNotFound   = errors.New("admin not found")
	ErrRequestNotFound = errors.New("chat request not found")
)

type Storage interface {
	// Users and admins
	SaveUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetAdminByID(id string) (*models.Admin, error)
	GetDefaultAdmin() (*models.Admin, error)

	// Chat requests
	SaveRequest(req *models.ChatRequest) error
	GetRequestByID(id string) (*models.ChatRequest, error)
	GetRequestsByRequester(requesterID string) ([]models.ChatRequest, error)
	GetRequestsByStatus(status models.RequestStatus) ([]models.ChatRequest, error)
	// UpdateRequestStatus flips the status from `from` to `to` in a single
	// compare-and-set statement. It reports false when the request was not in
	// `from` anymore (or never existed), without touching the row.
	UpdateRequestStatus(id string, from, to models.RequestStatus) (bool, error)
	DeleteRequest(id string) error

	// Video catalog
	SaveVideos(videos []models.Video) error
	GetVideos() ([]models.Video, error)
	CacheVideoList(videos []models.Video) error
	GetCachedVideoList() ([]models.Video, bool, error)
}

// Service is the storage backend: PostgreSQL through GORM for durable records,
// Redis for the short-lived video catalog cache.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// SaveUser stores or updates a user in PostgreSQL.
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetAdminByID(id string) (*models.Admin, error) {
	var admin models.Admin
	err := s.DB.First(&admin, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetDefaultAdmin returns the blog owner. The blog runs with a single
// administrator account, so the oldest row wins.
func (s *Service) GetDefaultAdmin() (*models.Admin, error) {
	var admin models.Admin
	err := s.DB.Order("id asc").First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// SaveRequest stores a chat request in PostgreSQL.
func (s *Service) SaveRequest(req *models.ChatRequest) error {
	return s.DB.Save(req).Error
}

func (s *Service) GetRequestByID(id string) (*models.ChatRequest, error) {
	var req models.ChatRequest
	err := s.DB.First(&req, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *Service) GetRequestsByRequester(requesterID string) ([]models.ChatRequest, error) {
	var reqs []models.ChatRequest
	err := s.DB.Where("requester_id = ?", requesterID).
		Order("created_at asc").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

func (s *Service) GetRequestsByStatus(status models.RequestStatus) ([]models.ChatRequest, error) {
	var reqs []models.ChatRequest
	err := s.DB.Where("status = ?", status).
		Order("scheduled_date asc, scheduled_time asc").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// UpdateRequestStatus performs the compare-and-set transition. Two admins
// clicking validate at the same time race on this statement; the loser sees
// zero rows affected.
func (s *Service) UpdateRequestStatus(id string, from, to models.RequestStatus) (bool, error) {
	res := s.DB.Model(&models.ChatRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteRequest removes a request regardless of its status.
func (s *Service) DeleteRequest(id string) error {
	return s.DB.Delete(&models.ChatRequest{}, "id = ?", id).Error
}
