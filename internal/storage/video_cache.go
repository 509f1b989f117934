package storage

import (
	"encoding/json"
	"errors"
	"time"

	"visioblog/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	videoListKey = "videos:catalog"
	videoListTTL = 13 * time.Hour // slightly over the 12h refresh interval
)

// SaveVideos upserts the whole catalog snapshot into PostgreSQL.
func (s *Service) SaveVideos(videos []models.Video) error {
	for i := range videos {
		if err := s.DB.Save(&videos[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) GetVideos() ([]models.Video, error) {
	var videos []models.Video
	if err := s.DB.Order("published_at desc").Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

// CacheVideoList stores the catalog snapshot in Redis so the listing endpoint
// does not hit PostgreSQL on every page view.
func (s *Service) CacheVideoList(videos []models.Video) error {
	if s.Redis == nil {
		return nil // cache disabled (CLI runs without Redis)
	}
	data, err := json.Marshal(videos)
	if err != nil {
		return err
	}
	return s.Redis.Set(s.Ctx, videoListKey, data, videoListTTL).Err()
}

// GetCachedVideoList returns the cached catalog and whether the cache was warm.
func (s *Service) GetCachedVideoList() ([]models.Video, bool, error) {
	if s.Redis == nil {
		return nil, false, nil
	}
	data, err := s.Redis.Get(s.Ctx, videoListKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var videos []models.Video
	if err := json.Unmarshal([]byte(data), &videos); err != nil {
		return nil, false, err
	}
	return videos, true, nil
}
