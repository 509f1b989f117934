// Package videos refreshes the cached copy of the owner's YouTube channel
// catalog. It is a standalone background concern: nothing in the chat core
// depends on it, it only feeds the blog's video listing.
package videos

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"visioblog/backend/internal/models"
	"visioblog/backend/internal/storage"
)

const apiBaseURL = "https://www.googleapis.com/youtube/v3"

// Catalog pulls the channel uploads from the YouTube Data API and stores a
// snapshot in PostgreSQL plus a hot copy in Redis.
type Catalog struct {
	APIKey    string
	ChannelID string
	Storage   storage.Storage
	Client    *http.Client

	// baseURL is swappable in tests.
	baseURL string
}

func NewCatalog(apiKey, channelID string, s storage.Storage) *Catalog {
	return &Catalog{
		APIKey:    apiKey,
		ChannelID: channelID,
		Storage:   s,
		Client:    &http.Client{Timeout: 30 * time.Second},
		baseURL:   apiBaseURL,
	}
}

// searchResponse / videoListResponse mirror just the fields we read from the
// API payloads.
type searchResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		ID struct {
			Kind    string `json:"kind"`
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type videoListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string    `json:"title"`
			Description string    `json:"description"`
			PublishedAt time.Time `json:"publishedAt"`
			Tags        []string  `json:"tags"`
		} `json:"snippet"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// Refresh fetches the full channel catalog and replaces the stored snapshot.
func (c *Catalog) Refresh(ctx context.Context) error {
	if c.APIKey == "" || c.ChannelID == "" {
		return fmt.Errorf("video catalog is not configured")
	}

	ids, err := c.listVideoIDs(ctx)
	if err != nil {
		return fmt.Errorf("listing channel videos: %w", err)
	}

	now := time.Now()
	videos := make([]models.Video, 0, len(ids))
	for _, id := range ids {
		v, err := c.videoDetails(ctx, id)
		if err != nil {
			// One bad entry should not lose the rest of the refresh.
			log.Printf("WARNING: skipping video %s: %v", id, err)
			continue
		}
		v.RefreshedAt = now
		videos = append(videos, *v)
	}

	if err := c.Storage.SaveVideos(videos); err != nil {
		return fmt.Errorf("saving video catalog: %w", err)
	}
	if err := c.Storage.CacheVideoList(videos); err != nil {
		// The durable snapshot is in; a cold cache only costs a DB read.
		log.Printf("WARNING: caching video catalog: %v", err)
	}

	log.Printf("Video catalog refreshed: %d videos", len(videos))
	return nil
}

func (c *Catalog) listVideoIDs(ctx context.Context) ([]string, error) {
	var ids []string
	pageToken := ""

	for {
		q := url.Values{}
		q.Set("part", "snippet")
		q.Set("channelId", c.ChannelID)
		q.Set("maxResults", "50")
		q.Set("order", "date")
		q.Set("type", "video")
		q.Set("key", c.APIKey)
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}

		var page searchResponse
		if err := c.getJSON(ctx, c.baseURL+"/search?"+q.Encode(), &page); err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			if item.ID.Kind == "youtube#video" {
				ids = append(ids, item.ID.VideoID)
			}
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			return ids, nil
		}
	}
}

func (c *Catalog) videoDetails(ctx context.Context, id string) (*models.Video, error) {
	q := url.Values{}
	q.Set("part", "snippet,statistics")
	q.Set("id", id)
	q.Set("key", c.APIKey)

	var resp videoListResponse
	if err := c.getJSON(ctx, c.baseURL+"/videos?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video %s not found", id)
	}

	item := resp.Items[0]
	var viewCount int64
	fmt.Sscan(item.Statistics.ViewCount, &viewCount)

	return &models.Video{
		ID:          item.ID,
		Title:       item.Snippet.Title,
		URL:         "https://www.youtube.com/watch?v=" + item.ID,
		Description: item.Snippet.Description,
		Tags:        item.Snippet.Tags,
		ViewCount:   viewCount,
		PublishedAt: item.Snippet.PublishedAt,
	}, nil
}

func (c *Catalog) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube api returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
