// YouTube Data API [SearchProvider] implementation
package services

import (
	"context"
	"fmt"
	"html"

	"github.com/desertthunder/songsite/internal/models"
	"github.com/desertthunder/songsite/internal/shared"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	defaultMaxResults int64 = 10
	defaultSafeSearch       = "moderate"
)

// YouTubeService implements [SearchProvider] with the YouTube Data API.
type YouTubeService struct {
	service    *youtube.Service
	maxResults int64
}

// NewYouTubeService creates a YouTube search client authenticated with apiKey.
//
// Extra client options (endpoint, HTTP client) are appended after the key.
func NewYouTubeService(ctx context.Context, apiKey string, maxResults int64, opts ...option.ClientOption) (*YouTubeService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing YouTube API key", shared.ErrInvalidConfig)
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &YouTubeService{service: service, maxResults: maxResults}, nil
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// Search runs one search.list call for videos matching query.
//
// Titles and channel names arrive HTML-escaped and are unescaped here.
func (y *YouTubeService) Search(ctx context.Context, query string) ([]models.Video, error) {
	call := y.service.Search.List([]string{"id", "snippet"}).
		Q(query).
		MaxResults(y.maxResults).
		SafeSearch(defaultSafeSearch).
		Type("video").
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrRemoteSearch, err)
	}

	videos := make([]models.Video, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		videos = append(videos, models.Video{
			ID:        item.Id.VideoId,
			Title:     html.UnescapeString(item.Snippet.Title),
			Channel:   html.UnescapeString(item.Snippet.ChannelTitle),
			Thumbnail: bestThumbnail(item.Snippet.Thumbnails),
		})
	}

	return videos, nil
}

// bestThumbnail returns the URL of the largest available thumbnail.
func bestThumbnail(thumbnails *youtube.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}
	for _, t := range []*youtube.Thumbnail{thumbnails.Maxres, thumbnails.High, thumbnails.Medium, thumbnails.Default} {
		if t != nil && t.Url != "" {
			return t.Url
		}
	}
	return ""
}
