package tasks

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songsite/internal/catalog"
	"github.com/desertthunder/songsite/internal/models"
	"github.com/desertthunder/songsite/internal/services"
	"github.com/desertthunder/songsite/internal/shared"
)

const defaultSearchTimeout = 5 * time.Second

// ResolverOpts configures a [Resolver].
type ResolverOpts struct {
	Store *catalog.Store
	// Remote selects remote mode. A nil Provider in remote mode means "not configured" and yields placeholders.
	Remote          bool
	Provider        services.SearchProvider
	Timeout         time.Duration
	TrackPopularity bool
	Logger          *log.Logger
}

// Resolver answers search queries against the catalog or a remote provider.
type Resolver struct {
	store      *catalog.Store
	remote     bool
	provider   services.SearchProvider
	timeout    time.Duration
	popularity bool
	logger     *log.Logger
}

// NewResolver creates a resolver; a nil Store gets an empty one.
func NewResolver(opts ResolverOpts) *Resolver {
	if opts.Store == nil {
		opts.Store = catalog.NewStore("", catalog.BuildOptions{})
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultSearchTimeout
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Resolver{
		store:      opts.Store,
		remote:     opts.Remote,
		provider:   opts.Provider,
		timeout:    opts.Timeout,
		popularity: opts.TrackPopularity,
		logger:     opts.Logger,
	}
}

// Mode returns "youtube" for remote mode and "local" otherwise.
func (r *Resolver) Mode() string {
	if r.remote {
		return shared.SearchModeYouTube
	}
	return shared.SearchModeLocal
}

// Remote reports whether the resolver delegates to a search provider.
func (r *Resolver) Remote() bool {
	return r.remote
}

// TracksPopularity reports whether search hits are counted.
func (r *Resolver) TracksPopularity() bool {
	return r.popularity
}

// Search resolves query into result records. It never fails because of the remote provider.
func (r *Resolver) Search(ctx context.Context, query string) []models.Result {
	query = strings.TrimSpace(query)

	var results []models.Result
	if r.remote {
		results = r.searchRemote(ctx, query)
	} else {
		results = r.searchLocal(query)
	}

	if r.popularity && query != "" {
		for i := range results {
			if results[i].DownloadKey != "" {
				results[i].Plays = r.store.Increment(results[i].DownloadKey)
			}
		}
	}

	return results
}

func (r *Resolver) searchLocal(query string) []models.Result {
	songs := r.store.Match(query)
	results := make([]models.Result, 0, len(songs))
	for _, song := range songs {
		results = append(results, LocalResult(song, r.store.Plays(song.Key)))
	}
	return results
}

func (r *Resolver) searchRemote(ctx context.Context, query string) []models.Result {
	if query == "" {
		return nil
	}

	keys := r.store.Snapshot().Sorted()

	if r.provider == nil {
		r.logger.Debug("no search provider configured, using placeholders", "query", query)
		return Placeholders(query, keys)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	videos, err := r.provider.Search(ctx, query)
	if err != nil {
		if errors.Is(err, shared.ErrRateLimited) {
			r.logger.Warn("remote search rate limited, using placeholders", "query", query)
		} else {
			r.logger.Warn("remote search failed, using placeholders", "query", query, "error", err)
		}
		return Placeholders(query, keys)
	}

	results := make([]models.Result, 0, len(videos))
	for _, v := range videos {
		results = append(results, models.Result{
			Title:       v.Title,
			Artist:      v.Channel,
			VideoID:     v.ID,
			EmbedURL:    "https://www.youtube.com/embed/" + url.PathEscape(v.ID),
			WatchURL:    v.WatchURL(),
			Thumbnail:   v.Thumbnail,
			DownloadKey: CrossReference(v.Title, keys),
		})
	}
	return results
}

// LocalResult renders a catalog entry as a playable, downloadable result.
func LocalResult(song models.Song, plays int) models.Result {
	return models.Result{
		Title:       song.DisplayTitle(),
		Artist:      song.Artist,
		StreamURL:   "/stream/" + url.PathEscape(song.Key),
		DownloadKey: song.Key,
		Plays:       plays,
	}
}

// CrossReference returns the first key (in the given order) that contains title case-insensitively, or "" when none
// does. This is the local search rule with title as the query.
func CrossReference(title string, songs []models.Song) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	for _, song := range songs {
		if song.Key == "" {
			continue
		}
		if shared.ContainsFold(song.Key, title) {
			return song.Key
		}
	}
	return ""
}
