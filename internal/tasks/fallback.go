package tasks

import (
	"net/url"

	"github.com/desertthunder/songsite/internal/models"
)

// FallbackSuffixes are appended to the query to build placeholder labels, in display order.
var FallbackSuffixes = []string{
	"official music video",
	"audio",
	"live",
	"remix",
	"cover",
	"full album",
	"karaoke",
	"hd",
}

// EmbedSearchURL returns a YouTube embed URL that runs a search for label client-side.
func EmbedSearchURL(label string) string {
	return "https://www.youtube.com/embed?listType=search&list=" + url.QueryEscape(label)
}

// Placeholders builds one non-resolving record per fallback suffix for query.
//
// A placeholder only carries a download key when its label matches a local catalog key.
func Placeholders(query string, songs []models.Song) []models.Result {
	if query == "" {
		return nil
	}

	results := make([]models.Result, 0, len(FallbackSuffixes))
	for _, suffix := range FallbackSuffixes {
		label := query + " " + suffix
		results = append(results, models.Result{
			Title:       label,
			EmbedURL:    EmbedSearchURL(label),
			Placeholder: true,
			DownloadKey: CrossReference(label, songs),
		})
	}
	return results
}
