package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/songsite/internal/models"
	"github.com/desertthunder/songsite/internal/shared"
)

var (
	_ list.Item = songItem{}
	_ list.Item = resultItem{}
)

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song  models.Song
	plays int
}

func (i songItem) FilterValue() string { return i.song.Key }
func (i songItem) Title() string       { return i.song.Key }
func (i songItem) Description() string {
	desc := fmt.Sprintf("%s • %s", i.song.Ext, shared.FormatSize(i.song.Size))
	if i.song.Artist != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.song.Artist)
	}
	if i.plays > 0 {
		desc = fmt.Sprintf("%s • %d searches", desc, i.plays)
	}
	return desc
}

// resultItem wraps [models.Result] to implement [list.Item].
type resultItem struct {
	result models.Result
}

func (i resultItem) FilterValue() string { return i.result.Title }
func (i resultItem) Title() string       { return i.result.Title }
func (i resultItem) Description() string {
	switch {
	case i.result.Placeholder && i.result.Downloadable():
		return "placeholder • local: " + i.result.DownloadKey
	case i.result.Placeholder:
		return "placeholder"
	case i.result.VideoID != "" && i.result.Downloadable():
		return fmt.Sprintf("%s • youtube %s • local: %s", i.result.Artist, i.result.VideoID, i.result.DownloadKey)
	case i.result.VideoID != "":
		return fmt.Sprintf("%s • youtube %s", i.result.Artist, i.result.VideoID)
	default:
		return "local • " + i.result.StreamURL
	}
}
