package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songsite/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgCatalogLoaded MsgKind = iota
	MsgSearchDone
)

type catalogLoaded struct {
	songs []models.Song
	err   error
}

type searchDone struct {
	query   string
	results []models.Result
}

// catalogLoadedMsg is the constructor for [MsgCatalogLoaded]
func catalogLoadedMsg(songs []models.Song, err error) Msg {
	return Msg{kind: MsgCatalogLoaded, data: catalogLoaded{songs: songs, err: err}}
}

// searchDoneMsg is the constructor for [MsgSearchDone]
func searchDoneMsg(query string, results []models.Result) Msg {
	return Msg{kind: MsgSearchDone, data: searchDone{query: query, results: results}}
}
