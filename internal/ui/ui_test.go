package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songsite/internal/catalog"
	"github.com/desertthunder/songsite/internal/models"
	"github.com/desertthunder/songsite/internal/tasks"
	tu "github.com/desertthunder/songsite/internal/testing"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m.Update(cmd())
}

func newTestModel(t *testing.T, resolver *tasks.Resolver) (*Model, *catalog.Store) {
	t.Helper()
	dir := tu.SongsDir(t, "kabira.mp3", "arijit_song.mp3")
	store := catalog.NewStore(dir, catalog.BuildOptions{})
	if err := store.Rebuild(); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}

	m := NewModel(context.Background(), store, resolver)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	run(t, m, m.Init())
	return m, store
}

func TestModel(t *testing.T) {
	t.Run("loads sorted catalog", func(t *testing.T) {
		m, _ := newTestModel(t, nil)

		items := m.catalogList.Items()
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if items[0].(songItem).song.Key != "arijit_song" {
			t.Errorf("expected arijit_song first, got %s", items[0].(songItem).song.Key)
		}
		if !strings.Contains(m.View(), "Songs (2)") {
			t.Error("expected title with count")
		}
	})

	t.Run("detail and back", func(t *testing.T) {
		m, _ := newTestModel(t, nil)

		m.Update(keyMsg("enter"))
		if m.State() != DetailView {
			t.Fatalf("expected DetailView, got %v", m.State())
		}
		if !strings.Contains(m.View(), "arijit_song.mp3") {
			t.Error("expected path in detail view")
		}

		m.Update(keyMsg("esc"))
		if m.State() != CatalogView {
			t.Errorf("expected CatalogView, got %v", m.State())
		}
	})

	t.Run("search from catalog", func(t *testing.T) {
		m, _ := newTestModel(t, nil)

		_, cmd := m.Update(keyMsg("s"))
		run(t, m, cmd)

		if m.State() != ResultsView {
			t.Fatalf("expected ResultsView, got %v", m.State())
		}
		items := m.resultList.Items()
		if len(items) != 1 || items[0].(resultItem).result.DownloadKey != "arijit_song" {
			t.Errorf("unexpected results %v", items)
		}

		m.Update(keyMsg("esc"))
		if m.State() != DetailView {
			t.Errorf("expected DetailView after esc, got %v", m.State())
		}
	})

	t.Run("remote placeholders", func(t *testing.T) {
		resolver := tasks.NewResolver(tasks.ResolverOpts{Remote: true})
		m, _ := newTestModel(t, resolver)

		_, cmd := m.Update(keyMsg("s"))
		run(t, m, cmd)

		if got := len(m.resultList.Items()); got != len(tasks.FallbackSuffixes) {
			t.Errorf("expected %d placeholders, got %d", len(tasks.FallbackSuffixes), got)
		}
	})

	t.Run("rescan", func(t *testing.T) {
		m, store := newTestModel(t, nil)
		tu.MustWriteFile(t, store.Dir(), "zeher.mp3", "x")

		m.Update(keyMsg("r"))
		if m.State() != ConfirmView {
			t.Fatalf("expected ConfirmView, got %v", m.State())
		}

		_, cmd := m.Update(keyMsg("y"))
		run(t, m, cmd)

		if m.State() != CatalogView {
			t.Errorf("expected CatalogView, got %v", m.State())
		}
		if got := len(m.catalogList.Items()); got != 3 {
			t.Errorf("expected 3 items after rescan, got %d", got)
		}
	})

	t.Run("rescan cancelled", func(t *testing.T) {
		m, _ := newTestModel(t, nil)

		m.Update(keyMsg("r"))
		m.Update(keyMsg("n"))
		if m.State() != CatalogView {
			t.Errorf("expected CatalogView, got %v", m.State())
		}
	})

	t.Run("quit", func(t *testing.T) {
		m, _ := newTestModel(t, nil)

		_, cmd := m.Update(keyMsg("q"))
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}

func TestItems(t *testing.T) {
	song := songItem{song: models.Song{Key: "kabira", Ext: ".mp3", Size: 2048, Artist: "Tochi Raina"}, plays: 2}
	if got := song.Description(); got != ".mp3 • 2.0 KiB • Tochi Raina • 2 searches" {
		t.Errorf("unexpected description %q", got)
	}

	tests := []struct {
		result models.Result
		want   string
	}{
		{result: models.Result{Placeholder: true}, want: "placeholder"},
		{result: models.Result{Placeholder: true, DownloadKey: "kabira"}, want: "placeholder • local: kabira"},
		{result: models.Result{VideoID: "v1", Artist: "T-Series"}, want: "T-Series • youtube v1"},
		{result: models.Result{StreamURL: "/stream/kabira", DownloadKey: "kabira"}, want: "local • /stream/kabira"},
	}
	for _, tt := range tests {
		if got := (resultItem{result: tt.result}).Description(); got != tt.want {
			t.Errorf("Description() = %q, want %q", got, tt.want)
		}
	}
}
