// Package ui implements an interactive terminal catalog browser using bubbletea's Elm architecture.
//
// The TUI provides a small multi-view workflow over the catalog store:
//  1. [CatalogView] : Browse and filter the catalog (built-in list filtering with /)
//  2. [DetailView] : Inspect one song's path, size, tags and search count
//  3. [ResultsView] : Run the configured resolver for the selected song and list what it returns
//  4. [ConfirmView] : Confirm a rescan of the songs directory
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
