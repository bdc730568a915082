// Package web renders the song site's single HTML page.
//
// The page is one [html/template] (templates/index.html) embedded into the binary. It shows a search box, the
// current result grid, the full catalog sorted by key, the most searched songs and a sticky audio player that plays
// `/stream/{key}` sources in place. Remote and placeholder results render as YouTube embeds instead.
//
// An admin form posts the shared secret to `/reset` and `/rebuild`; [Renderer] never sees the secret itself.
package web
