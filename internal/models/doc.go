// Package models defines the records passed between the catalog, the resolver and the presentation layers.
//
//   - [Song] : a catalog entry, a download key mapped to a file on disk
//   - [Video] : a remote search hit (YouTube video id plus display metadata)
//   - [Result] : one rendered search result, local or remote
//   - [PersistedSong] : a [Song] row in an exported SQLite catalog snapshot
//   - [Snapshot] : the header of one exported catalog
package models
