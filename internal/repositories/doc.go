// Package repositories implements SQLite persistence for exported catalog snapshots.
//
// A snapshot is a frozen copy of the catalog written by `songsite catalog export`. The server never reads it back;
// it exists so a deployment can ship or inspect the catalog it was built with.
//
// Key Implementations:
//   - [SnapshotRepository] : snapshot headers plus the transactional [SnapshotRepository.Save] of a whole catalog
//   - [SongRepository] : per-song rows keyed by snapshot, in catalog order
//
// Rows keep the catalog's insertion order in a position column rather than relying on rowid or timestamps.
package repositories
