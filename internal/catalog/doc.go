// Package catalog builds and owns the in-memory song catalog.
//
// # Building
//
// [Build] scans a songs directory, keeping files whose extension is in [AudioExtensions].
// Each file becomes a [models.Song] keyed by its trimmed filename stem; when two files share a stem the later one
// (in lexicographic filename order) is keyed "stem_1", then "stem_2" and so on.
// A missing directory is reported as [shared.ErrCatalogUnavailable], never as an empty catalog.
//
// # Store
//
// [Store] is the single owner of the catalog and the popularity counters. Handlers receive it by injection and
// mutate it only through [Store.Increment], [Store.Rebuild], [Store.Replace] and [Store.Clear].
// Downloads resolve strictly through [Store.Resolve]; no caller-supplied path is ever opened.
//
// # Snapshot
//
// [WriteSnapshot] writes the key → path mapping as download_map.json, a deployment artifact that the server never reads back.
package catalog
