// package tasks implements the request-level operations of the song site.
//
// [Resolver] turns a free-text query into result records. In local mode it filters the catalog by
// case-insensitive substring match on keys. In remote mode it asks a [services.SearchProvider], bounded by a
// timeout, and cross-references the hits against local keys so they can offer a download. When the provider is
// missing or fails, the resolver produces [FallbackSuffixes] placeholder records that only drive an embedded
// YouTube search widget.
//
// [Reset] is the admin operation: it checks a shared secret, deletes the files in the downloads directory on a
// best-effort basis and clears the catalog store.
package tasks
