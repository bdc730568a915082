// Package services defines the [SearchProvider] interface for remote song search and implements it for YouTube.
//
// # YouTube Implementation
//
// [YouTubeService] calls the YouTube Data API v3 search.list endpoint with an API key
// (google.golang.org/api/youtube/v3). Only videos are requested; each hit becomes a [models.Video].
//
// # Rate Limiting
//
// [RateLimited] wraps any provider with a token bucket (golang.org/x/time/rate) so a busy page cannot burn the API
// quota. A call that finds no token fails immediately with [shared.ErrRateLimited] instead of waiting.
//
// # Error Handling
//
// Provider errors wrap [shared.ErrRemoteSearch] (non-2xx, malformed payload, timeout) or [shared.ErrRateLimited].
// Callers are expected to recover from both by falling back to placeholder results.
package services
