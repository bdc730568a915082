// Package server provides HTTP routing, middleware and handlers for the song site.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering. Routes registered for GET
// also answer HEAD.
//
// # Routes
//
//	GET  /?q=           search page (local or remote resolver)
//	GET  /download/{key} whole catalog file as an attachment, 404 for unknown keys or missing files
//	GET  /stream/{key}   catalog file inline, with range support for the audio player
//	POST /reset          admin_key form field; deletes downloads and clears the store, 303 to / or 403
//	POST /rebuild        admin_key form field; rescans the songs directory, 303 to / or 403
//	GET  /health         JSON status
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// [Server] runs the router and shuts down gracefully when its context is cancelled.
package server
