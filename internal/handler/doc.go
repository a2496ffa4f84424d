// Package handler provides the HTTP handlers of the Gigbook API.
//
// Handlers are thin: they decode the request, take the caller's identity id
// from the auth middleware, call one service method and encode the result.
// Each handler depends on a small interface naming just the service methods
// it calls.
//
// # Response Format
//
//   - WriteData: single resource with optional HATEOAS links
//   - WriteCollection / WritePage: lists, with offset pagination when paged
//   - WriteError: RFC 9457 Problem Details
//
// Service errors carry one of the model error kinds and MapServiceError turns
// the kind into a status: validation 422, not found 404, forbidden 403,
// conflict 409, anything else 500. Bad credentials and tokens are 401.
//
// # Routing
//
//	mux := http.NewServeMux()
//	handler.RegisterRoutes(mux, handler.Handlers{...}, middleware.Auth(authService))
package handler
