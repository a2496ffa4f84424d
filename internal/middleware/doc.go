// Package middleware provides HTTP middleware for the Gigbook API.
//
// The server chains them in this order:
//
//	middleware.Chain(mux,
//	    middleware.RequestID,
//	    middleware.Logger(log),
//	    middleware.Recovery(log),
//	    middleware.CORS(cfg.Server.AllowedOrigins),
//	)
//
// Auth is applied per route. It validates the bearer token through a
// TokenVerifier and stores the identity id, read back with GetUserID:
//
//	userID := middleware.GetUserID(r.Context())
package middleware
