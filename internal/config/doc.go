// Package config loads Gigbook API configuration from environment variables.
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: HTTP port, environment, timeouts, CORS origins
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: RS256 key paths, access token lifetime, refresh token TTL
//   - StatusConfig: strict lifecycle transitions for bookings, quote requests and proposals
//   - ReconcileConfig: Redis stream for records orphaned by a failed sign-up
//
// # Environment Variables
//
//	SERVER_PORT                - HTTP server port (default: 8080)
//	SERVER_ENV                 - development, production or test
//	CORS_ALLOWED_ORIGINS       - comma separated origins
//	DB_HOST, DB_PORT           - SurrealDB address
//	DB_NAMESPACE, DB_DATABASE  - SurrealDB namespace and database
//	DB_USER, DB_PASSWORD       - SurrealDB credentials
//	JWT_PRIVATE_KEY_PATH       - RSA private key (PEM)
//	JWT_PUBLIC_KEY_PATH        - RSA public key (PEM)
//	JWT_EXPIRATION_MINS        - access token lifetime
//	REFRESH_TOKEN_TTL          - refresh token lifetime (default: 720h)
//	TOKEN_CLEANUP_INTERVAL     - expired refresh token purge interval (default: 1h)
//	STRICT_STATUS_TRANSITIONS  - reject out-of-order status changes
//	RECONCILE_ENABLED          - publish reconcile events to Redis
//	REDIS_ADDR, REDIS_PASSWORD, REDIS_DB, RECONCILE_STREAM
//	RECONCILE_SWEEP_INTERVAL   - orphaned identity sweep interval (default: 5m)
//
// Unparseable numeric, duration and boolean values fall back to their defaults.
package config
