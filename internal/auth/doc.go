// Package auth provides authentication and authorization for the API.
//
// Every data and AI route requires an HS256 JWT in the Authorization header:
//
//	Authorization: Bearer <token>
//
// Tokens are issued by POST /api/login (and returned from registration) and
// carry the user id as the subject claim.
//
// # Configuration
//
//	AUTH_JWT_SECRET=<random string>  # Generated per process if empty (tokens die on restart)
//	AUTH_TOKEN_EXPIRY=720h           # Token lifetime
//	AUTH_BCRYPT_COST=12              # bcrypt cost factor
//
// # Usage
//
//	guard := auth.NewTokenGuard([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenExpiry)
//	api := router.Group("/api/data", auth.NewMiddleware(guard, logger).RequireToken())
//
// Handlers read the caller with auth.GetUserID(c), and every access to a
// user-owned entity goes through auth.Authorize.
package auth
