package constants

import "time"

// Session cookie and gin context keys
const (
	SessionCookieName = "joblane_session"

	SessionValueToken = "session_token"
	SessionValueCache = "session_cache"

	ContextKeyUser    = "current_user"
	ContextKeySession = "current_session"
)

// Session lifetimes
const (
	SessionLifetime = 7 * 24 * time.Hour
	// SessionCookieCacheWindow is how long the signed cookie snapshot of a
	// session is trusted before the database is consulted again.
	SessionCookieCacheWindow = 5 * time.Minute

	VerificationTokenLifetime = time.Hour
	InvitationLifetime        = 48 * time.Hour
)

// Password and name bounds enforced by the validation schemas
const (
	MinPasswordLength = 6
	MaxPasswordLength = 24
	MinNameLength     = 3
	MaxNameLength     = 18
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
