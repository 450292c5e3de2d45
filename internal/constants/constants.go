package constants

// Session
const (
	SessionCookieName = "crewdeck_session"
	SessionMaxAge     = 86400 // 24 hours
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "current_user"
	ContextKeyProject = "project"
	ContextKeyMember  = "project_member"
)

// Validation
const (
	MinPasswordLength = 8
	MaxProgress       = 100
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Chat
const (
	DefaultMessageLimit = 50
)
