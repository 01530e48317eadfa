package constants

// Session keys and cookie settings
const (
	SessionCookieName   = "reserfast_session"
	SessionCustomerID   = "customer_id"
	SessionEmployeeID   = "employee_id"
	SessionEmployeeRole = "employee_role"
)

// Context keys set by middleware
const (
	ContextKeySession = "session_state"
)

// Validation limits
const (
	MinPasswordLength = 6
	MaxNameLength     = 100
)

// Pagination defaults
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Upload limits
const (
	DefaultMaxUploadBytes int64 = 5 * 1024 * 1024
)

// Date layout used by request payloads and query strings
const DateLayout = "2006-01-02"
