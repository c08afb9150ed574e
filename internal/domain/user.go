package domain

// UserRole classifies a session identity.
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleAgent    UserRole = "agent"
	UserRoleCustomer UserRole = "customer"
)

// User is the session identity established at login. It lives for the
// browser-session equivalent of this client: created at login,
// persisted locally, destroyed at logout. Not durable across
// environments.
type User struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Role  UserRole `json:"role"`
}
