package domain

// User is the authenticated principal reconstructed from token claims for
// the admin endpoints. There is no user store; claims are the only source.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

const RoleAdmin = "admin"

type contextKey string

// UserContextKey carries the authenticated user through request context.
const UserContextKey contextKey = "user"
