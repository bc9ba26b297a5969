package model

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleModerator
}

// AdminIdentity is the persisted admin account. PasswordHash never leaves
// the process in serialized form.
type AdminIdentity struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email,omitempty"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	LastLogin    *time.Time `json:"lastLogin"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Identity is the request-scoped view of an authenticated admin.
type Identity struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

type TokenClaims struct {
	Username  string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type IssuedToken struct {
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Username    string    `json:"username"`
	Role        Role      `json:"role"`
}

type VerifyResponse struct {
	Valid bool     `json:"valid"`
	User  Identity `json:"user"`
}
