package domain

import "time"

type User struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Password   string `json:"-"`
	Role       string `json:"role"` // "member", "admin", or "guest"
	Generation string `json:"generation"`
	TeamID     *uint  `json:"team_id"`
	// TransportCount is the lifetime number of board transports this user has
	// been assigned. Only the transport repository mutates it.
	TransportCount int       `json:"transport_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
	RoleGuest  = "guest"
)

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Team struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
