package users

import "time"

// DefaultRole is assigned when a user is created without an explicit role.
const DefaultRole = "client"

// User is a dashboard-access identity. Users are independent of the Clients
// table; nothing ties the two together in the intake flow.
type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	CreatedDate time.Time  `json:"createdDate"`
	LastLogin   *time.Time `json:"lastLogin"`
	IsActive    bool       `json:"isActive"`
}
