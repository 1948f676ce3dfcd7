// Package models contains data structures for the application's domain models.
package models

import "time"

// Role defines the workflow role a user holds.
type Role string

const (
	// RoleEmployee can browse software and submit access requests.
	RoleEmployee Role = "Employee"
	// RoleManager reviews access requests and drives status transitions.
	RoleManager Role = "Manager"
	// RoleAdmin registers software entries and manages user roles.
	RoleAdmin Role = "Admin"
)

// ParseRole validates a role label.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleEmployee, RoleManager, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// User represents an employee account in AccessHub.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:60;uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Role      Role      `gorm:"type:varchar(20);not null;default:'Employee'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
