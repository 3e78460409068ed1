package model

import (
	"strings"

	"gorm.io/gorm"
)

// User roles. Master has cross-tenant read/write and permanent-delete
// rights; admin agents only see and manage their own listings.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMaster Role = "master"
)

type User struct {
	gorm.Model
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Name     string `json:"name" gorm:"not null"`
	Role     Role   `json:"role" gorm:"not null;default:admin"`

	// Deactivated users keep their rows and listings but cannot log in.
	Active bool `json:"active" gorm:"default:true;not null"`

	Properties []Property    `json:"-"`
	Settings   *UserSettings `json:"-" gorm:"foreignKey:UserID"`
}

func (u *User) IsMaster() bool {
	return u.Role == RoleMaster
}

func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":     u.ID,
		"email":  u.Email,
		"name":   strings.TrimSpace(u.Name),
		"role":   u.Role,
		"active": u.Active,
	}
}
