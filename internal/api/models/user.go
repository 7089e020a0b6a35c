package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// ValidRole reports whether the given string is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleModerator || role == RoleAdmin
}

type User struct {
	ID               string  `gorm:"primaryKey;type:uuid" json:"id"`
	Username         string  `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email            string  `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName        string  `gorm:"size:150" json:"first_name"`
	LastName         string  `gorm:"size:150" json:"last_name"`
	Bio              string  `gorm:"type:text" json:"bio"`
	Role             string  `gorm:"size:16;default:'user';not null" json:"role"`
	IsStaff          bool    `gorm:"default:false" json:"-"`
	IsSuperuser      bool    `gorm:"default:false" json:"-"`
	Password         string  `gorm:"column:password_hash" json:"-"` // Not show in JSON
	ConfirmationCode *string `gorm:"size:40" json:"-"`              // single active code, overwritten on each sign-up

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	// If the ID is not already set, generate a new one.
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user carries admin privileges, either through
// the admin role or the staff/superuser flags.
func (user *User) IsAdmin() bool {
	return user.IsStaff || user.Role == RoleAdmin || user.IsSuperuser
}

// IsModerator reports whether the user carries the moderator role.
func (user *User) IsModerator() bool {
	return user.Role == RoleModerator
}
