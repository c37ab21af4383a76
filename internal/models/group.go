package models

import (
	"time"
)

// Role is a member's standing within a group.
type Role string

const (
	RoleNone       Role = ""
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// Group is a registered chat group. Activities can only be started in
// registered groups; ReportTarget is where daily reports are delivered.
type Group struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	GroupID      string `gorm:"uniqueIndex;not null" json:"group_id"`
	Name         string `json:"name"`
	Registered   bool   `gorm:"default:false" json:"registered"`
	ReportTarget string `json:"report_target"`

	// Relationships
	Members []GroupMember `gorm:"foreignKey:GroupRef;references:GroupID" json:"members"`
}

// GroupMember records a user's role within a group. Only admins and
// superadmins are stored; everyone else is an ordinary member.
type GroupMember struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	GroupRef string `gorm:"uniqueIndex:idx_group_member;not null" json:"group_id"`
	UserID   string `gorm:"uniqueIndex:idx_group_member;not null" json:"user_id"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the role carries admin rights. Superadmins are
// implicitly admins.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}
