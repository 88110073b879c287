package models

import "gorm.io/gorm"

type UserRole string

const (
	RoleAdmin         UserRole = "admin"
	RoleSeniorLawyer  UserRole = "senior_lawyer"
	RoleTraineeLawyer UserRole = "trainee_lawyer"
	RoleClerk         UserRole = "clerk"
)

func ValidRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleSeniorLawyer, RoleTraineeLawyer, RoleClerk:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string   `gorm:"not null" json:"-"`
	FullName     string   `gorm:"size:255" json:"full_name"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
}
