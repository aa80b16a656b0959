package models

import "gorm.io/gorm"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	gorm.Model
	Name          string `json:"name"`
	Email         string `gorm:"uniqueIndex" json:"email"`
	Password      string `json:"-"`
	Role          string `gorm:"default:member" json:"role"`
	PointsBalance int    `gorm:"default:0" json:"points_balance"`
	Timezone      string `json:"timezone"`
	Locale        string `json:"locale"`
}
