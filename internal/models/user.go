package models

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleProducer UserRole = "producer"
	RoleActor    UserRole = "actor"
	RoleEmployed UserRole = "employed"
)

type User struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	Username       string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash   string    `gorm:"type:varchar(255);not null" json:"-"`
	DisplayName    string    `gorm:"type:varchar(100);not null" json:"displayName"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	AvatarInitials string    `gorm:"type:varchar(4)" json:"avatarInitials"`
	AvatarColor    string    `gorm:"type:varchar(20)" json:"avatarColor"`
	Role           UserRole  `gorm:"type:varchar(20);not null;default:'employed'" json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	// Relations
	Memberships []ProjectMember     `gorm:"foreignKey:UserID" json:"-"`
	Channels    []ChatChannelMember `gorm:"foreignKey:UserID" json:"-"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
