package models

import "time"

type ChatChannel struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	IsPrivate       bool      `gorm:"not null;default:false" json:"isPrivate"`
	IsDirectMessage bool      `gorm:"not null;default:false" json:"isDirectMessage"`
	CreatedBy       uint64    `gorm:"not null" json:"createdBy"`
	CreatedAt       time.Time `json:"createdAt"`

	// Relations
	Members  []ChatChannelMember `gorm:"foreignKey:ChannelID" json:"members,omitempty"`
	Messages []ChatMessage       `gorm:"foreignKey:ChannelID" json:"messages,omitempty"`
}

type ChatChannelMember struct {
	ChannelID uint64    `gorm:"primarykey" json:"channelId"`
	UserID    uint64    `gorm:"primarykey" json:"userId"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"isAdmin"`
	JoinedAt  time.Time `json:"joinedAt"`

	// Relations
	Channel ChatChannel `gorm:"foreignKey:ChannelID" json:"-"`
	User    User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

type ChatMessage struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ChannelID uint64    `gorm:"not null;index" json:"channelId"`
	SenderID  uint64    `gorm:"not null" json:"senderId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	SentAt    time.Time `gorm:"autoCreateTime;index" json:"sentAt"`

	// Relations
	Channel ChatChannel `gorm:"foreignKey:ChannelID" json:"-"`
	Sender  User        `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
