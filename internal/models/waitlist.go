package models

import "time"

// WaitlistEntry is one person's request to join the pre-launch list. The
// store assigns ID and CreatedAt; Email is the uniqueness key.
type WaitlistEntry struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"not null"`
	Email       string    `gorm:"not null;uniqueIndex:users_email_key"`
	PhoneNumber string    `gorm:"column:phone_number;not null"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime"`
}

// TableName keeps the table name used by the hosted store.
func (WaitlistEntry) TableName() string {
	return "users"
}
