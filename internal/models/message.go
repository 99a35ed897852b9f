package models

import "time"

// Message is a direct message between two users. Messages are append-only.
type Message struct {
	ID          uint      `gorm:"primaryKey"`
	SenderID    uint      `gorm:"not null;index"`
	RecipientID uint      `gorm:"not null;index"`
	Text        string    `gorm:"size:1000;not null"`
	SentAt      time.Time `gorm:"not null"`

	Sender    *User `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE;" json:"-"`
	Recipient *User `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE;" json:"-"`
}
