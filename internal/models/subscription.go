package models

import "time"

// Subscription is a directed edge: SubscriberID follows UserID.
// The primary key is a composite of (UserID, SubscriberID), so at most one
// edge exists per ordered pair. Accepted is set once UserID has
// reciprocated; a mutual friendship needs both directions accepted.
type Subscription struct {
	UserID       uint `gorm:"primaryKey;autoIncrement:false"`
	SubscriberID uint `gorm:"primaryKey;autoIncrement:false;index"`
	Accepted     bool `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Only used to declare the foreign keys; never loaded.
	User       *User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Subscriber *User `gorm:"foreignKey:SubscriberID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
