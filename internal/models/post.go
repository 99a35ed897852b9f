package models

import "time"

// Post is a user's publication. UserID is the owner.
type Post struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Title     string `gorm:"size:100;not null"`
	Text      string `gorm:"size:1000;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Owner *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

// PostImage is an image attached to a post. StorageKey locates the file in
// the configured storage provider; Filename is the name it was uploaded with.
type PostImage struct {
	ID         uint   `gorm:"primaryKey"`
	PostID     uint   `gorm:"not null;index"`
	Filename   string `gorm:"size:255;not null"`
	StorageKey string `gorm:"size:512;not null"`
	CreatedAt  time.Time

	Post *Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;" json:"-"`
}
