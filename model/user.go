package model

import (
	"time"

	"gorm.io/gorm"
)

// User stores user information
type User struct {
	ID          uint   `gorm:"primarykey"`
	Name        string `gorm:"size:64;not null"`
	Email       string `gorm:"uniqueIndex;size:256;not null"`
	Password    string `gorm:"size:64;not null"`
	Role        string `gorm:"size:32;not null;default:user"`
	IsAnonymous bool   `gorm:"default:false;not null"`
	Disabled    bool   `gorm:"default:false;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == 0 {
		u.ID = GenerateID()
	}
	return nil
}
