package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EntryStatus string

const (
	EntryStatusPending    EntryStatus = "pending"
	EntryStatusApproved   EntryStatus = "approved"
	EntryStatusRejected   EntryStatus = "rejected"
	EntryStatusRegistered EntryStatus = "registered"
)

// WaitlistEntry tracks one email's way from joining the waitlist to registration.
type WaitlistEntry struct {
	ID              uint           `gorm:"primarykey"                      json:"id,string"`
	Email           string         `gorm:"uniqueIndex;size:256;not null"   json:"email"`
	Status          EntryStatus    `gorm:"size:16;not null;index"          json:"status"`
	InviteCode      *string        `gorm:"uniqueIndex;size:64"             json:"inviteCode,omitempty"`
	InviteExpiresAt *time.Time     `                                       json:"inviteExpiresAt,omitempty"`
	Position        int            `gorm:"not null;index"                  json:"position"`
	ReferredBy      string         `gorm:"size:256"                        json:"referredBy,omitempty"`
	Metadata        datatypes.JSON `                                       json:"metadata,omitempty"`
	ApprovedAt      *time.Time     `                                       json:"approvedAt,omitempty"`
	RejectedAt      *time.Time     `                                       json:"rejectedAt,omitempty"`
	RegisteredAt    *time.Time     `                                       json:"registeredAt,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func (e *WaitlistEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == 0 {
		e.ID = GenerateID()
	}
	return nil
}
