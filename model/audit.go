package model

import "time"

type AuditEvent struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	ActorID   uint      `gorm:"index"`                  // user performing the action, 0 for anonymous callers
	ActorRole string    `gorm:"size:32"`                // role of the actor at event time
	EventType string    `gorm:"size:64;not null;index"` // waitlist_approved, registration_denied...
	Email     string    `gorm:"size:256;index"`         // waitlist email the event is about
	Count     int       `gorm:"default:0"`              // affected entries - only for bulk events
	Reason    string    `gorm:"size:512"`               // denial code or free-form reason
	IP        string    `gorm:"size:45;not null"`       // IPv4/IPv6
	UserAgent string    `gorm:"size:512;not null"`      // user agent string
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (AuditEvent) TableName() string {
	return "audit"
}
